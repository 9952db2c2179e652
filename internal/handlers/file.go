package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"schoolhub/internal/db"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxUploadFiles = 10

type FileHandler struct {
	storage *services.StorageService
}

func NewFileHandler() *FileHandler {
	return &FileHandler{storage: services.NewStorageService()}
}

// Upload stores up to ten multipart files in blob storage and associates
// each with exactly one owner entity (user, post or comment). Uploads run
// concurrently; any failure fails the whole request.
func (h *FileHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "multipart form is required")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		BadRequest(c, "at least one file is required")
		return
	}
	if len(files) > maxUploadFiles {
		BadRequest(c, fmt.Sprintf("at most %d files per upload", maxUploadFiles))
		return
	}

	userID := utils.StringToUint(c.PostForm("user_id"))
	postID := utils.StringToUint(c.PostForm("post_id"))
	commentID := utils.StringToUint(c.PostForm("comment_id"))
	targets := 0
	for _, id := range []uint{userID, postID, commentID} {
		if id != 0 {
			targets++
		}
	}
	if targets == 0 {
		HandleServiceError(c, services.ErrMissingTarget)
		return
	}
	if targets > 1 {
		HandleServiceError(c, services.ErrAmbiguousTarget)
		return
	}

	uploaded := make([]models.File, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, header := range files {
		wg.Add(1)
		go func(i int, header *multipart.FileHeader) {
			defer wg.Done()
			uploaded[i], errs[i] = h.uploadOne(header)
		}(i, header)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			HandleServiceError(c, err)
			return
		}
	}

	var stored []models.File
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, file := range uploaded {
			if err := tx.Create(&file).Error; err != nil {
				return err
			}
			switch {
			case userID != 0:
				if err := tx.Create(&models.UserFile{UserID: userID, FileID: file.ID}).Error; err != nil {
					return err
				}
			case postID != 0:
				if err := tx.Create(&models.PostFile{PostID: postID, FileID: file.ID}).Error; err != nil {
					return err
				}
			default:
				if err := tx.Create(&models.CommentFile{CommentID: commentID, FileID: file.ID}).Error; err != nil {
					return err
				}
			}
			stored = append(stored, file)
		}
		return nil
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The files have been uploaded.", "files": stored})
}

func (h *FileHandler) uploadOne(header *multipart.FileHeader) (models.File, error) {
	src, err := header.Open()
	if err != nil {
		return models.File{}, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.File{}, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}

	contentType := header.Header.Get("Content-Type")
	url, err := h.storage.Store(data, header.Filename, contentType)
	if err != nil {
		return models.File{}, fmt.Errorf("store upload %s: %w", header.Filename, err)
	}

	return models.File{
		Name: header.Filename,
		Mime: contentType,
		Size: header.Size,
		URL:  url,
	}, nil
}

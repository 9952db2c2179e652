package handlers

import (
	"net/http"
	"time"

	"schoolhub/internal/db"
	"schoolhub/internal/middleware"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// PostResponse is a post as rendered for a requester. The outer fields
// shadow the embedded ones so an anonymous post never leaks its author id
// through any field.
type PostResponse struct {
	models.Post
	AuthorUserID *uint           `json:"user_id"`
	Author       services.Author `json:"user"`
}

func renderPost(post models.Post, requester models.Role) PostResponse {
	author := services.RenderAuthor(post.UserID, post.User.Name, post.IsAnonymous, requester)
	return PostResponse{Post: post, AuthorUserID: author.ID, Author: author}
}

func renderPosts(posts []models.Post, requester models.Role) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, renderPost(p, requester))
	}
	return out
}

func (h *PostHandler) Create(c *gin.Context) {
	var req struct {
		BoardID     uint   `json:"board_id" binding:"required"`
		CategoryID  *uint  `json:"category_id"`
		Title       string `json:"title" binding:"required"`
		Content     string `json:"content" binding:"required"`
		Season      string `json:"season"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "board_id, title and content are required")
		return
	}

	var board models.Board
	if err := db.DB.First(&board, req.BoardID).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.Where("id = ? AND board_id = ?", *req.CategoryID, req.BoardID).
			First(&category).Error; err != nil {
			HandleServiceError(c, services.ErrNotFound)
			return
		}
	}

	post := models.Post{
		UserID:      middleware.CurrentUserID(c),
		BoardID:     req.BoardID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Content:     ugcPolicy.Sanitize(req.Content),
		Season:      req.Season,
		IsAnonymous: req.IsAnonymous,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The post has been created.", "post": post})
}

// List pages through a board's posts with a created_at cursor. Sorting by
// most likes replaces the cursor with a plain ranked listing.
func (h *PostHandler) List(c *gin.Context) {
	boardID := utils.StringToUint(c.Query("board_id"))
	if boardID == 0 {
		BadRequest(c, "board_id is required")
		return
	}

	limit := utils.StringToInt(c.DefaultQuery("limit", "0"))
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}

	query := db.DB.Preload("User").Where("board_id = ?", boardID)
	if categoryID := utils.StringToUint(c.Query("category_id")); categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	sort := c.DefaultQuery("sort", "latest")
	cursor := c.Query("cursor")
	switch sort {
	case "latest":
		if cursor != "" {
			at, err := time.Parse(time.RFC3339Nano, cursor)
			if err != nil {
				BadRequest(c, "invalid cursor")
				return
			}
			query = query.Where("created_at < ?", at)
		}
		query = query.Order("created_at DESC")
	case "oldest":
		if cursor != "" {
			at, err := time.Parse(time.RFC3339Nano, cursor)
			if err != nil {
				BadRequest(c, "invalid cursor")
				return
			}
			query = query.Where("created_at > ?", at)
		}
		query = query.Order("created_at ASC")
	case "mostLikes":
		query = query.Order("likes_count DESC").Order("created_at DESC")
	default:
		BadRequest(c, "sort must be one of latest, oldest, mostLikes")
		return
	}

	var posts []models.Post
	if err := query.Limit(limit).Find(&posts).Error; err != nil {
		HandleServiceError(c, err)
		return
	}

	nextCursor := ""
	if sort != "mostLikes" && len(posts) == limit {
		nextCursor = posts[len(posts)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      renderPosts(posts, middleware.CurrentRole(c)),
		"nextCursor": nextCursor,
	})
}

// SportsPost is a sports-board post with its category name attached.
type SportsPost struct {
	PostResponse
	CategoryName string `json:"category_name"`
}

// ListSports lists the sports board's posts for a year and season,
// grouped by nothing but annotated with the category name.
func (h *PostHandler) ListSports(c *gin.Context) {
	year := utils.StringToInt(c.Query("year"))
	season := c.Query("season")
	if year == 0 || season == "" {
		BadRequest(c, "year and season are required")
		return
	}

	var board models.Board
	if err := db.DB.Where("name = ?", "sports").First(&board).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	var posts []models.Post
	err := db.DB.Preload("User").
		Where("board_id = ? AND season = ?", board.ID, season).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	categories := map[uint]string{}
	var all []models.Category
	if err := db.DB.Where("board_id = ?", board.ID).Find(&all).Error; err == nil {
		for _, cat := range all {
			categories[cat.ID] = cat.Name
		}
	}

	role := middleware.CurrentRole(c)
	out := make([]SportsPost, 0, len(posts))
	for _, p := range posts {
		name := ""
		if p.CategoryID != nil {
			name = categories[*p.CategoryID]
		}
		out = append(out, SportsPost{PostResponse: renderPost(p, role), CategoryName: name})
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

func (h *PostHandler) Detail(c *gin.Context) {
	var post models.Post
	if err := db.DB.Preload("User").First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": renderPost(post, middleware.CurrentRole(c))})
}

func (h *PostHandler) Update(c *gin.Context) {
	var post models.Post
	if err := db.DB.First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	if post.UserID != middleware.CurrentUserID(c) {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Content     string  `json:"content"`
		CategoryID  *uint   `json:"category_id"`
		Season      *string `json:"season"`
		IsAnonymous *bool   `json:"is_anonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = ugcPolicy.Sanitize(req.Content)
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.Where("id = ? AND board_id = ?", *req.CategoryID, post.BoardID).
			First(&category).Error; err != nil {
			HandleServiceError(c, services.ErrNotFound)
			return
		}
		post.CategoryID = req.CategoryID
	}
	if req.Season != nil {
		post.Season = *req.Season
	}
	if req.IsAnonymous != nil {
		post.IsAnonymous = *req.IsAnonymous
	}

	if err := db.DB.Save(&post).Error; err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The post has been updated.", "post": post})
}

// Delete removes a post with its comments and likes. Owners and teachers
// may delete.
func (h *PostHandler) Delete(c *gin.Context) {
	var post models.Post
	if err := db.DB.First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	role := middleware.CurrentRole(c)
	if post.UserID != middleware.CurrentUserID(c) && role != models.RoleTeacher && role != models.RoleAdmin {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The post has been deleted."})
}

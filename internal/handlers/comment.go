package handlers

import (
	"net/http"

	"schoolhub/internal/db"
	"schoolhub/internal/middleware"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
	likes    *services.LikeService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		comments: services.NewCommentService(db.DB),
		likes:    services.NewLikeService(db.DB),
	}
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		BadRequest(c, "invalid post id")
		return
	}

	var req struct {
		Content  string `json:"content" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "content is required")
		return
	}

	comment, err := h.comments.Create(middleware.CurrentUserID(c), postID,
		ugcPolicy.Sanitize(req.Content), req.ParentID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The comment has been created.", "comment": comment})
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		BadRequest(c, "invalid post id")
		return
	}

	comments, err := h.comments.ListByPost(postID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// BestComment returns the post's most-liked comment holding at least five
// likes, or null.
func (h *CommentHandler) BestComment(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		BadRequest(c, "invalid post id")
		return
	}

	best, err := h.likes.BestComment(postID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": best})
}

func (h *CommentHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var existing models.Comment
	if err := db.DB.First(&existing, id).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	if existing.UserID != middleware.CurrentUserID(c) {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "content is required")
		return
	}

	comment, err := h.comments.Update(id, ugcPolicy.Sanitize(req.Content))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The comment has been updated.", "comment": comment})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var existing models.Comment
	if err := db.DB.First(&existing, id).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	role := middleware.CurrentRole(c)
	if existing.UserID != middleware.CurrentUserID(c) && role != models.RoleTeacher && role != models.RoleAdmin {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	if err := h.comments.Delete(id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The comment has been deleted."})
}

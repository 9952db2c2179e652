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

type LikeHandler struct {
	likes *services.LikeService
}

func NewLikeHandler() *LikeHandler {
	return &LikeHandler{likes: services.NewLikeService(db.DB)}
}

// Create records a like for exactly one of a post or a comment.
func (h *LikeHandler) Create(c *gin.Context) {
	var req struct {
		PostID    *uint `json:"post_id"`
		CommentID *uint `json:"comment_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	like, err := h.likes.AddLike(middleware.CurrentUserID(c), req.PostID, req.CommentID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The like has been added.", "like": like})
}

// Delete removes one of the requester's own likes.
func (h *LikeHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var like models.Like
	if err := db.DB.First(&like, id).Error; err != nil {
		HandleServiceError(c, services.ErrLikeNotFound)
		return
	}
	if like.UserID != middleware.CurrentUserID(c) {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	if err := h.likes.RemoveLike(id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The like has been removed."})
}

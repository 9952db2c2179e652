package handlers

import (
	"net/http"

	"schoolhub/internal/db"
	"schoolhub/internal/middleware"
	"schoolhub/internal/models"
	"schoolhub/internal/services"

	"github.com/gin-gonic/gin"
)

type CarouselHandler struct{}

func NewCarouselHandler() *CarouselHandler {
	return &CarouselHandler{}
}

// Featured lists the posts currently on the carousel, newest first.
func (h *CarouselHandler) Featured(c *gin.Context) {
	var posts []models.Post
	err := db.DB.Preload("User").
		Where("is_carousel = ?", true).
		Order("updated_at DESC").
		Find(&posts).Error
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": renderPosts(posts, middleware.CurrentRole(c))})
}

func (h *CarouselHandler) Feature(c *gin.Context) {
	h.setCarousel(c, true, "The post has been featured.")
}

func (h *CarouselHandler) Unfeature(c *gin.Context) {
	h.setCarousel(c, false, "The post has been unfeatured.")
}

func (h *CarouselHandler) setCarousel(c *gin.Context, featured bool, message string) {
	var req struct {
		PostID uint `json:"post_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "post_id is required")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.PostID).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}

	if err := db.DB.Model(&post).Update("is_carousel", featured).Error; err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

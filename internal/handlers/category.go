package handlers

import (
	"net/http"

	"schoolhub/internal/db"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	var category models.Category
	if err := db.DB.First(&category, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

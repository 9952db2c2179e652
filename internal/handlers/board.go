package handlers

import (
	"net/http"

	"schoolhub/internal/db"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct{}

func NewBoardHandler() *BoardHandler {
	return &BoardHandler{}
}

// GetBoard returns a board with its categories.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	var board models.Board
	if err := db.DB.First(&board, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}

	var categories []models.Category
	if err := db.DB.Where("board_id = ?", board.ID).Find(&categories).Error; err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board, "categories": categories})
}

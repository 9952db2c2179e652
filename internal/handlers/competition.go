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

type CompetitionHandler struct{}

func NewCompetitionHandler() *CompetitionHandler {
	return &CompetitionHandler{}
}

type competitorInput struct {
	Name  string `json:"name" binding:"required"`
	Score int    `json:"score"`
}

// Create records a competition with its competitors in one transaction.
func (h *CompetitionHandler) Create(c *gin.Context) {
	var req struct {
		CategoryID  uint                   `json:"category_id" binding:"required"`
		Name        string                 `json:"name" binding:"required"`
		Date        time.Time              `json:"date" binding:"required"`
		Type        models.CompetitionType `json:"type" binding:"required"`
		Award       string                 `json:"award"`
		Result      string                 `json:"result"`
		Competitors []competitorInput      `json:"competitors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "category_id, name, date and type are required")
		return
	}
	if req.Type != models.CompetitionIndividual && req.Type != models.CompetitionTeam {
		BadRequest(c, "type must be individual or team")
		return
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}

	competition := models.Competition{
		UserID:     middleware.CurrentUserID(c),
		BoardID:    category.BoardID,
		CategoryID: category.ID,
		Name:       req.Name,
		Date:       req.Date,
		Type:       req.Type,
		Award:      req.Award,
		Result:     req.Result,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&competition).Error; err != nil {
			return err
		}
		for _, in := range req.Competitors {
			competitor := models.Competitor{
				CompetitionID: competition.ID,
				Name:          in.Name,
				Score:         in.Score,
			}
			if err := tx.Create(&competitor).Error; err != nil {
				return err
			}
			competition.Competitors = append(competition.Competitors, competitor)
		}
		return nil
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The competition has been created.", "competition": competition})
}

// List returns all competitions, most recent first, with competitors.
func (h *CompetitionHandler) List(c *gin.Context) {
	var competitions []models.Competition
	err := db.DB.Preload("Competitors").Order("date DESC").Find(&competitions).Error
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitions": competitions})
}

// ListByCategory returns the three most recent competitions of a category.
func (h *CompetitionHandler) ListByCategory(c *gin.Context) {
	categoryID := utils.StringToUint(c.Param("categoryId"))
	if categoryID == 0 {
		BadRequest(c, "invalid category id")
		return
	}

	var competitions []models.Competition
	err := db.DB.Preload("Competitors").
		Where("category_id = ?", categoryID).
		Order("date DESC").Limit(3).
		Find(&competitions).Error
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitions": competitions})
}

// Update rewrites a competition; when competitors are supplied the old
// roster is replaced wholesale.
func (h *CompetitionHandler) Update(c *gin.Context) {
	var competition models.Competition
	if err := db.DB.First(&competition, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}

	var req struct {
		Name        string                 `json:"name"`
		Date        *time.Time             `json:"date"`
		Type        models.CompetitionType `json:"type"`
		Award       *string                `json:"award"`
		Result      *string                `json:"result"`
		Competitors []competitorInput      `json:"competitors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if req.Name != "" {
		competition.Name = req.Name
	}
	if req.Date != nil {
		competition.Date = *req.Date
	}
	if req.Type != "" {
		if req.Type != models.CompetitionIndividual && req.Type != models.CompetitionTeam {
			BadRequest(c, "type must be individual or team")
			return
		}
		competition.Type = req.Type
	}
	if req.Award != nil {
		competition.Award = *req.Award
	}
	if req.Result != nil {
		competition.Result = *req.Result
	}
	competition.Competitors = nil

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&competition).Error; err != nil {
			return err
		}
		if req.Competitors == nil {
			return nil
		}
		if err := tx.Where("competition_id = ?", competition.ID).
			Delete(&models.Competitor{}).Error; err != nil {
			return err
		}
		for _, in := range req.Competitors {
			competitor := models.Competitor{
				CompetitionID: competition.ID,
				Name:          in.Name,
				Score:         in.Score,
			}
			if err := tx.Create(&competitor).Error; err != nil {
				return err
			}
			competition.Competitors = append(competition.Competitors, competitor)
		}
		return nil
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The competition has been updated.", "competition": competition})
}

func (h *CompetitionHandler) Delete(c *gin.Context) {
	var competition models.Competition
	if err := db.DB.First(&competition, utils.StringToUint(c.Param("id"))).Error; err != nil {
		HandleServiceError(c, services.ErrNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competition_id = ?", competition.ID).
			Delete(&models.Competitor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&competition).Error
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The competition has been deleted."})
}

package handlers

import (
	"net/http"
	"time"

	"schoolhub/internal/db"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PointHandler struct{}

func NewPointHandler() *PointHandler {
	return &PointHandler{}
}

// academicYear returns the window [Aug 1 of year, Aug 1 of year+1).
func academicYear(year int) (time.Time, time.Time) {
	from := time.Date(year, time.August, 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(1, 0, 0)
}

type pointInput struct {
	Team  string    `json:"team" binding:"required"`
	Event string    `json:"event" binding:"required"`
	Score int       `json:"score"`
	Date  time.Time `json:"date" binding:"required"`
}

// Create records a batch of scoreboard entries.
func (h *PointHandler) Create(c *gin.Context) {
	var req struct {
		Points []pointInput `json:"points" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "points with team, event and date are required")
		return
	}

	points := make([]models.Point, 0, len(req.Points))
	for _, in := range req.Points {
		points = append(points, models.Point{
			Team:  in.Team,
			Event: in.Event,
			Score: in.Score,
			Date:  in.Date,
		})
	}
	if err := db.DB.Create(&points).Error; err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The points have been recorded.", "points": points})
}

// TeamScore is a team's total over an academic year.
type TeamScore struct {
	Team  string `json:"team"`
	Total int    `json:"total"`
}

// Scoreboard sums each team's points over the academic year that starts
// on August 1st. Teams are listed in first-appearance order.
func (h *PointHandler) Scoreboard(c *gin.Context) {
	year := utils.StringToInt(c.Query("year"))
	if year == 0 {
		year = time.Now().Year()
		if time.Now().Month() < time.August {
			year--
		}
	}
	from, to := academicYear(year)

	var scores []TeamScore
	err := db.DB.Model(&models.Point{}).
		Select("team, SUM(score) AS total").
		Where("date >= ? AND date < ?", from, to).
		Group("team").
		Order("MIN(id) ASC").
		Scan(&scores).Error
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	var points []models.Point
	err = db.DB.Where("date >= ? AND date < ?", from, to).
		Order("date ASC").Find(&points).Error
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "scores": scores, "points": points})
}

// Update rewrites a batch of existing entries by id.
func (h *PointHandler) Update(c *gin.Context) {
	var req struct {
		Points []struct {
			ID uint `json:"id" binding:"required"`
			pointInput
		} `json:"points" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "points with id, team, event and date are required")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range req.Points {
			var point models.Point
			if err := tx.First(&point, in.ID).Error; err != nil {
				return services.ErrNotFound
			}
			point.Team = in.Team
			point.Event = in.Event
			point.Score = in.Score
			point.Date = in.Date
			if err := tx.Save(&point).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The points have been updated."})
}

// Delete removes a batch of entries by id.
func (h *PointHandler) Delete(c *gin.Context) {
	var req struct {
		IDs []uint `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "ids are required")
		return
	}

	if err := db.DB.Where("id IN ?", req.IDs).Delete(&models.Point{}).Error; err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The points have been deleted."})
}

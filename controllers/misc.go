package controllers

import (
	"net/http"
	"strings"

	models "SkateHubba/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Health check
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

type subscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// @Summary Subscribes an email to the newsletter
// @Tags misc
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /subscribe [post]
func Subscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil || !strings.Contains(req.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		subscriber := models.Subscriber{
			Email:  strings.ToLower(strings.TrimSpace(req.Email)),
			Source: req.Source,
		}
		if err := db.Create(&subscriber).Error; err != nil {
			// Repeat signups are fine; report success either way.
			c.JSON(http.StatusOK, gin.H{"message": "Already subscribed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
	}
}

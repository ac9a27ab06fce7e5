package controllers

import (
	"net/http"

	constants "SkateHubba/constants/skate"
	"SkateHubba/middleware"
	models "SkateHubba/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func spotJSON(s *models.Spot) gin.H {
	return gin.H{
		"id":             s.ID,
		"name":           s.Name,
		"description":    s.Description,
		"latitude":       s.Latitude,
		"longitude":      s.Longitude,
		"address":        s.Address,
		"city":           s.City,
		"state":          s.State,
		"country":        s.Country,
		"spot_type":      s.SpotType,
		"difficulty":     s.Difficulty,
		"features":       s.Features,
		"image_urls":     s.ImageURLs,
		"verified":       s.Verified,
		"total_check_ins": s.TotalCheckIns,
		"rating":         s.Rating,
	}
}

// @Summary Lists skate spots
// @Tags spots
// @Produce json
// @Param city query string false "City filter"
// @Param type query string false "Spot type filter"
// @Success 200 {array} object{name=string,latitude=number}
// @Router /spots [get]
func ListSpots(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("active = true").Order("total_check_ins desc").Limit(200)
		if city := c.Query("city"); city != "" {
			query = query.Where("city = ?", city)
		}
		if spotType := c.Query("type"); spotType != "" {
			query = query.Where("spot_type = ?", spotType)
		}

		var spots []models.Spot
		if err := query.Find(&spots).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching spots"})
			return
		}

		list := make([]gin.H, len(spots))
		for i := range spots {
			list[i] = spotJSON(&spots[i])
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary Gets one spot
// @Tags spots
// @Produce json
// @Param id path int true "Spot id"
// @Success 200 {object} object{name=string}
// @Failure 404 {object} object{error=string}
// @Router /spots/{id} [get]
func GetSpot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var spot models.Spot
		if err := db.Where("id = ? AND active = true", c.Param("id")).
			First(&spot).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
			return
		}
		c.JSON(http.StatusOK, spotJSON(&spot))
	}
}

type createSpotRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	Country     string         `json:"country"`
	SpotType    string         `json:"spot_type"`
	Difficulty  string         `json:"difficulty"`
	Features    datatypes.JSON `json:"features"`
	ImageURLs   datatypes.JSON `json:"image_urls"`
}

// @Summary Adds a new spot
// @Tags spots
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 201 {object} object{id=integer}
// @Failure 400 {object} object{error=string}
// @Router /auth/spots [post]
// @Security ApiKeyAuth
func CreateSpot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req createSpotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Name == "" || (req.Latitude == 0 && req.Longitude == 0) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and coordinates are required"})
			return
		}

		spot := models.Spot{
			Name:        req.Name,
			Description: req.Description,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			Country:     req.Country,
			SpotType:    req.SpotType,
			Difficulty:  req.Difficulty,
			Features:    req.Features,
			ImageURLs:   req.ImageURLs,
			CreatedByID: &userID,
		}
		if err := db.Create(&spot).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating spot"})
			return
		}
		c.JSON(http.StatusCreated, spotJSON(&spot))
	}
}

type checkInRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	PhotoURL    string   `json:"photo_url"`
	TrickLanded string   `json:"trick_landed"`
	Notes       string   `json:"notes"`
}

// @Summary Checks in at a spot
// @Description Records the visit, awards check-in points and bumps the spot counter
// @Tags spots
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Spot id"
// @Success 201 {object} object{points_earned=integer}
// @Failure 404 {object} object{error=string}
// @Router /auth/spots/{id}/checkins [post]
// @Security ApiKeyAuth
func CreateCheckIn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var spot models.Spot
		if err := db.Where("id = ? AND active = true", c.Param("id")).
			First(&spot).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
			return
		}

		var req checkInRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		checkIn := models.CheckIn{
			UserID:       userID,
			SpotID:       spot.ID,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			PhotoURL:     req.PhotoURL,
			TrickLanded:  req.TrickLanded,
			Notes:        req.Notes,
			PointsEarned: constants.CheckInPoints,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&checkIn).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Spot{}).Where("id = ?", spot.ID).
				Update("total_check_ins", gorm.Expr("total_check_ins + 1")).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", userID).
				Updates(map[string]interface{}{
					"total_points":   gorm.Expr("total_points + ?", constants.CheckInPoints),
					"check_in_count": gorm.Expr("check_in_count + 1"),
				}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording check-in"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":            checkIn.ID,
			"spot_id":       checkIn.SpotID,
			"points_earned": checkIn.PointsEarned,
			"created_at":    checkIn.CreatedAt,
		})
	}
}

// @Summary Lists a spot's recent check-ins
// @Tags spots
// @Produce json
// @Param id path int true "Spot id"
// @Success 200 {array} object{username=string}
// @Router /spots/{id}/checkins [get]
func ListCheckIns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var checkIns []models.CheckIn
		if err := db.Preload("User").
			Where("spot_id = ?", c.Param("id")).
			Order("created_at desc").Limit(50).
			Find(&checkIns).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching check-ins"})
			return
		}

		list := make([]gin.H, len(checkIns))
		for i, ci := range checkIns {
			list[i] = gin.H{
				"id":            ci.ID,
				"user_id":       ci.UserID,
				"username":      ci.User.Username,
				"photo_url":     ci.PhotoURL,
				"trick_landed":  ci.TrickLanded,
				"notes":         ci.Notes,
				"points_earned": ci.PointsEarned,
				"created_at":    ci.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, list)
	}
}

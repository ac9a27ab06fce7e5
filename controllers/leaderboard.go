package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	models "SkateHubba/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "leaderboard:global"
const leaderboardCacheTTL = 60 * time.Second

type leaderboardRow struct {
	Rank         int    `json:"rank"`
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url"`
	TotalPoints  int    `json:"total_points"`
	CheckInCount int    `json:"check_in_count"`
	GamesWon     int    `json:"games_won"`
}

// @Summary Global leaderboard
// @Description Top skaters by total points. Served from a short-lived cache.
// @Tags leaderboard
// @Produce json
// @Success 200 {array} object{rank=integer,username=string,total_points=integer}
// @Router /leaderboard [get]
func GetLeaderboard(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if rdb != nil {
			if cached, err := rdb.Get(ctx, leaderboardCacheKey).Result(); err == nil {
				var rows []leaderboardRow
				if json.Unmarshal([]byte(cached), &rows) == nil {
					c.JSON(http.StatusOK, rows)
					return
				}
			}
		}

		rows, err := buildLeaderboard(db, 100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building leaderboard"})
			return
		}

		if rdb != nil {
			if payload, err := json.Marshal(rows); err == nil {
				rdb.Set(context.Background(), leaderboardCacheKey, payload, leaderboardCacheTTL)
			}
		}
		c.JSON(http.StatusOK, rows)
	}
}

func buildLeaderboard(db *gorm.DB, limit int) ([]leaderboardRow, error) {
	var users []models.User
	if err := db.Order("total_points desc, games_won desc, id asc").
		Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	rows := make([]leaderboardRow, len(users))
	for i, user := range users {
		rows[i] = leaderboardRow{
			Rank:         i + 1,
			UserID:       user.ID,
			Username:     user.Username,
			DisplayName:  user.DisplayName,
			AvatarURL:    user.AvatarURL,
			TotalPoints:  user.TotalPoints,
			CheckInCount: user.CheckInCount,
			GamesWon:     user.GamesWon,
		}
	}
	return rows, nil
}

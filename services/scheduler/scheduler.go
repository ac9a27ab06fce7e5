package scheduler

import (
	"time"

	constants "SkateHubba/constants/skate"
	models "SkateHubba/models/postgres"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Start launches the periodic jobs: leaderboard materialization and
// cleanup of waiting games that never started.
func Start(db *gorm.DB, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 10m", func() {
		if err := RebuildLeaderboard(db); err != nil {
			logger.Error("leaderboard rebuild failed", zap.Error(err))
		}
	})

	c.AddFunc("@hourly", func() {
		cutoff := time.Now().Add(-7 * 24 * time.Hour)
		result := db.Where("status = ? AND created_at <= ?", constants.GameStatusWaiting, cutoff).
			Delete(&models.SkateGame{})
		if result.Error != nil {
			logger.Error("stale game cleanup failed", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			logger.Info("stale waiting games removed",
				zap.Int64("games_deleted", result.RowsAffected))
		}
	})

	c.Start()
	return c
}

// RebuildLeaderboard rewrites the global leaderboard_entries rows from
// the denormalized user counters.
func RebuildLeaderboard(db *gorm.DB) error {
	var users []models.User
	if err := db.Order("total_points desc, games_won desc, id asc").
		Limit(100).Find(&users).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("leaderboard_type = ?", "global").
			Delete(&models.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		for i, user := range users {
			entry := models.LeaderboardEntry{
				UserID:          user.ID,
				LeaderboardType: "global",
				TotalPoints:     user.TotalPoints,
				CheckInPoints:   user.CheckInCount * constants.CheckInPoints,
				GamePoints:      user.GamesWon * constants.WinnerPoints,
				Rank:            i + 1,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

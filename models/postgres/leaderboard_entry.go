package postgres

import (
	"time"
)

/*
 * 'LeaderboardEntry' is a materialized ranking row, rebuilt
 * periodically by the scheduler so the leaderboard endpoint never has
 * to sort the whole users table on read.
 */
type LeaderboardEntry struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_leaderboard_entries_type_user"`
	LeaderboardType string    `gorm:"size:20;not null;uniqueIndex:idx_leaderboard_entries_type_user;index:idx_leaderboard_entries_type"`
	TotalPoints     int       `gorm:"default:0"`
	CheckInPoints   int       `gorm:"default:0"`
	GamePoints      int       `gorm:"default:0"`
	Rank            int       `gorm:"default:0"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
}

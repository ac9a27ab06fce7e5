package postgres

import (
	"time"
)

/*
 * 'User' contains the blueprint definition of a SkateHubba account.
 * The point/game counters are denormalized here so the leaderboard and
 * profile screens never have to aggregate on read.
 */
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	DisplayName  string    `gorm:"size:100"`
	AvatarURL    string    `gorm:"size:255"`
	Bio          string    `gorm:"size:500"`
	TotalPoints  int       `gorm:"default:0"`
	CheckInCount int       `gorm:"default:0"`
	GamesPlayed  int       `gorm:"default:0"`
	GamesWon     int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Inventory []*InventoryItem `gorm:"foreignKey:UserID"`
	CheckIns  []*CheckIn       `gorm:"foreignKey:UserID"`
	Orders    []*Order         `gorm:"foreignKey:UserID"`
}

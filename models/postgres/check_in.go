package postgres

import (
	"time"
)

/*
 * 'CheckIn' records one visit to a spot. Points are awarded once at
 * insert time and mirrored into the user's total.
 */
type CheckIn struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index:idx_check_ins_user"`
	SpotID       uint      `gorm:"not null;index:idx_check_ins_spot"`
	Latitude     *float64  ``
	Longitude    *float64  ``
	PhotoURL     string    `gorm:"size:255"`
	TrickLanded  string    `gorm:"size:100"`
	Notes        string    `gorm:"size:500"`
	Verified     bool      `gorm:"default:false"`
	PointsEarned int       `gorm:"default:10"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
	Spot Spot `gorm:"foreignKey:SpotID"`
}

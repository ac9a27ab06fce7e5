package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Spot' is one skate spot on the map. Features and image lists are
 * jsonb arrays; the check-in counter is denormalized.
 */
type Spot struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"size:150;not null"`
	Description   string         `gorm:"size:1000"`
	Latitude      float64        `gorm:"not null"`
	Longitude     float64        `gorm:"not null"`
	Address       string         `gorm:"size:255"`
	City          string         `gorm:"size:100;index:idx_spots_city"`
	State         string         `gorm:"size:100"`
	Country       string         `gorm:"size:100"`
	SpotType      string         `gorm:"size:30;index:idx_spots_type"`
	Difficulty    string         `gorm:"size:20"`
	Features      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	ImageURLs     datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Verified      bool           `gorm:"default:false"`
	Active        bool           `gorm:"default:true"`
	TotalCheckIns int            `gorm:"default:0"`
	Rating        *float64       ``
	CreatedByID   *uint          ``
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	CreatedBy *User      `gorm:"foreignKey:CreatedByID"`
	CheckIns  []*CheckIn `gorm:"foreignKey:SpotID"`
}

package postgres

import (
	"time"
)

/*
 * 'TurnResponse' is one responder's attempt at the set trick. The
 * composite unique index is what makes double submissions impossible
 * even when two requests race.
 */
type TurnResponse struct {
	ID        uint       `gorm:"primaryKey"`
	TurnID    uint       `gorm:"not null;uniqueIndex:idx_turn_responses_turn_user"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_turn_responses_turn_user"`
	Landed    bool       `gorm:"not null"`
	VideoURL  string     `gorm:"size:255"`
	JudgedAt  *time.Time ``
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Turn GameTurn `gorm:"foreignKey:TurnID"`
	User User     `gorm:"foreignKey:UserID"`
}

package postgres

import (
	"time"
)

/*
 * 'GameTurn' is one round's trick-setting unit. Exactly one turn per
 * game is non-completed while the match is active.
 */
type GameTurn struct {
	ID            uint      `gorm:"primaryKey"`
	GameID        uint      `gorm:"not null;index"`
	RoundNumber   int       `gorm:"not null"`
	SetterID      uint      `gorm:"not null"`
	TrickName     string    `gorm:"size:100"`
	TrickVideoURL string    `gorm:"size:255"`
	Status        string    `gorm:"size:20;default:'setting'"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game      SkateGame       `gorm:"foreignKey:GameID"`
	Setter    User            `gorm:"foreignKey:SetterID"`
	Responses []*TurnResponse `gorm:"foreignKey:TurnID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

package postgres

import (
	"time"
)

/*
 * 'GameParticipant' represents one user's membership in one match.
 * Letters is always a prefix of "SKATE"; a full word means elimination.
 */
type GameParticipant struct {
	ID            uint      `gorm:"primaryKey"`
	GameID        uint      `gorm:"not null;uniqueIndex:idx_game_participants_game_user"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_game_participants_game_user"`
	Letters       string    `gorm:"size:5;default:''"`
	IsEliminated  bool      `gorm:"default:false"`
	FinalPosition *int      ``
	JoinedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game SkateGame `gorm:"foreignKey:GameID"`
	User User      `gorm:"foreignKey:UserID"`
}

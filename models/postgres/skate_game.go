package postgres

import (
	"math/rand"
	"time"

	constants "SkateHubba/constants/skate"

	"gorm.io/gorm"
)

/*
 * 'SkateGame' is one S.K.A.T.E. match, from lobby to decided winner.
 * It references the participants and the per-round turns.
 */
type SkateGame struct {
	ID              uint       `gorm:"primaryKey"`
	GameCode        string     `gorm:"size:10;not null;uniqueIndex"`
	Status          string     `gorm:"size:20;default:'waiting';index:idx_skate_games_status"`
	CurrentRound    int        `gorm:"default:1"`
	CurrentSetterID uint       `gorm:"index"`
	WinnerID        *uint      ``
	MaxPlayers      int        `gorm:"default:2"`
	IsPublic        bool       `gorm:"default:true;index:idx_skate_games_public"`
	CreatedByID     uint       `gorm:"not null"`
	StartedAt       *time.Time ``
	CompletedAt     *time.Time ``
	CreatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	CreatedBy    User               `gorm:"foreignKey:CreatedByID"`
	Participants []*GameParticipant `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Turns        []*GameTurn        `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateGameCode returns a random shareable code. Codes are stored
// upper-cased and compared case-insensitively at the API edge.
func GenerateGameCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// BeforeCreate re-checks code uniqueness. Collisions are close to
// impossible at this keyspace, but the loop makes them harmless.
func (g *SkateGame) BeforeCreate(tx *gorm.DB) (err error) {
	if g.GameCode != "" {
		return nil
	}
	for {
		newCode := GenerateGameCode(constants.GameCodeLength)
		var existing SkateGame
		if err := tx.Where("game_code = ?", newCode).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				g.GameCode = newCode
				return nil
			}
			return err
		}
		// Otherwise, loop again to generate a new unique code
	}
}

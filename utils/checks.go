package utils

import (
	"SkateHubba/models/postgres"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// FindGameByCode looks a game up by its shareable code. Codes are
// stored upper-cased; comparison is case-insensitive for callers.
func FindGameByCode(db *gorm.DB, code string) (*postgres.SkateGame, error) {
	var game postgres.SkateGame
	result := db.Where("game_code = ?", strings.ToUpper(code)).First(&game)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game not found")
		}
		return nil, result.Error
	}

	return &game, nil
}

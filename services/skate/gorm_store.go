package skate

import (
	"errors"
	"strings"

	constants "SkateHubba/constants/skate"
	models "SkateHubba/models/postgres"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the PostgreSQL-backed Store. Inside a transaction it
// takes a FOR UPDATE lock on the game row, so concurrent operations on
// one game are processed strictly one at a time.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InTx(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
}

func (s *GormStore) GameByCode(code string) (*models.SkateGame, error) {
	var game models.SkateGame
	q := s.db
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Where("game_code = ?", strings.ToUpper(code)).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GormStore) CreateGame(game *models.SkateGame) error {
	return s.db.Create(game).Error
}

func (s *GormStore) SaveGame(game *models.SkateGame) error {
	return s.db.Save(game).Error
}

func (s *GormStore) Participants(gameID uint) ([]models.GameParticipant, error) {
	var participants []models.GameParticipant
	err := s.db.Where("game_id = ?", gameID).Order("id asc").Find(&participants).Error
	return participants, err
}

func (s *GormStore) Participant(gameID, userID uint) (*models.GameParticipant, error) {
	var p models.GameParticipant
	err := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) ParticipantCount(gameID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.GameParticipant{}).
		Where("game_id = ?", gameID).Count(&count).Error
	return int(count), err
}

func (s *GormStore) EliminatedCount(gameID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.GameParticipant{}).
		Where("game_id = ? AND is_eliminated = true", gameID).Count(&count).Error
	return int(count), err
}

func (s *GormStore) CreateParticipant(p *models.GameParticipant) error {
	err := s.db.Create(p).Error
	if isUniqueViolation(err) {
		return ErrAlreadyJoined
	}
	return err
}

func (s *GormStore) SaveParticipant(p *models.GameParticipant) error {
	return s.db.Save(p).Error
}

func (s *GormStore) TurnByID(id uint) (*models.GameTurn, error) {
	var turn models.GameTurn
	err := s.db.Where("id = ?", id).First(&turn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &turn, nil
}

func (s *GormStore) SettingTurn(gameID uint, round int) (*models.GameTurn, error) {
	var turn models.GameTurn
	err := s.db.Where(
		"game_id = ? AND round_number = ? AND status = ?",
		gameID, round, constants.TurnStatusSetting,
	).First(&turn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &turn, nil
}

func (s *GormStore) CreateTurn(t *models.GameTurn) error {
	return s.db.Create(t).Error
}

func (s *GormStore) SaveTurn(t *models.GameTurn) error {
	return s.db.Save(t).Error
}

func (s *GormStore) CompleteTurn(turnID uint) (bool, error) {
	result := s.db.Model(&models.GameTurn{}).
		Where("id = ? AND status = ?", turnID, constants.TurnStatusResponding).
		Update("status", constants.TurnStatusCompleted)
	return result.RowsAffected > 0, result.Error
}

func (s *GormStore) CreateResponse(r *models.TurnResponse) error {
	err := s.db.Create(r).Error
	if isUniqueViolation(err) {
		return ErrDuplicateResponse
	}
	return err
}

func (s *GormStore) ResponseCount(turnID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.TurnResponse{}).
		Where("turn_id = ?", turnID).Count(&count).Error
	return int(count), err
}

func (s *GormStore) AddUserStats(userID uint, played, won, points int) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"games_played": gorm.Expr("games_played + ?", played),
			"games_won":    gorm.Expr("games_won + ?", won),
			"total_points": gorm.Expr("total_points + ?", points),
		}).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

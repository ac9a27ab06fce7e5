package skate

import (
	models "SkateHubba/models/postgres"
)

/*
 * Store is the engine's view of persistence. The engine never touches
 * a database handle directly; every operation runs inside InTx against
 * whatever implementation it was constructed with, which is what lets
 * the tests drive the whole state machine through MemStore.
 *
 * Lookup methods return (nil, nil) when the row does not exist; the
 * engine turns that into its own not-found errors.
 */
type Store interface {
	// InTx runs fn atomically. Implementations must guarantee that two
	// concurrent operations on the same game cannot interleave their
	// reads and writes (row lock or global lock, either works).
	InTx(fn func(tx Store) error) error

	GameByCode(code string) (*models.SkateGame, error)
	CreateGame(game *models.SkateGame) error
	SaveGame(game *models.SkateGame) error

	// Participants returns all participants of a game in join order.
	Participants(gameID uint) ([]models.GameParticipant, error)
	Participant(gameID, userID uint) (*models.GameParticipant, error)
	ParticipantCount(gameID uint) (int, error)
	EliminatedCount(gameID uint) (int, error)
	CreateParticipant(p *models.GameParticipant) error
	SaveParticipant(p *models.GameParticipant) error

	TurnByID(id uint) (*models.GameTurn, error)
	SettingTurn(gameID uint, round int) (*models.GameTurn, error)
	CreateTurn(t *models.GameTurn) error
	SaveTurn(t *models.GameTurn) error
	// CompleteTurn flips a turn from responding to completed and
	// reports whether this call was the one that did it.
	CompleteTurn(turnID uint) (bool, error)

	// CreateResponse returns ErrDuplicateResponse when the (turn,
	// responder) pair already exists.
	CreateResponse(r *models.TurnResponse) error
	ResponseCount(turnID uint) (int, error)

	AddUserStats(userID uint, played, won, points int) error
}

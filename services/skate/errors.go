package skate

import "errors"

// Engine error kinds. Controllers match these with errors.Is and map
// them to HTTP statuses; the engine never retries on its own.
var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("action not allowed for this player")
	ErrGameNotFound        = errors.New("game not found")
	ErrTurnNotFound        = errors.New("turn not found")
	ErrInvalidState        = errors.New("operation not valid in the game's current state")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrAlreadyJoined       = errors.New("already in this game")
	ErrGameFull            = errors.New("game is full")
	ErrInsufficientPlayers = errors.New("need at least 2 players to start")
	ErrDuplicateResponse   = errors.New("already responded to this turn")
)

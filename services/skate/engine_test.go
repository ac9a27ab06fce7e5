package skate

import (
	"testing"
	"time"

	constants "SkateHubba/constants/skate"
	models "SkateHubba/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA uint = 101
	userB uint = 102
	userC uint = 103
)

func newTestEngine() (*Engine, *MemStore) {
	store := NewMemStore()
	engine := New(store)
	engine.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return engine, store
}

// newActiveGame creates a started two-player game (A hosts, B joined).
func newActiveGame(t *testing.T, engine *Engine) *models.SkateGame {
	t.Helper()
	game, err := engine.Create(userA, 2, true)
	require.NoError(t, err)
	_, err = engine.Join(game.GameCode, userB)
	require.NoError(t, err)
	game, err = engine.Start(game.GameCode, userA)
	require.NoError(t, err)
	return game
}

// openTurn returns the single non-completed turn of a game.
func openTurn(t *testing.T, store *MemStore, gameID uint) *models.GameTurn {
	t.Helper()
	var open *models.GameTurn
	for _, turn := range store.turns {
		if turn.GameID == gameID && turn.Status != constants.TurnStatusCompleted {
			require.Nil(t, open, "more than one open turn for game %d", gameID)
			open = turn
		}
	}
	require.NotNil(t, open, "no open turn for game %d", gameID)
	return open
}

func TestCreateGame(t *testing.T) {
	engine, store := newTestEngine()

	game, err := engine.Create(userA, 0, true)
	require.NoError(t, err)
	assert.Equal(t, constants.GameStatusWaiting, game.Status)
	assert.Equal(t, 1, game.CurrentRound)
	assert.Equal(t, constants.DefaultMaxPlayers, game.MaxPlayers)
	assert.Equal(t, userA, game.CurrentSetterID)
	assert.Equal(t, userA, game.CreatedByID)
	assert.Len(t, game.GameCode, constants.GameCodeLength)
	assert.Nil(t, game.StartedAt)
	assert.Nil(t, game.WinnerID)

	// The host joins their own game at creation time.
	host, err := store.Participant(game.ID, userA)
	require.NoError(t, err)
	require.NotNil(t, host)
	assert.Equal(t, "", host.Letters)
	assert.False(t, host.IsEliminated)
}

func TestCreateGameValidation(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := engine.Create(0, 2, true)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = engine.Create(userA, 1, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestJoinGame(t *testing.T) {
	engine, _ := newTestEngine()

	game, err := engine.Create(userA, 2, true)
	require.NoError(t, err)

	_, err = engine.Join("ZZZZZZ", userB)
	assert.ErrorIs(t, err, ErrGameNotFound)

	participant, err := engine.Join(game.GameCode, userB)
	require.NoError(t, err)
	assert.Equal(t, game.ID, participant.GameID)
	assert.Equal(t, "", participant.Letters)

	_, err = engine.Join(game.GameCode, userB)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = engine.Join(game.GameCode, userC)
	assert.ErrorIs(t, err, ErrGameFull)

	_, err = engine.Start(game.GameCode, userA)
	require.NoError(t, err)
	_, err = engine.Join(game.GameCode, userC)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStartGame(t *testing.T) {
	engine, store := newTestEngine()

	game, err := engine.Create(userA, 3, true)
	require.NoError(t, err)

	// Host alone is not enough.
	_, err = engine.Start(game.GameCode, userA)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)

	_, err = engine.Join(game.GameCode, userB)
	require.NoError(t, err)

	_, err = engine.Start(game.GameCode, userB)
	assert.ErrorIs(t, err, ErrForbidden)

	game, err = engine.Start(game.GameCode, userA)
	require.NoError(t, err)
	assert.Equal(t, constants.GameStatusActive, game.Status)
	require.NotNil(t, game.StartedAt)
	assert.Equal(t, 1, game.CurrentRound)

	turn := openTurn(t, store, game.ID)
	assert.Equal(t, 1, turn.RoundNumber)
	assert.Equal(t, userA, turn.SetterID)
	assert.Equal(t, constants.TurnStatusSetting, turn.Status)

	_, err = engine.Start(game.GameCode, userA)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSetTrick(t *testing.T) {
	engine, store := newTestEngine()
	game := newActiveGame(t, engine)

	_, err := engine.SetTrick(game.GameCode, userB, "kickflip", "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.SetTrick(game.GameCode, userA, "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	turn, err := engine.SetTrick(game.GameCode, userA, "kickflip", "https://clips.example/kf.mp4")
	require.NoError(t, err)
	assert.Equal(t, "kickflip", turn.TrickName)
	assert.Equal(t, constants.TurnStatusResponding, turn.Status)

	// The round's turn is already open for responses.
	_, err = engine.SetTrick(game.GameCode, userA, "heelflip", "")
	assert.ErrorIs(t, err, ErrInvalidState)

	open := openTurn(t, store, game.ID)
	assert.Equal(t, constants.TurnStatusResponding, open.Status)
}

func TestSetTrickBeforeStart(t *testing.T) {
	engine, _ := newTestEngine()
	game, err := engine.Create(userA, 2, true)
	require.NoError(t, err)

	_, err = engine.SetTrick(game.GameCode, userA, "kickflip", "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRespondValidation(t *testing.T) {
	engine, _ := newTestEngine()
	game := newActiveGame(t, engine)

	turn, err := engine.SetTrick(game.GameCode, userA, "kickflip", "")
	require.NoError(t, err)

	// The setter judges, never responds.
	_, err = engine.Respond(game.GameCode, userA, turn.ID, true, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Outsiders can't respond.
	_, err = engine.Respond(game.GameCode, userC, turn.ID, true, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.Respond(game.GameCode, userB, turn.ID+999, true, "")
	assert.ErrorIs(t, err, ErrTurnNotFound)
}

func TestRespondBeforeTrickIsSet(t *testing.T) {
	engine, store := newTestEngine()
	game := newActiveGame(t, engine)

	turn := openTurn(t, store, game.ID)
	_, err := engine.Respond(game.GameCode, userB, turn.ID, false, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRespondMissAddsLetterAndRotates(t *testing.T) {
	engine, store := newTestEngine()
	game := newActiveGame(t, engine)

	turn, err := engine.SetTrick(game.GameCode, userA, "kickflip", "")
	require.NoError(t, err)

	result, err := engine.Respond(game.GameCode, userB, turn.ID, false, "")
	require.NoError(t, err)
	assert.False(t, result.GameOver)
	require.NotNil(t, result.Response)
	assert.False(t, result.Response.Landed)
	require.NotNil(t, result.Response.JudgedAt)

	participant, err := store.Participant(game.ID, userB)
	require.NoError(t, err)
	assert.Equal(t, "S", participant.Letters)
	assert.False(t, participant.IsEliminated)

	updated, err := store.GameByCode(game.GameCode)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentRound)
	assert.Equal(t, userB, updated.CurrentSetterID)

	next := openTurn(t, store, game.ID)
	assert.Equal(t, 2, next.RoundNumber)
	assert.Equal(t, userB, next.SetterID)
	assert.Equal(t, constants.TurnStatusSetting, next.Status)
}

func TestRespondDuplicate(t *testing.T) {
	engine, _ := newTestEngine()

	game, err := engine.Create(userA, 3, true)
	require.NoError(t, err)
	_, err = engine.Join(game.GameCode, userB)
	require.NoError(t, err)
	_, err = engine.Join(game.GameCode, userC)
	require.NoError(t, err)
	_, err = engine.Start(game.GameCode, userA)
	require.NoError(t, err)

	turn, err := engine.SetTrick(game.GameCode, userA, "kickflip", "")
	require.NoError(t, err)

	_, err = engine.Respond(game.GameCode, userB, turn.ID, true, "")
	require.NoError(t, err)

	_, err = engine.Respond(game.GameCode, userB, turn.ID, false, "")
	assert.ErrorIs(t, err, ErrDuplicateResponse)
}

// Full two-player match: B takes one letter early, then A misses every
// trick B sets until A spells SKATE and B wins.
func TestTwoPlayerGameToCompletion(t *testing.T) {
	engine, store := newTestEngine()
	game := newActiveGame(t, engine)

	// Round 1: A sets, B misses -> "S".
	turn, err := engine.SetTrick(game.GameCode, userA, "kickflip", "")
	require.NoError(t, err)
	result, err := engine.Respond(game.GameCode, userB, turn.ID, false, "")
	require.NoError(t, err)
	assert.False(t, result.GameOver)

	missesByA := 0
	for round := 2; missesByA < 5; round++ {
		current, err := store.GameByCode(game.GameCode)
		require.NoError(t, err)
		require.Equal(t, constants.GameStatusActive, current.Status)
		require.Equal(t, round, current.CurrentRound)

		setter := current.CurrentSetterID
		responder := userA
		if setter == userA {
			responder = userB
		}

		turn, err = engine.SetTrick(game.GameCode, setter, "heelflip", "")
		require.NoError(t, err)

		// A misses everything; B lands everything from here on.
		landed := responder == userB
		result, err = engine.Respond(game.GameCode, responder, turn.ID, landed, "")
		require.NoError(t, err)
		if responder == userA {
			missesByA++
		}
	}

	require.True(t, result.GameOver)
	assert.Equal(t, userB, result.WinnerID)

	final, err := store.GameByCode(game.GameCode)
	require.NoError(t, err)
	assert.Equal(t, constants.GameStatusCompleted, final.Status)
	require.NotNil(t, final.WinnerID)
	assert.Equal(t, userB, *final.WinnerID)
	require.NotNil(t, final.CompletedAt)

	loser, err := store.Participant(game.ID, userA)
	require.NoError(t, err)
	assert.Equal(t, "SKATE", loser.Letters)
	assert.True(t, loser.IsEliminated)
	require.NotNil(t, loser.FinalPosition)
	assert.Equal(t, 1, *loser.FinalPosition)

	winner, err := store.Participant(game.ID, userB)
	require.NoError(t, err)
	assert.Equal(t, "S", winner.Letters)
	assert.False(t, winner.IsEliminated)

	// Points policy: winner +1 won, +50 points; both +1 played.
	statsB := store.UserStats(userB)
	assert.Equal(t, 1, statsB.GamesPlayed)
	assert.Equal(t, 1, statsB.GamesWon)
	assert.Equal(t, constants.WinnerPoints, statsB.TotalPoints)
	statsA := store.UserStats(userA)
	assert.Equal(t, 1, statsA.GamesPlayed)
	assert.Equal(t, 0, statsA.GamesWon)
	assert.Equal(t, 0, statsA.TotalPoints)

	// Terminal state is immutable: no open turn, no further moves.
	for _, turn := range store.turns {
		assert.Equal(t, constants.TurnStatusCompleted, turn.Status)
	}
	_, err = engine.SetTrick(game.GameCode, userB, "kickflip", "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

// Three players: an elimination mid-game shrinks the responder set and
// the rotation skips the eliminated player.
func TestThreePlayerElimination(t *testing.T) {
	engine, store := newTestEngine()

	game, err := engine.Create(userA, 3, true)
	require.NoError(t, err)
	_, err = engine.Join(game.GameCode, userB)
	require.NoError(t, err)
	_, err = engine.Join(game.GameCode, userC)
	require.NoError(t, err)
	_, err = engine.Start(game.GameCode, userA)
	require.NoError(t, err)

	// Put B one miss from elimination.
	participant, err := store.Participant(game.ID, userB)
	require.NoError(t, err)
	participant.Letters = "SKAT"
	require.NoError(t, store.SaveParticipant(participant))

	turn, err := engine.SetTrick(game.GameCode, userA, "tre flip", "")
	require.NoError(t, err)

	_, err = engine.Respond(game.GameCode, userB, turn.ID, false, "")
	require.NoError(t, err)

	eliminated, err := store.Participant(game.ID, userB)
	require.NoError(t, err)
	assert.True(t, eliminated.IsEliminated)
	assert.Equal(t, "SKATE", eliminated.Letters)
	require.NotNil(t, eliminated.FinalPosition)
	assert.Equal(t, 1, *eliminated.FinalPosition)

	// B's elimination shrank the eligible responder count to one, and
	// B's own response already satisfied it, so the round closed
	// without waiting for C. Rotation lands on C (B is skipped).
	current, err := store.GameByCode(game.GameCode)
	require.NoError(t, err)
	assert.Equal(t, constants.GameStatusActive, current.Status)
	assert.Equal(t, 2, current.CurrentRound)
	assert.Equal(t, userC, current.CurrentSetterID)

	// C's late answer hits the already-completed turn.
	_, err = engine.Respond(game.GameCode, userC, turn.ID, true, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	// Eliminated players can't respond in later rounds either.
	next, err := engine.SetTrick(game.GameCode, userC, "bs flip", "")
	require.NoError(t, err)
	_, err = engine.Respond(game.GameCode, userB, next.ID, true, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// A landing closes round 2 (A is the only eligible responder) and
	// rotation wraps back to A.
	result, err := engine.Respond(game.GameCode, userA, next.ID, true, "")
	require.NoError(t, err)
	assert.False(t, result.GameOver)

	current, err = store.GameByCode(game.GameCode)
	require.NoError(t, err)
	assert.Equal(t, 3, current.CurrentRound)
	assert.Equal(t, userA, current.CurrentSetterID)
}

// Letters are always a prefix of SKATE, appended one per miss in
// order. B misses every trick A sets; A lands every trick B sets.
func TestLetterProgression(t *testing.T) {
	engine, store := newTestEngine()
	game := newActiveGame(t, engine)

	expected := []string{"S", "SK", "SKA", "SKAT", "SKATE"}
	for i, want := range expected {
		turn, err := engine.SetTrick(game.GameCode, userA, "trick", "")
		require.NoError(t, err)
		result, err := engine.Respond(game.GameCode, userB, turn.ID, false, "")
		require.NoError(t, err)

		p, err := store.Participant(game.ID, userB)
		require.NoError(t, err)
		assert.Equal(t, want, p.Letters, "after miss %d", i+1)

		if want == constants.LetterSequence {
			assert.True(t, p.IsEliminated)
			assert.True(t, result.GameOver)
			assert.Equal(t, userA, result.WinnerID)
			break
		}
		assert.False(t, p.IsEliminated)

		// Intermediate round: B sets, A lands, rotation returns to A.
		turn, err = engine.SetTrick(game.GameCode, userB, "trick", "")
		require.NoError(t, err)
		_, err = engine.Respond(game.GameCode, userA, turn.ID, true, "")
		require.NoError(t, err)
	}
}

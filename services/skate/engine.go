package skate

import (
	"time"

	constants "SkateHubba/constants/skate"
	models "SkateHubba/models/postgres"
)

/*
 * Engine owns the lifecycle of a S.K.A.T.E. match: create -> join ->
 * start -> set trick -> respond, with letter accumulation, elimination
 * and setter rotation. Every operation is one atomic unit against the
 * Store; nothing here keeps state between calls.
 */
type Engine struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// RespondResult carries the recorded response plus the game-over
// outcome when this response closed out the match.
type RespondResult struct {
	Response *models.TurnResponse
	GameOver bool
	WinnerID uint
}

// Create allocates a new waiting game with a fresh code. The creator
// is the host, the first setter and the first participant.
func (e *Engine) Create(userID uint, maxPlayers int, isPublic bool) (*models.SkateGame, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if maxPlayers == 0 {
		maxPlayers = constants.DefaultMaxPlayers
	}
	if maxPlayers < constants.MinPlayers {
		return nil, ErrInvalidArgument
	}

	game := &models.SkateGame{
		Status:          constants.GameStatusWaiting,
		CurrentRound:    1,
		CurrentSetterID: userID,
		MaxPlayers:      maxPlayers,
		IsPublic:        isPublic,
		CreatedByID:     userID,
	}
	err := e.store.InTx(func(tx Store) error {
		if err := tx.CreateGame(game); err != nil {
			return err
		}
		return tx.CreateParticipant(&models.GameParticipant{
			GameID: game.ID,
			UserID: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// Join adds a user to a waiting game.
func (e *Engine) Join(code string, userID uint) (*models.GameParticipant, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	var participant *models.GameParticipant
	err := e.store.InTx(func(tx Store) error {
		game, err := tx.GameByCode(code)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Status != constants.GameStatusWaiting {
			return ErrInvalidState
		}
		existing, err := tx.Participant(game.ID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyJoined
		}
		count, err := tx.ParticipantCount(game.ID)
		if err != nil {
			return err
		}
		if count >= game.MaxPlayers {
			return ErrGameFull
		}
		participant = &models.GameParticipant{GameID: game.ID, UserID: userID}
		return tx.CreateParticipant(participant)
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// Start moves a waiting game to active and opens the first turn. Only
// the host may start, and only with at least two players in.
func (e *Engine) Start(code string, userID uint) (*models.SkateGame, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	var game *models.SkateGame
	err := e.store.InTx(func(tx Store) error {
		var err error
		game, err = tx.GameByCode(code)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.CreatedByID != userID {
			return ErrForbidden
		}
		if game.Status != constants.GameStatusWaiting {
			return ErrInvalidState
		}
		count, err := tx.ParticipantCount(game.ID)
		if err != nil {
			return err
		}
		if count < constants.MinPlayers {
			return ErrInsufficientPlayers
		}

		startedAt := e.now()
		game.Status = constants.GameStatusActive
		game.StartedAt = &startedAt
		game.CurrentRound = 1
		if err := tx.SaveGame(game); err != nil {
			return err
		}
		return tx.CreateTurn(&models.GameTurn{
			GameID:      game.ID,
			RoundNumber: 1,
			SetterID:    game.CurrentSetterID,
			Status:      constants.TurnStatusSetting,
		})
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// SetTrick names the trick for the current round and opens it for
// responses. Only the current setter may call it.
func (e *Engine) SetTrick(code string, userID uint, trickName, videoURL string) (*models.GameTurn, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if trickName == "" {
		return nil, ErrInvalidArgument
	}
	var turn *models.GameTurn
	err := e.store.InTx(func(tx Store) error {
		game, err := tx.GameByCode(code)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Status != constants.GameStatusActive {
			return ErrInvalidState
		}
		if game.CurrentSetterID != userID {
			return ErrForbidden
		}
		turn, err = tx.SettingTurn(game.ID, game.CurrentRound)
		if err != nil {
			return err
		}
		if turn == nil {
			return ErrInvalidState
		}
		turn.TrickName = trickName
		turn.TrickVideoURL = videoURL
		turn.Status = constants.TurnStatusResponding
		return tx.SaveTurn(turn)
	})
	if err != nil {
		return nil, err
	}
	return turn, nil
}

// Respond records one responder's attempt. A miss appends the next
// letter and may eliminate the responder; once every eligible
// responder has answered, the round closes and the game either ends
// with a winner or advances to the next round with a rotated setter.
func (e *Engine) Respond(code string, userID uint, turnID uint, landed bool, videoURL string) (*RespondResult, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	result := &RespondResult{}
	err := e.store.InTx(func(tx Store) error {
		game, err := tx.GameByCode(code)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Status != constants.GameStatusActive {
			return ErrInvalidState
		}
		participant, err := tx.Participant(game.ID, userID)
		if err != nil {
			return err
		}
		if participant == nil || participant.IsEliminated {
			return ErrForbidden
		}
		turn, err := tx.TurnByID(turnID)
		if err != nil {
			return err
		}
		if turn == nil || turn.GameID != game.ID {
			return ErrTurnNotFound
		}
		if turn.SetterID == userID {
			return ErrForbidden
		}
		if turn.Status != constants.TurnStatusResponding {
			return ErrInvalidState
		}

		judgedAt := e.now()
		response := &models.TurnResponse{
			TurnID:   turn.ID,
			UserID:   userID,
			Landed:   landed,
			VideoURL: videoURL,
			JudgedAt: &judgedAt,
		}
		if err := tx.CreateResponse(response); err != nil {
			return err
		}
		result.Response = response

		if !landed {
			if err := e.addLetter(tx, game, participant); err != nil {
				return err
			}
		}

		return e.finishRoundIfComplete(tx, game, turn, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// addLetter appends the next letter of the sequence. The index is the
// responder's letter count before the miss: first miss "S", fifth
// completes "SKATE" and eliminates.
func (e *Engine) addLetter(tx Store, game *models.SkateGame, participant *models.GameParticipant) error {
	participant.Letters += string(constants.LetterSequence[len(participant.Letters)])
	if participant.Letters == constants.LetterSequence {
		participant.IsEliminated = true
		eliminated, err := tx.EliminatedCount(game.ID)
		if err != nil {
			return err
		}
		position := eliminated + 1
		participant.FinalPosition = &position
	}
	return tx.SaveParticipant(participant)
}

// finishRoundIfComplete closes the turn once every non-eliminated
// responder (everyone but the setter) has answered, then either ends
// the game or rotates the setter and opens the next round.
func (e *Engine) finishRoundIfComplete(tx Store, game *models.SkateGame, turn *models.GameTurn, result *RespondResult) error {
	participants, err := tx.Participants(game.ID)
	if err != nil {
		return err
	}
	eligible := 0
	for _, p := range participants {
		if !p.IsEliminated && p.UserID != game.CurrentSetterID {
			eligible++
		}
	}
	responses, err := tx.ResponseCount(turn.ID)
	if err != nil {
		return err
	}
	if responses < eligible {
		return nil
	}

	completed, err := tx.CompleteTurn(turn.ID)
	if err != nil {
		return err
	}
	if !completed {
		// Someone else already closed this round.
		return nil
	}

	var remaining []models.GameParticipant
	for _, p := range participants {
		if !p.IsEliminated {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == 1 {
		return e.completeGame(tx, game, participants, remaining[0].UserID, result)
	}
	return e.advanceRound(tx, game, remaining)
}

func (e *Engine) completeGame(tx Store, game *models.SkateGame, participants []models.GameParticipant, winnerID uint, result *RespondResult) error {
	completedAt := e.now()
	game.Status = constants.GameStatusCompleted
	game.WinnerID = &winnerID
	game.CompletedAt = &completedAt
	if err := tx.SaveGame(game); err != nil {
		return err
	}
	for _, p := range participants {
		if p.UserID == winnerID {
			if err := tx.AddUserStats(p.UserID, 1, 1, constants.WinnerPoints); err != nil {
				return err
			}
		} else if err := tx.AddUserStats(p.UserID, 1, 0, 0); err != nil {
			return err
		}
	}
	result.GameOver = true
	result.WinnerID = winnerID
	return nil
}

// advanceRound rotates the setter to the next remaining participant in
// join order (wrap-around; if the setter is gone the scan lands on the
// first remaining player) and opens the next turn.
func (e *Engine) advanceRound(tx Store, game *models.SkateGame, remaining []models.GameParticipant) error {
	setterIndex := -1
	for i, p := range remaining {
		if p.UserID == game.CurrentSetterID {
			setterIndex = i
			break
		}
	}
	nextSetter := remaining[(setterIndex+1)%len(remaining)]

	game.CurrentRound++
	game.CurrentSetterID = nextSetter.UserID
	if err := tx.SaveGame(game); err != nil {
		return err
	}
	return tx.CreateTurn(&models.GameTurn{
		GameID:      game.ID,
		RoundNumber: game.CurrentRound,
		SetterID:    nextSetter.UserID,
		Status:      constants.TurnStatusSetting,
	})
}

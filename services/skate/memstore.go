package skate

import (
	"sync"

	constants "SkateHubba/constants/skate"
	models "SkateHubba/models/postgres"
)

/*
 * MemStore is an in-memory Store used by the engine tests and by local
 * development without a database. InTx serializes operations behind
 * one mutex, which gives the same one-at-a-time-per-store semantics
 * the GORM store gets from its row lock. There is no rollback: engine
 * operations validate before they mutate.
 */
type MemStore struct {
	mu sync.Mutex

	nextID       uint
	games        map[uint]*models.SkateGame
	participants []*models.GameParticipant
	turns        map[uint]*models.GameTurn
	responses    []*models.TurnResponse
	userStats    map[uint]*models.User
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:    1,
		games:     make(map[uint]*models.SkateGame),
		turns:     make(map[uint]*models.GameTurn),
		userStats: make(map[uint]*models.User),
	}
}

func (s *MemStore) InTx(fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *MemStore) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemStore) GameByCode(code string) (*models.SkateGame, error) {
	for _, g := range s.games {
		if g.GameCode == code {
			copy := *g
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateGame(game *models.SkateGame) error {
	game.ID = s.allocID()
	if game.GameCode == "" {
		// Mirrors the model's BeforeCreate hook.
		game.GameCode = models.GenerateGameCode(constants.GameCodeLength)
	}
	copy := *game
	s.games[game.ID] = &copy
	return nil
}

func (s *MemStore) SaveGame(game *models.SkateGame) error {
	copy := *game
	s.games[game.ID] = &copy
	return nil
}

func (s *MemStore) Participants(gameID uint) ([]models.GameParticipant, error) {
	var out []models.GameParticipant
	for _, p := range s.participants {
		if p.GameID == gameID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *MemStore) Participant(gameID, userID uint) (*models.GameParticipant, error) {
	for _, p := range s.participants {
		if p.GameID == gameID && p.UserID == userID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ParticipantCount(gameID uint) (int, error) {
	count := 0
	for _, p := range s.participants {
		if p.GameID == gameID {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) EliminatedCount(gameID uint) (int, error) {
	count := 0
	for _, p := range s.participants {
		if p.GameID == gameID && p.IsEliminated {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) CreateParticipant(p *models.GameParticipant) error {
	for _, existing := range s.participants {
		if existing.GameID == p.GameID && existing.UserID == p.UserID {
			return ErrAlreadyJoined
		}
	}
	p.ID = s.allocID()
	copy := *p
	s.participants = append(s.participants, &copy)
	return nil
}

func (s *MemStore) SaveParticipant(p *models.GameParticipant) error {
	for i, existing := range s.participants {
		if existing.ID == p.ID {
			copy := *p
			s.participants[i] = &copy
			return nil
		}
	}
	copy := *p
	s.participants = append(s.participants, &copy)
	return nil
}

func (s *MemStore) TurnByID(id uint) (*models.GameTurn, error) {
	t, ok := s.turns[id]
	if !ok {
		return nil, nil
	}
	copy := *t
	return &copy, nil
}

func (s *MemStore) SettingTurn(gameID uint, round int) (*models.GameTurn, error) {
	for _, t := range s.turns {
		if t.GameID == gameID && t.RoundNumber == round && t.Status == constants.TurnStatusSetting {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateTurn(t *models.GameTurn) error {
	t.ID = s.allocID()
	copy := *t
	s.turns[t.ID] = &copy
	return nil
}

func (s *MemStore) SaveTurn(t *models.GameTurn) error {
	copy := *t
	s.turns[t.ID] = &copy
	return nil
}

func (s *MemStore) CompleteTurn(turnID uint) (bool, error) {
	t, ok := s.turns[turnID]
	if !ok || t.Status != constants.TurnStatusResponding {
		return false, nil
	}
	t.Status = constants.TurnStatusCompleted
	return true, nil
}

func (s *MemStore) CreateResponse(r *models.TurnResponse) error {
	for _, existing := range s.responses {
		if existing.TurnID == r.TurnID && existing.UserID == r.UserID {
			return ErrDuplicateResponse
		}
	}
	r.ID = s.allocID()
	copy := *r
	s.responses = append(s.responses, &copy)
	return nil
}

func (s *MemStore) ResponseCount(turnID uint) (int, error) {
	count := 0
	for _, r := range s.responses {
		if r.TurnID == turnID {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) AddUserStats(userID uint, played, won, points int) error {
	u, ok := s.userStats[userID]
	if !ok {
		u = &models.User{ID: userID}
		s.userStats[userID] = u
	}
	u.GamesPlayed += played
	u.GamesWon += won
	u.TotalPoints += points
	return nil
}

// UserStats exposes the accumulated counters for assertions.
func (s *MemStore) UserStats(userID uint) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.userStats[userID]; ok {
		return *u
	}
	return models.User{ID: userID}
}

package memory

import (
	"context"
	"sync"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[model.UserKey]*model.Player
	playerOrder []model.UserKey

	runs       map[model.RunID]*model.GhostRun
	runsByBook map[model.BookID][]model.RunID
	nextRunID  model.RunID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:    make(map[model.UserKey]*model.Player),
		runs:       make(map[model.RunID]*model.GhostRun),
		runsByBook: make(map[model.BookID][]model.RunID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.UserKey]; !ok {
		s.playerOrder = append(s.playerOrder, player.UserKey)
	}
	s.players[player.UserKey] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, key model.UserKey) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[key]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, key model.UserKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[key]; !ok {
		return nil
	}
	delete(s.players, key)
	for i, k := range s.playerOrder {
		if k == key {
			s.playerOrder = append(s.playerOrder[:i], s.playerOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.playerOrder))
	for _, key := range s.playerOrder {
		players = append(players, s.players[key])
	}
	return players, nil
}

// Ghost run operations

func (s *Storage) SaveRun(ctx context.Context, run *model.GhostRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run.ID == 0 {
		s.nextRunID++
		run.ID = s.nextRunID
	}
	s.runs[run.ID] = run
	s.runsByBook[run.Book] = append(s.runsByBook[run.Book], run.ID)
	return nil
}

func (s *Storage) GetRun(ctx context.Context, id model.RunID) (*model.GhostRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, model.ErrRunNotFound
	}
	return run, nil
}

func (s *Storage) ListRunsForBook(ctx context.Context, book model.BookID) ([]*model.GhostRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.runsByBook[book]
	runs := make([]*model.GhostRun, 0, len(ids))
	for _, id := range ids {
		if run, ok := s.runs[id]; ok {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (s *Storage) DeleteGuestRuns(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, run := range s.runs {
		if !run.IsGuest() {
			continue
		}
		delete(s.runs, id)
		deleted++
		ids := s.runsByBook[run.Book]
		for i, rid := range ids {
			if rid == id {
				s.runsByBook[run.Book] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	return deleted, nil
}

package leaderboard

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage"
)

// MaxLimit bounds leaderboard response sizes
const MaxLimit = 100

// DefaultLimit is used when callers do not specify one
const DefaultLimit = 10

// Service produces ranked views over player state without mutating it
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// ClampLimit normalizes a requested limit into [1, MaxLimit]
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// GlobalEntry is one ranked row of the global leaderboard
type GlobalEntry struct {
	Rank   int
	Player *model.Player
}

// Global ranks all players by satoshi balance descending. Ties keep
// first-seen order (the storage listing order), so ranking is stable
// and reproducible.
func (s *Service) Global(ctx context.Context, limit int) ([]GlobalEntry, error) {
	limit = ClampLimit(limit)

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]*model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Satoshis > sorted[j].Satoshis
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]GlobalEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = GlobalEntry{Rank: i + 1, Player: p}
	}
	return entries, nil
}

// ScoreEntry is one ranked row of a per-minigame leaderboard
type ScoreEntry struct {
	Rank    int
	UserKey model.UserKey
	Score   float64
}

// Minigame ranks players holding a recorded score for the given game
// key. Entries whose stored value is not a usable number are skipped.
func (s *Service) Minigame(ctx context.Context, game string, limit int) ([]ScoreEntry, error) {
	limit = ClampLimit(limit)

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, 0, len(players))
	for _, p := range players {
		score, ok := p.Scores[game]
		if !ok || math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		entries = append(entries, ScoreEntry{UserKey: p.UserKey, Score: score})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// BookEntry is one ranked row of an Ash Trail book leaderboard. It
// carries the player's best stored run id so the client can offer a
// ghost replay next to the rank entry.
type BookEntry struct {
	Rank      int
	Name      string
	UserKey   model.UserKey
	Score     float64
	BestRunID model.RunID
}

// Book ranks the best run per player (or guest name) for one book.
// Best run: highest score, ties broken by most recent.
func (s *Service) Book(ctx context.Context, book model.BookID, limit int) ([]BookEntry, error) {
	if !book.Valid() {
		return nil, model.ErrInvalidBook
	}
	limit = ClampLimit(limit)

	runs, err := s.storage.ListRunsForBook(ctx, book)
	if err != nil {
		return nil, err
	}

	best := make(map[string]*model.GhostRun)
	order := make([]string, 0, len(runs))
	for _, run := range runs {
		name := run.DisplayName()
		current, ok := best[name]
		if !ok {
			best[name] = run
			order = append(order, name)
			continue
		}
		if run.Score > current.Score ||
			(run.Score == current.Score && run.CreatedAt.After(current.CreatedAt)) {
			best[name] = run
		}
	}

	entries := make([]BookEntry, 0, len(order))
	for _, name := range order {
		run := best[name]
		entries = append(entries, BookEntry{
			Name:      name,
			UserKey:   run.UserKey,
			Score:     run.Score,
			BestRunID: run.ID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

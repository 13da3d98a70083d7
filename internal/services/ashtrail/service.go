package ashtrail

import (
	"context"
	"log/slog"
	"sort"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/clock"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage"
)

// Service is the append-only archive of Ash Trail ghost runs
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new ghost-run archive service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Submit stores a new immutable run. The score is clamped into [0,100]
// and the trace silently truncated to the storage cap. Either userKey or
// guestName identifies the submitter; guestName is used when the request
// was unauthenticated.
func (s *Service) Submit(ctx context.Context, userKey model.UserKey, guestName string, book model.BookID, score float64, trace []model.Point) (*model.GhostRun, error) {
	if !book.Valid() {
		return nil, model.ErrInvalidBook
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if len(trace) > model.MaxTracePoints {
		trace = trace[:model.MaxTracePoints]
	}
	if trace == nil {
		trace = []model.Point{}
	}

	run := &model.GhostRun{
		UserKey:   userKey,
		GuestName: guestName,
		Book:      book,
		Score:     score,
		Trace:     trace,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveRun(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("ghost run stored",
		slog.Int64("run_id", int64(run.ID)),
		slog.String("book", string(book)),
		slog.Float64("score", score),
		slog.Int("trace_points", len(trace)),
	)
	return run, nil
}

// List returns the top runs for a book ordered by score descending,
// ties broken by most recent. Traces are stored on the returned records;
// the response layer omits them from listings.
func (s *Service) List(ctx context.Context, book model.BookID, limit int) ([]*model.GhostRun, error) {
	if !book.Valid() {
		return nil, model.ErrInvalidBook
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := s.storage.ListRunsForBook(ctx, book)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Score != runs[j].Score {
			return runs[i].Score > runs[j].Score
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Get returns one run including its full trace
func (s *Service) Get(ctx context.Context, id model.RunID) (*model.GhostRun, error) {
	return s.storage.GetRun(ctx, id)
}

// PurgeGuestRuns deletes every guest-submitted run. Maintenance
// capability; player-submitted runs are never deleted by player action.
func (s *Service) PurgeGuestRuns(ctx context.Context) (int, error) {
	deleted, err := s.storage.DeleteGuestRuns(ctx)
	if err != nil {
		return deleted, err
	}
	s.logger.Info("purged guest runs", slog.Int("deleted", deleted))
	return deleted, nil
}

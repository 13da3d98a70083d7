package storage

import (
	"context"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, key model.UserKey) (*model.Player, error)
	DeletePlayer(ctx context.Context, key model.UserKey) error
	// ListPlayers returns every player in first-seen order. Leaderboard
	// tie-breaking depends on this order being stable.
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Ghost run operations. Runs are immutable once saved.
	SaveRun(ctx context.Context, run *model.GhostRun) error
	GetRun(ctx context.Context, id model.RunID) (*model.GhostRun, error)
	ListRunsForBook(ctx context.Context, book model.BookID) ([]*model.GhostRun, error)
	DeleteGuestRuns(ctx context.Context) (int, error)
}

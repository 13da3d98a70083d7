package player

import (
	"context"
	"log/slog"
	"sort"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/clock"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage"
)

// Bulk update actions
const (
	ActionAddCrypto = "add_crypto"
	ActionSetCrypto = "set_crypto"
	ActionResetAll  = "reset_all"
)

// Service owns all persistent player game state
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// GetOrCreate returns the player for a user key, creating it with zero
// defaults on first access
func (s *Service) GetOrCreate(ctx context.Context, key model.UserKey) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, key)
	if err == nil {
		return player, nil
	}
	if err != model.ErrPlayerNotFound {
		return nil, err
	}

	player = model.NewPlayer(key, s.clock.Now())
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	s.logger.Info("created player", slog.String("user_key", string(key)))
	return player, nil
}

// Get returns an existing player or model.ErrPlayerNotFound
func (s *Service) Get(ctx context.Context, key model.UserKey) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, key)
}

// Update applies typed mutations to a player and persists the result.
// Mutations are applied independently (best-effort merge, no rollback);
// CompletedAll is rederived afterwards and UpdatedAt refreshed.
func (s *Service) Update(ctx context.Context, key model.UserKey, mutations []model.Mutation) (*model.Player, error) {
	player, err := s.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}

	model.Apply(player, mutations)
	if err := s.Save(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// UpdateScore records a score for a game, overwriting only if strictly
// greater than the stored best. This is the single place score
// monotonicity is enforced. Returns whether the score was a new high
// score, along with the refreshed score map.
func (s *Service) UpdateScore(ctx context.Context, key model.UserKey, game string, score float64) (bool, map[string]float64, error) {
	player, err := s.GetOrCreate(ctx, key)
	if err != nil {
		return false, nil, err
	}

	current, ok := player.Scores[game]
	if ok && score <= current {
		return false, player.Scores, nil
	}

	player.Scores[game] = score
	if err := s.Save(ctx, player); err != nil {
		return false, nil, err
	}
	return true, player.Scores, nil
}

// AddInventoryItem appends an item to the player's inventory
func (s *Service) AddInventoryItem(ctx context.Context, key model.UserKey, name, foundAt string) ([]model.InventoryItem, error) {
	player, err := s.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = "Unknown Item"
	}
	if foundAt == "" {
		foundAt = "unknown"
	}

	player.Inventory = append(player.Inventory, model.InventoryItem{
		Name:      name,
		FoundAt:   foundAt,
		Timestamp: s.clock.Now(),
	})
	if err := s.Save(ctx, player); err != nil {
		return nil, err
	}
	return player.Inventory, nil
}

// RemoveInventoryItem removes an item by index. An out-of-range index is
// a no-op reported through the boolean, not an error.
func (s *Service) RemoveInventoryItem(ctx context.Context, key model.UserKey, index int) (model.InventoryItem, bool, error) {
	player, err := s.GetOrCreate(ctx, key)
	if err != nil {
		return model.InventoryItem{}, false, err
	}

	if index < 0 || index >= len(player.Inventory) {
		return model.InventoryItem{}, false, nil
	}

	removed := player.Inventory[index]
	player.Inventory = append(player.Inventory[:index], player.Inventory[index+1:]...)
	if err := s.Save(ctx, player); err != nil {
		return model.InventoryItem{}, false, err
	}
	return removed, true, nil
}

// List returns every player in first-seen order
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Reset zeroes a player's state in place. Admin capability: resets are
// allowed to clear completion and ownership flags.
func (s *Service) Reset(ctx context.Context, key model.UserKey) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, key)
	if err != nil {
		return nil, err
	}

	player.Reset()
	if err := s.Save(ctx, player); err != nil {
		return nil, err
	}
	s.logger.Info("reset player", slog.String("user_key", string(key)))
	return player, nil
}

// Delete removes a player row entirely
func (s *Service) Delete(ctx context.Context, key model.UserKey) error {
	return s.storage.DeletePlayer(ctx, key)
}

// BulkUpdate applies an admin action to every player and returns how
// many were affected
func (s *Service) BulkUpdate(ctx context.Context, action string, amount int64) (int, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return 0, err
	}

	affected := 0
	for _, player := range players {
		switch action {
		case ActionAddCrypto:
			player.AddBalance(model.CoinSatoshis, float64(amount))
		case ActionSetCrypto:
			player.SetBalance(model.CoinSatoshis, float64(amount))
		case ActionResetAll:
			player.Reset()
		default:
			return 0, model.ErrUnknownAction
		}
		if err := s.Save(ctx, player); err != nil {
			return affected, err
		}
		affected++
	}

	s.logger.Info("bulk update",
		slog.String("action", action),
		slog.Int("affected", affected),
	)
	return affected, nil
}

// TopPlayer is one entry in the admin stats top list
type TopPlayer struct {
	UserKey  model.UserKey `json:"user_key"`
	Satoshis int64         `json:"satoshis"`
}

// Stats summarizes the whole player base for the admin panel
type Stats struct {
	TotalPlayers        int                      `json:"total_players"`
	TotalSatoshis       int64                    `json:"total_satoshis_in_circulation"`
	AverageSatoshis     float64                  `json:"average_satoshis"`
	MinigameCompletions map[model.MinigameID]int `json:"minigame_completions"`
	TopPlayers          []TopPlayer              `json:"top_players"`
}

// GetStats computes aggregate statistics over all players
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalPlayers:        len(players),
		MinigameCompletions: make(map[model.MinigameID]int, len(model.Minigames)),
	}
	for _, m := range model.Minigames {
		stats.MinigameCompletions[m] = 0
	}

	for _, player := range players {
		stats.TotalSatoshis += player.Satoshis
		for _, m := range model.Minigames {
			if player.Completed[m] {
				stats.MinigameCompletions[m]++
			}
		}
	}
	if len(players) > 0 {
		stats.AverageSatoshis = float64(stats.TotalSatoshis) / float64(len(players))
	}

	sorted := make([]*model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Satoshis > sorted[j].Satoshis
	})
	top := len(sorted)
	if top > 5 {
		top = 5
	}
	for _, player := range sorted[:top] {
		stats.TopPlayers = append(stats.TopPlayers, TopPlayer{
			UserKey:  player.UserKey,
			Satoshis: player.Satoshis,
		})
	}

	return stats, nil
}

// Save persists a player and refreshes its UpdatedAt timestamp.
// Wallet conversion and shop purchases rely on this to land their two
// balance mutations in one write.
func (s *Service) Save(ctx context.Context, player *model.Player) error {
	player.UpdatedAt = s.clock.Now()
	return s.storage.SavePlayer(ctx, player)
}

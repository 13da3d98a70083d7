package response

import (
	"time"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/gamedata"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/leaderboard"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/shop"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/wallet"
)

// Player is the full player snapshot in API responses. Satoshis appear
// both as "crypto" and "satoshis" for compatibility with older clients.
type Player struct {
	UserKey      string                `json:"user_key"`
	Crypto       int64                 `json:"crypto"`
	Satoshis     int64                 `json:"satoshis"`
	Wallet       map[string]float64    `json:"wallet"`
	Inventory    []model.InventoryItem `json:"inventory"`
	Scores       map[string]float64    `json:"scores"`
	Minigames    map[string]bool       `json:"minigames_completed"`
	CompletedAll bool                  `json:"completed_all"`
	ScrapOwned   map[string]bool       `json:"scrap_owned"`
	HasSeenIntro bool                  `json:"has_seen_intro"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	w := make(map[string]float64, len(model.Coins))
	for coin, amount := range p.Wallet() {
		w[string(coin)] = amount
	}

	minigames := make(map[string]bool, len(model.Minigames))
	scraps := make(map[string]bool, len(model.Minigames))
	for _, m := range model.Minigames {
		minigames[string(m)] = p.Completed[m]
		scraps[string(m)] = p.ScrapOwned[m]
	}

	return Player{
		UserKey:      string(p.UserKey),
		Crypto:       p.Satoshis,
		Satoshis:     p.Satoshis,
		Wallet:       w,
		Inventory:    p.Inventory,
		Scores:       p.Scores,
		Minigames:    minigames,
		CompletedAll: p.CompletedAll,
		ScrapOwned:   scraps,
		HasSeenIntro: p.HasSeenIntro,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CryptoResponse carries just the satoshi balance
type CryptoResponse struct {
	Crypto int64 `json:"crypto"`
}

// InventoryResponse carries a player's inventory
type InventoryResponse struct {
	Inventory []model.InventoryItem `json:"inventory"`
}

// ScoresResponse carries the score map and the high-score signal
type ScoresResponse struct {
	IsHighScore bool               `json:"is_high_score"`
	Scores      map[string]float64 `json:"scores"`
}

// MinigamesResponse carries the completion flags
type MinigamesResponse struct {
	Minigames    map[string]bool `json:"minigames_completed"`
	CompletedAll bool            `json:"completed_all"`
}

// MinigamesFromModel builds a MinigamesResponse from a player
func MinigamesFromModel(p *model.Player) MinigamesResponse {
	minigames := make(map[string]bool, len(model.Minigames))
	for _, m := range model.Minigames {
		minigames[string(m)] = p.Completed[m]
	}
	return MinigamesResponse{Minigames: minigames, CompletedAll: p.CompletedAll}
}

// WalletResponse carries every balance with USD valuations
type WalletResponse struct {
	Balances []wallet.Balance `json:"balances"`
}

// BitcoinBoostResponse carries BTC market data for the crypto miner
type BitcoinBoostResponse struct {
	BTCPriceUSD     float64 `json:"btc_price_usd"`
	BTCChange24h    float64 `json:"btc_change_24h"`
	BoostMultiplier float64 `json:"boost_multiplier"`
}

// ShopResponse lists the purchasable catalog
type ShopResponse struct {
	Items []shop.Item `json:"items"`
}

// PurchaseResponse is the result of a successful purchase
type PurchaseResponse struct {
	ItemID     string          `json:"item_id"`
	Coin       string          `json:"coin"`
	NewBalance float64         `json:"new_balance"`
	ScrapOwned map[string]bool `json:"scrap_owned"`
}

// PurchaseFromReceipt converts a shop receipt
func PurchaseFromReceipt(r *shop.Receipt) PurchaseResponse {
	owned := make(map[string]bool, len(r.ScrapOwned))
	for m, v := range r.ScrapOwned {
		owned[string(m)] = v
	}
	return PurchaseResponse{
		ItemID:     r.Item.ID,
		Coin:       string(r.Item.Coin),
		NewBalance: r.NewBalance,
		ScrapOwned: owned,
	}
}

// LeaderboardEntry is one ranked row of the global leaderboard
type LeaderboardEntry struct {
	Rank      int             `json:"rank"`
	UserKey   string          `json:"user_key"`
	Crypto    int64           `json:"crypto"`
	Minigames map[string]bool `json:"minigames_completed"`
}

// LeaderboardResponse wraps a ranked list
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardFromEntries converts global leaderboard entries
func LeaderboardFromEntries(entries []leaderboard.GlobalEntry) LeaderboardResponse {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		minigames := make(map[string]bool, len(model.Minigames))
		for _, m := range model.Minigames {
			minigames[string(m)] = e.Player.Completed[m]
		}
		out[i] = LeaderboardEntry{
			Rank:      e.Rank,
			UserKey:   string(e.Player.UserKey),
			Crypto:    e.Player.Satoshis,
			Minigames: minigames,
		}
	}
	return LeaderboardResponse{Leaderboard: out}
}

// ScoreLeaderboardEntry is one ranked row of a minigame leaderboard
type ScoreLeaderboardEntry struct {
	Rank    int     `json:"rank"`
	UserKey string  `json:"user_key"`
	Score   float64 `json:"score"`
}

// ScoreLeaderboardResponse wraps a per-minigame ranking
type ScoreLeaderboardResponse struct {
	Game        string                  `json:"game"`
	Leaderboard []ScoreLeaderboardEntry `json:"leaderboard"`
}

// ScoreLeaderboardFromEntries converts minigame leaderboard entries
func ScoreLeaderboardFromEntries(game string, entries []leaderboard.ScoreEntry) ScoreLeaderboardResponse {
	out := make([]ScoreLeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = ScoreLeaderboardEntry{
			Rank:    e.Rank,
			UserKey: string(e.UserKey),
			Score:   e.Score,
		}
	}
	return ScoreLeaderboardResponse{Game: game, Leaderboard: out}
}

// BookLeaderboardEntry is one ranked row of an Ash Trail book
// leaderboard, carrying the best run id for ghost replay
type BookLeaderboardEntry struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	BestRunID int64   `json:"best_run_id"`
}

// BookLeaderboardResponse wraps a per-book ranking
type BookLeaderboardResponse struct {
	Book        string                 `json:"book_id"`
	Leaderboard []BookLeaderboardEntry `json:"leaderboard"`
}

// BookLeaderboardFromEntries converts book leaderboard entries
func BookLeaderboardFromEntries(book model.BookID, entries []leaderboard.BookEntry) BookLeaderboardResponse {
	out := make([]BookLeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = BookLeaderboardEntry{
			Rank:      e.Rank,
			Name:      e.Name,
			Score:     e.Score,
			BestRunID: int64(e.BestRunID),
		}
	}
	return BookLeaderboardResponse{Book: string(book), Leaderboard: out}
}

// RunSummary is a stored run without its trace payload
type RunSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Book      string    `json:"book_id"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// RunSummaryFromModel converts a run, dropping the trace
func RunSummaryFromModel(r *model.GhostRun) RunSummary {
	return RunSummary{
		ID:        int64(r.ID),
		Name:      r.DisplayName(),
		Book:      string(r.Book),
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
	}
}

// RunDetail is a stored run including its full trace
type RunDetail struct {
	RunSummary
	Trace []model.Point `json:"trace"`
}

// RunDetailFromModel converts a run with its trace
func RunDetailFromModel(r *model.GhostRun) RunDetail {
	return RunDetail{
		RunSummary: RunSummaryFromModel(r),
		Trace:      r.Trace,
	}
}

// RunListResponse wraps a run listing
type RunListResponse struct {
	Book string       `json:"book_id"`
	Runs []RunSummary `json:"runs"`
}

// ItemsResponse wraps the legacy item store listing
type ItemsResponse struct {
	Items []gamedata.Item `json:"items"`
}

// CountResponse carries the legacy item count
type CountResponse struct {
	Count int `json:"count"`
}

// PasswordsResponse carries the rotating password list
type PasswordsResponse struct {
	Passwords []string `json:"passwords"`
}

// PlayersResponse wraps the admin listing of all players
type PlayersResponse struct {
	Players []Player `json:"players"`
	Total   int      `json:"total"`
}

// StatsResponse wraps admin statistics
type StatsResponse struct {
	Stats *player.Stats `json:"stats"`
}

// BulkResponse reports an admin bulk operation
type BulkResponse struct {
	Action   string `json:"action"`
	Affected int    `json:"affected_players"`
}

// PurgeResponse reports a guest-data purge
type PurgeResponse struct {
	DeletedRuns int `json:"deleted_runs"`
}

// MessageResponse carries a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

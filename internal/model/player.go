package model

import (
	"math"
	"time"
)

// UserKey is the opaque identity supplied by the external auth layer.
// Each user has at most one Player.
type UserKey string

// MinigameID identifies one of the five DBS2 minigames
type MinigameID string

// The five minigames
const (
	MinigameCryptoMiner  MinigameID = "crypto_miner"
	MinigameInfiniteUser MinigameID = "infinite_user"
	MinigameLaundry      MinigameID = "laundry"
	MinigameAshTrail     MinigameID = "ash_trail"
	MinigameWhackarat    MinigameID = "whackarat"
)

// Minigames lists every minigame in canonical order
var Minigames = []MinigameID{
	MinigameCryptoMiner,
	MinigameInfiniteUser,
	MinigameLaundry,
	MinigameAshTrail,
	MinigameWhackarat,
}

// Valid reports whether m is a known minigame
func (m MinigameID) Valid() bool {
	switch m {
	case MinigameCryptoMiner, MinigameInfiniteUser, MinigameLaundry, MinigameAshTrail, MinigameWhackarat:
		return true
	}
	return false
}

// InventoryItem is one entry in a player's ordered inventory
type InventoryItem struct {
	Name      string    `json:"name"`
	FoundAt   string    `json:"found_at"`
	Timestamp time.Time `json:"timestamp"`
}

// Player holds all persistent game state for one user
type Player struct {
	UserKey  UserKey `json:"user_key"`
	Satoshis int64   `json:"satoshis"`

	// Balances holds the floating-point wallet coins (not satoshis)
	Balances map[CoinID]float64 `json:"balances"`

	Inventory []InventoryItem    `json:"inventory"`
	Scores    map[string]float64 `json:"scores"`

	Completed map[MinigameID]bool `json:"completed"`
	// CompletedAll is derived: true iff all five Completed flags are true.
	// Recomputed after every completion change, never set directly.
	CompletedAll bool `json:"completed_all"`

	ScrapOwned map[MinigameID]bool `json:"scrap_owned"`

	HasSeenIntro bool `json:"has_seen_intro"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayer creates a player with zeroed balances and cleared flags
func NewPlayer(key UserKey, now time.Time) *Player {
	p := &Player{
		UserKey:    key,
		Balances:   make(map[CoinID]float64, len(WalletCoins)),
		Inventory:  []InventoryItem{},
		Scores:     make(map[string]float64),
		Completed:  make(map[MinigameID]bool, len(Minigames)),
		ScrapOwned: make(map[MinigameID]bool, len(Minigames)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, c := range WalletCoins {
		p.Balances[c] = 0
	}
	for _, m := range Minigames {
		p.Completed[m] = false
		p.ScrapOwned[m] = false
	}
	return p
}

// Balance returns the balance of any coin, satoshis included
func (p *Player) Balance(coin CoinID) float64 {
	if coin == CoinSatoshis {
		return float64(p.Satoshis)
	}
	return p.Balances[coin]
}

// SetBalance replaces a coin balance, clamping to zero
func (p *Player) SetBalance(coin CoinID, amount float64) {
	if coin == CoinSatoshis {
		p.Satoshis = satoshisFromFloat(amount)
		return
	}
	p.Balances[coin] = math.Max(0, amount)
}

// AddBalance applies a delta to a coin balance, flooring at zero.
// The satoshi balance is integral: the post-delta balance is floored,
// so a fractional debit removes at least the requested amount and can
// never credit more than it takes.
func (p *Player) AddBalance(coin CoinID, delta float64) {
	if coin == CoinSatoshis {
		p.Satoshis = satoshisFromFloat(float64(p.Satoshis) + delta)
		return
	}
	p.Balances[coin] = math.Max(0, p.Balances[coin]+delta)
}

// Wallet returns every balance keyed by coin, satoshis included
func (p *Player) Wallet() map[CoinID]float64 {
	w := make(map[CoinID]float64, len(Coins))
	w[CoinSatoshis] = float64(p.Satoshis)
	for _, c := range WalletCoins {
		w[c] = p.Balances[c]
	}
	return w
}

// RecomputeCompletedAll rederives the CompletedAll flag from the five
// minigame flags. Must be called after any completion change.
func (p *Player) RecomputeCompletedAll() {
	for _, m := range Minigames {
		if !p.Completed[m] {
			p.CompletedAll = false
			return
		}
	}
	p.CompletedAll = true
}

// Reset zeroes balances, inventory, scores and flags in place.
// Admin capability: unlike normal mutation it may clear completion and
// ownership flags.
func (p *Player) Reset() {
	p.Satoshis = 0
	for _, c := range WalletCoins {
		p.Balances[c] = 0
	}
	p.Inventory = []InventoryItem{}
	p.Scores = make(map[string]float64)
	for _, m := range Minigames {
		p.Completed[m] = false
		p.ScrapOwned[m] = false
	}
	p.CompletedAll = false
}

// satoshisFromFloat floors a float satoshi amount into a stored
// balance. NaN and negatives clamp to zero; values past the int64
// range clamp to MaxInt64 so the conversion stays deterministic.
func satoshisFromFloat(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}

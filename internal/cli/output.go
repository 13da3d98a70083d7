package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Wallet:
		o.printWallet(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case BookLeaderboard:
		o.printBookLeaderboard(v)
	case RunList:
		o.printRunList(v)
	case RunDetail:
		o.printRunDetail(v)
	case ItemList:
		o.printItemList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	UserKey      string             `json:"user_key"`
	Satoshis     int64              `json:"satoshis"`
	Wallet       map[string]float64 `json:"wallet"`
	Scores       map[string]float64 `json:"scores"`
	Completed    map[string]bool    `json:"minigames_completed"`
	CompletedAll bool               `json:"completed_all"`
}

// Wallet response type
type Wallet struct {
	Balances []WalletBalance `json:"balances"`
}

// WalletBalance response type
type WalletBalance struct {
	Coin     string  `json:"coin"`
	Amount   float64 `json:"amount"`
	USDValue float64 `json:"usd_value"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserKey string `json:"user_key"`
	Crypto  int64  `json:"crypto"`
}

// BookLeaderboard response type
type BookLeaderboard struct {
	Book    string                  `json:"book_id"`
	Entries []BookLeaderboardEntry `json:"entries"`
}

// BookLeaderboardEntry response type
type BookLeaderboardEntry struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	BestRunID int64   `json:"best_run_id"`
}

// RunList response type
type RunList struct {
	Book string       `json:"book_id"`
	Runs []RunSummary `json:"runs"`
}

// RunSummary response type
type RunSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Book  string  `json:"book_id"`
	Score float64 `json:"score"`
}

// RunDetail response type
type RunDetail struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Book  string      `json:"book_id"`
	Score float64     `json:"score"`
	Trace []TracePair `json:"trace"`
}

// TracePair response type
type TracePair struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ItemList response type
type ItemList struct {
	Items []Item `json:"items"`
}

// Item response type
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Data        []string `json:"data"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.UserKey)
	fmt.Printf("Satoshis: %d\n", p.Satoshis)
	if len(p.Wallet) > 0 {
		fmt.Println("Wallet:")
		for coin, amount := range p.Wallet {
			fmt.Printf("  %s: %g\n", coin, amount)
		}
	}
	if len(p.Scores) > 0 {
		fmt.Println("Scores:")
		for game, score := range p.Scores {
			fmt.Printf("  %s: %g\n", game, score)
		}
	}
	completedStr := "no"
	if p.CompletedAll {
		completedStr = "yes"
	}
	fmt.Printf("All minigames completed: %s\n", completedStr)
}

func (o *Output) printWallet(w Wallet) {
	fmt.Println("Balances:")
	for _, b := range w.Balances {
		fmt.Printf("  %s: %g ($%.2f)\n", b.Coin, b.Amount, b.USDValue)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	for _, e := range l.Entries {
		fmt.Printf("%3d. %s - %d satoshis\n", e.Rank, e.UserKey, e.Crypto)
	}
}

func (o *Output) printBookLeaderboard(l BookLeaderboard) {
	fmt.Printf("Book: %s\n", l.Book)
	for _, e := range l.Entries {
		fmt.Printf("%3d. %s - %.1f (run %d)\n", e.Rank, e.Name, e.Score, e.BestRunID)
	}
}

func (o *Output) printRunList(l RunList) {
	fmt.Printf("Runs for %s (%d):\n", l.Book, len(l.Runs))
	for _, r := range l.Runs {
		fmt.Printf("  #%d %s - %.1f\n", r.ID, r.Name, r.Score)
	}
}

func (o *Output) printRunDetail(r RunDetail) {
	fmt.Printf("Run: #%d\n", r.ID)
	fmt.Printf("Player: %s\n", r.Name)
	fmt.Printf("Book: %s\n", r.Book)
	fmt.Printf("Score: %.1f\n", r.Score)
	fmt.Printf("Trace points: %d\n", len(r.Trace))
}

func (o *Output) printItemList(l ItemList) {
	fmt.Printf("Items (%d):\n", len(l.Items))
	for _, item := range l.Items {
		fmt.Printf("  [%d] %s - %s (%d entries)\n", item.ID, item.Name, item.Description, len(item.Data))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

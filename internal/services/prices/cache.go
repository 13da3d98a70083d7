package prices

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/clock"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// RefreshInterval is the minimum time between price-feed fetches
const RefreshInterval = 2 * time.Minute

// Quote holds the last known market data for one coin
type Quote struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"change_24h"`
}

// Source provides USD spot prices for coins
type Source interface {
	Quotes(ctx context.Context, coins []model.CoinID) (map[model.CoinID]Quote, error)
}

// Cache serves coin prices from a shared TTL cache over a Source.
// Feed failures degrade to stale values; before the first successful
// fetch all prices read as zero, which callers must treat as unknown.
// Concurrent refreshers racing to repopulate are tolerated (last writer
// wins) since staleness, not correctness, is the only risk.
type Cache struct {
	source Source
	clock  clock.Clock
	logger *slog.Logger
	ttl    time.Duration

	mu        sync.RWMutex
	quotes    map[model.CoinID]Quote
	fetchedAt time.Time
}

// NewCache creates a price cache with the default refresh interval
func NewCache(source Source, clk clock.Clock, logger *slog.Logger) *Cache {
	return &Cache{
		source: source,
		clock:  clk,
		logger: logger,
		ttl:    RefreshInterval,
		quotes: make(map[model.CoinID]Quote),
	}
}

// Quote returns the cached quote for a coin, refreshing the cache first
// if it is stale. A zero quote means the price is unknown.
func (c *Cache) Quote(ctx context.Context, coin model.CoinID) Quote {
	c.refreshIfStale(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quotes[coin]
}

// Quotes returns a snapshot of every cached quote
func (c *Cache) Quotes(ctx context.Context) map[model.CoinID]Quote {
	c.refreshIfStale(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[model.CoinID]Quote, len(c.quotes))
	for coin, q := range c.quotes {
		snapshot[coin] = q
	}
	return snapshot
}

func (c *Cache) refreshIfStale(ctx context.Context) {
	c.mu.RLock()
	fresh := !c.fetchedAt.IsZero() && c.clock.Now().Sub(c.fetchedAt) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return
	}

	quotes, err := c.source.Quotes(ctx, model.WalletCoins)
	if err != nil {
		// Serve whatever we had; never surface feed failures
		c.logger.Warn("price feed refresh failed", slog.String("error", err.Error()))
		c.mu.Lock()
		c.fetchedAt = c.clock.Now()
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.quotes = quotes
	c.fetchedAt = c.clock.Now()
	c.mu.Unlock()
}

// BitcoinBoost derives the crypto-miner boost multiplier from the 24h
// Bitcoin price movement, clamped to [0.5, 2.0].
func (c *Cache) BitcoinBoost(ctx context.Context) (price, change, boost float64) {
	q := c.Quote(ctx, model.CoinBitcoin)
	boost = 1.0 + q.Change24h/20
	if boost < 0.5 {
		boost = 0.5
	}
	if boost > 2.0 {
		boost = 2.0
	}
	return q.USD, q.Change24h, boost
}

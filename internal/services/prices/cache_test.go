package prices

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/mocks"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/testutil"
)

// countingSource tracks fetch calls and can be made to fail
type countingSource struct {
	table map[model.CoinID]Quote
	err   error
	calls int
}

func (c *countingSource) Quotes(_ context.Context, coins []model.CoinID) (map[model.CoinID]Quote, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[model.CoinID]Quote, len(coins))
	for _, coin := range coins {
		if q, ok := c.table[coin]; ok {
			out[coin] = q
		}
	}
	return out, nil
}

type CacheSuite struct {
	suite.Suite
	source *countingSource
	clock  *mocks.MockClock
	cache  *Cache
	ctx    context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.source = &countingSource{table: map[model.CoinID]Quote{
		model.CoinBitcoin:  {USD: 100_000, Change24h: 4.0},
		model.CoinEthereum: {USD: 4_000, Change24h: -2.0},
	}}
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.cache = NewCache(s.source, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *CacheSuite) TestQuoteFetchesOnFirstUse() {
	q := s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(100_000.0, q.USD)
	s.Equal(4.0, q.Change24h)
	s.Equal(1, s.source.calls)
}

func (s *CacheSuite) TestQuoteServesCachedValueWithinTTL() {
	s.cache.Quote(s.ctx, model.CoinBitcoin)

	s.source.table[model.CoinBitcoin] = Quote{USD: 200_000}
	s.clock.Advance(time.Minute)

	q := s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(100_000.0, q.USD)
	s.Equal(1, s.source.calls)
}

func (s *CacheSuite) TestQuoteRefreshesAfterTTL() {
	s.cache.Quote(s.ctx, model.CoinBitcoin)

	s.source.table[model.CoinBitcoin] = Quote{USD: 200_000}
	s.clock.Advance(RefreshInterval)

	q := s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(200_000.0, q.USD)
	s.Equal(2, s.source.calls)
}

func (s *CacheSuite) TestQuoteUnknownCoinIsZero() {
	q := s.cache.Quote(s.ctx, model.CoinDogecoin)
	s.Equal(0.0, q.USD)
}

func (s *CacheSuite) TestFailedRefreshServesStaleValues() {
	s.cache.Quote(s.ctx, model.CoinBitcoin)

	s.source.err = errors.New("feed down")
	s.clock.Advance(RefreshInterval)

	q := s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(100_000.0, q.USD)
}

func (s *CacheSuite) TestFailedRefreshDelaysRetry() {
	s.source.err = errors.New("feed down")

	s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(1, s.source.calls)

	s.clock.Advance(RefreshInterval)
	s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(2, s.source.calls)
}

func (s *CacheSuite) TestFailedFirstFetchReadsZero() {
	s.source.err = errors.New("feed down")

	q := s.cache.Quote(s.ctx, model.CoinBitcoin)
	s.Equal(0.0, q.USD)
}

func (s *CacheSuite) TestQuotesReturnsSnapshot() {
	quotes := s.cache.Quotes(s.ctx)
	s.Equal(4_000.0, quotes[model.CoinEthereum].USD)

	// Mutating the snapshot must not touch the cache
	quotes[model.CoinEthereum] = Quote{USD: 1}
	s.Equal(4_000.0, s.cache.Quote(s.ctx, model.CoinEthereum).USD)
}

// BitcoinBoost tests

func (s *CacheSuite) TestBitcoinBoostFromChange() {
	price, change, boost := s.cache.BitcoinBoost(s.ctx)
	s.Equal(100_000.0, price)
	s.Equal(4.0, change)
	s.InDelta(1.2, boost, 1e-9)
}

func (s *CacheSuite) TestBitcoinBoostClampsExtremes() {
	s.source.table[model.CoinBitcoin] = Quote{USD: 100_000, Change24h: -50}
	_, _, boost := s.cache.BitcoinBoost(s.ctx)
	s.Equal(0.5, boost)

	s.clock.Advance(RefreshInterval)
	s.source.table[model.CoinBitcoin] = Quote{USD: 100_000, Change24h: 50}
	_, _, boost = s.cache.BitcoinBoost(s.ctx)
	s.Equal(2.0, boost)
}

func (s *CacheSuite) TestBitcoinBoostWithNoDataIsNeutral() {
	s.source.err = errors.New("feed down")
	_, _, boost := s.cache.BitcoinBoost(s.ctx)
	s.Equal(1.0, boost)
}

// CoinGecko client tests

func (s *CacheSuite) TestCoinGeckoClientParsesResponse() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/simple/price", r.URL.Path)
		s.Equal("usd", r.URL.Query().Get("vs_currencies"))
		s.Equal("true", r.URL.Query().Get("include_24hr_change"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"bitcoin": {"usd": 98765.4, "usd_24h_change": 1.5},
			"dogecoin": {"usd": 0.31, "usd_24h_change": -4.2}
		}`))
	}))
	defer server.Close()

	client := NewCoinGeckoClientWithURL(server.URL)
	quotes, err := client.Quotes(s.ctx, []model.CoinID{model.CoinBitcoin, model.CoinDogecoin})
	s.Require().NoError(err)

	s.Equal(98765.4, quotes[model.CoinBitcoin].USD)
	s.Equal(1.5, quotes[model.CoinBitcoin].Change24h)
	s.Equal(0.31, quotes[model.CoinDogecoin].USD)
}

func (s *CacheSuite) TestCoinGeckoClientErrorStatus() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCoinGeckoClientWithURL(server.URL)
	_, err := client.Quotes(s.ctx, []model.CoinID{model.CoinBitcoin})
	s.Error(err)
}

package factory

import (
	"context"
	"testing"
	"time"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/mocks"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/prices"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage/memory"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/testutil"
)

// StubPriceSource serves a fixed quote table for tests
type StubPriceSource struct {
	Table map[model.CoinID]prices.Quote
	Err   error
}

// DefaultQuoteTable returns stable prices used across tests
func DefaultQuoteTable() map[model.CoinID]prices.Quote {
	return map[model.CoinID]prices.Quote{
		model.CoinBitcoin:  {USD: 100_000, Change24h: 2.0},
		model.CoinEthereum: {USD: 4_000, Change24h: -1.0},
		model.CoinSolana:   {USD: 200, Change24h: 0.5},
		model.CoinCardano:  {USD: 1, Change24h: 0},
		model.CoinDogecoin: {USD: 0.25, Change24h: 3.0},
	}
}

func (s *StubPriceSource) Quotes(_ context.Context, coins []model.CoinID) (map[model.CoinID]prices.Quote, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[model.CoinID]prices.Quote, len(coins))
	for _, coin := range coins {
		if q, ok := s.Table[coin]; ok {
			out[coin] = q
		}
	}
	return out, nil
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	PriceSource *StubPriceSource
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(t *testing.T) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	priceSource := &StubPriceSource{Table: DefaultQuoteTable()}

	app := newWithDependencies(store, mockClock, priceSource, t.TempDir(), testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		PriceSource: priceSource,
	}
}

package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/mocks"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/prices"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage/memory"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/testutil"
)

// fixedPrices serves a static quote table and never fails
type fixedPrices struct {
	table map[model.CoinID]prices.Quote
}

func (f *fixedPrices) Quote(_ context.Context, coin model.CoinID) prices.Quote {
	return f.table[coin]
}

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	players *player.Service
	prices  *fixedPrices
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.players = player.New(s.storage, clk, logger)
	s.prices = &fixedPrices{table: map[model.CoinID]prices.Quote{
		model.CoinBitcoin:  {USD: 100_000},
		model.CoinEthereum: {USD: 4_000},
		model.CoinSolana:   {USD: 200},
		model.CoinCardano:  {USD: 1},
		model.CoinDogecoin: {USD: 0.25},
	}}
	s.service = New(s.players, s.prices, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) fund(key model.UserKey, coin model.CoinID, amount float64) {
	_, err := s.players.Update(s.ctx, key, []model.Mutation{
		model.SetBalance{Coin: coin, Amount: amount},
	})
	s.Require().NoError(err)
}

// Wallet tests

func (s *ServiceSuite) TestWalletValuesEveryCoin() {
	s.fund("user-1", model.CoinSatoshis, 50_000_000)
	s.fund("user-1", model.CoinEthereum, 2)

	balances, err := s.service.Wallet(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(balances, len(model.Coins))

	byCoin := make(map[model.CoinID]Balance, len(balances))
	for _, b := range balances {
		byCoin[b.Coin] = b
	}

	// Half a bitcoin's worth of satoshis
	s.Equal(50_000_000.0, byCoin[model.CoinSatoshis].Amount)
	s.InDelta(50_000.0, byCoin[model.CoinSatoshis].USDValue, 0.01)

	s.Equal(2.0, byCoin[model.CoinEthereum].Amount)
	s.InDelta(8_000.0, byCoin[model.CoinEthereum].USDValue, 0.01)

	s.Equal(0.0, byCoin[model.CoinDogecoin].Amount)
	s.Equal(0.0, byCoin[model.CoinDogecoin].USDValue)
}

func (s *ServiceSuite) TestWalletUnknownPriceValuesAsZero() {
	s.prices.table = map[model.CoinID]prices.Quote{}
	s.fund("user-1", model.CoinEthereum, 2)

	balances, err := s.service.Wallet(s.ctx, "user-1")
	s.Require().NoError(err)

	for _, b := range balances {
		s.Equal(0.0, b.USDValue)
	}
}

// Convert tests

func (s *ServiceSuite) TestConvertBitcoinToSatoshis() {
	s.fund("user-1", model.CoinBitcoin, 1)

	conversion, err := s.service.Convert(s.ctx, "user-1", model.CoinBitcoin, model.CoinSatoshis, 1)
	s.Require().NoError(err)

	// 1e8 satoshis minus the 5% fee
	s.Equal(95_000_000.0, conversion.ToAmount)
	s.Equal(FeePercent, conversion.FeePercent)

	p, err := s.players.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(0.0, p.Balances[model.CoinBitcoin])
	s.Equal(int64(95_000_000), p.Satoshis)
}

func (s *ServiceSuite) TestConvertSatoshisToEthereum() {
	s.fund("user-1", model.CoinSatoshis, 10_000_000)

	conversion, err := s.service.Convert(s.ctx, "user-1", model.CoinSatoshis, model.CoinEthereum, 10_000_000)
	s.Require().NoError(err)

	// ETH is 4_000_000 satoshis; 10M sat * 0.95 / 4M = 2.375 ETH
	s.InDelta(2.375, conversion.ToAmount, 1e-9)

	p, err := s.players.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(int64(0), p.Satoshis)
	s.InDelta(2.375, p.Balances[model.CoinEthereum], 1e-9)
}

func (s *ServiceSuite) TestConvertTruncatesSatoshiResults() {
	s.fund("user-1", model.CoinDogecoin, 3)

	// DOGE is floor(0.25/100000*1e8) = 250 satoshis; 3 * 250 * 0.95 = 712.5
	conversion, err := s.service.Convert(s.ctx, "user-1", model.CoinDogecoin, model.CoinSatoshis, 3)
	s.Require().NoError(err)
	s.Equal(712.0, conversion.ToAmount)
}

func (s *ServiceSuite) TestConvertRoundTripLosesFeeTwice() {
	s.fund("user-1", model.CoinSatoshis, 100_000_000)

	_, err := s.service.Convert(s.ctx, "user-1", model.CoinSatoshis, model.CoinBitcoin, 100_000_000)
	s.Require().NoError(err)

	p, err := s.players.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	btc := p.Balances[model.CoinBitcoin]
	s.InDelta(0.95, btc, 1e-9)

	_, err = s.service.Convert(s.ctx, "user-1", model.CoinBitcoin, model.CoinSatoshis, btc)
	s.Require().NoError(err)

	p, err = s.players.Get(s.ctx, "user-1")
	s.Require().NoError(err)

	// Two 5% legs leave 90.25% of the original value
	s.Equal(int64(90_250_000), p.Satoshis)
}

func (s *ServiceSuite) TestConvertFractionalSatoshiDebitLosesValue() {
	s.fund("user-1", model.CoinSatoshis, 100)

	// DOGE is 250 satoshis; 1.9 sat * 0.95 / 250 = 0.00722 DOGE
	conversion, err := s.service.Convert(s.ctx, "user-1", model.CoinSatoshis, model.CoinDogecoin, 1.9)
	s.Require().NoError(err)
	s.InDelta(0.00722, conversion.ToAmount, 1e-9)

	p, err := s.players.Get(s.ctx, "user-1")
	s.Require().NoError(err)

	// The integral balance floors, so at least the full 1.9 is debited
	s.Equal(int64(98), p.Satoshis)

	// Total portfolio value in satoshi units must strictly decrease
	after := float64(p.Satoshis) + p.Balances[model.CoinDogecoin]*250
	s.Less(after, 100.0)
}

func (s *ServiceSuite) TestConvertInvalidCoinFails() {
	_, err := s.service.Convert(s.ctx, "user-1", "beaniecoin", model.CoinSatoshis, 1)
	s.ErrorIs(err, model.ErrInvalidCoin)
}

func (s *ServiceSuite) TestConvertSameCoinFails() {
	_, err := s.service.Convert(s.ctx, "user-1", model.CoinEthereum, model.CoinEthereum, 1)
	s.ErrorIs(err, model.ErrSameCoin)
}

func (s *ServiceSuite) TestConvertNonPositiveAmountFails() {
	_, err := s.service.Convert(s.ctx, "user-1", model.CoinBitcoin, model.CoinSatoshis, 0)
	s.ErrorIs(err, model.ErrInvalidAmount)

	_, err = s.service.Convert(s.ctx, "user-1", model.CoinBitcoin, model.CoinSatoshis, -1)
	s.ErrorIs(err, model.ErrInvalidAmount)
}

func (s *ServiceSuite) TestConvertInsufficientBalanceFails() {
	s.fund("user-1", model.CoinEthereum, 0.5)

	_, err := s.service.Convert(s.ctx, "user-1", model.CoinEthereum, model.CoinSatoshis, 1)
	s.ErrorIs(err, model.ErrInsufficientBalance)

	// Nothing was debited
	p, getErr := s.players.Get(s.ctx, "user-1")
	s.Require().NoError(getErr)
	s.Equal(0.5, p.Balances[model.CoinEthereum])
}

func (s *ServiceSuite) TestConvertWithoutPricesFails() {
	s.prices.table = map[model.CoinID]prices.Quote{}
	s.fund("user-1", model.CoinEthereum, 1)

	_, err := s.service.Convert(s.ctx, "user-1", model.CoinEthereum, model.CoinSatoshis, 1)
	s.ErrorIs(err, model.ErrRateUnavailable)

	p, getErr := s.players.Get(s.ctx, "user-1")
	s.Require().NoError(getErr)
	s.Equal(1.0, p.Balances[model.CoinEthereum])
}

func (s *ServiceSuite) TestConvertBitcoinLegsNeedNoFeed() {
	// BTC and satoshis have fixed rates, so the direct pair converts
	// even with the feed down
	s.prices.table = map[model.CoinID]prices.Quote{}
	s.fund("user-1", model.CoinSatoshis, 100_000_000)

	conversion, err := s.service.Convert(s.ctx, "user-1", model.CoinSatoshis, model.CoinBitcoin, 100_000_000)
	s.Require().NoError(err)
	s.InDelta(0.95, conversion.ToAmount, 1e-9)
}

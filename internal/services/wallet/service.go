package wallet

import (
	"context"
	"log/slog"
	"math"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/prices"
)

// FeePercent is the fixed conversion fee. It is the economy's sink:
// every conversion leg strictly decreases total value, so there is no
// arbitrage loop between coins.
const FeePercent = 5.0

// PriceSource supplies cached USD quotes for coins
type PriceSource interface {
	Quote(ctx context.Context, coin model.CoinID) prices.Quote
}

// Service exposes wallet valuation and fee-bearing coin conversion
type Service struct {
	players *player.Service
	prices  PriceSource
	logger  *slog.Logger
}

// New creates a new wallet service
func New(players *player.Service, priceSource PriceSource, logger *slog.Logger) *Service {
	return &Service{
		players: players,
		prices:  priceSource,
		logger:  logger,
	}
}

// Balance is one coin balance with its current USD valuation
type Balance struct {
	Coin     model.CoinID `json:"coin"`
	Amount   float64      `json:"amount"`
	USDValue float64      `json:"usd_value"`
}

// Wallet returns every balance for a player with USD valuations.
// A zero valuation means the price is unknown, not that the holding is
// worthless.
func (s *Service) Wallet(ctx context.Context, key model.UserKey) ([]Balance, error) {
	p, err := s.players.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}

	btcUSD := s.prices.Quote(ctx, model.CoinBitcoin).USD

	balances := make([]Balance, 0, len(model.Coins))
	for _, coin := range model.Coins {
		amount := p.Balance(coin)
		var usd float64
		switch coin {
		case model.CoinSatoshis:
			usd = amount / model.SatoshisPerBitcoin * btcUSD
		case model.CoinBitcoin:
			usd = amount * btcUSD
		default:
			usd = amount * s.prices.Quote(ctx, coin).USD
		}
		balances = append(balances, Balance{Coin: coin, Amount: amount, USDValue: usd})
	}
	return balances, nil
}

// Conversion is the result of a completed coin conversion
type Conversion struct {
	FromCoin   model.CoinID             `json:"from_coin"`
	ToCoin     model.CoinID             `json:"to_coin"`
	FromAmount float64                  `json:"from_amount"`
	ToAmount   float64                  `json:"to_amount"`
	FeePercent float64                  `json:"fee_percent"`
	Wallet     map[model.CoinID]float64 `json:"wallet"`
}

// Convert exchanges amount of one coin for another at market rate minus
// the fee. The debit and credit are applied together in a single player
// save, so the pair is atomic.
func (s *Service) Convert(ctx context.Context, key model.UserKey, from, to model.CoinID, amount float64) (*Conversion, error) {
	if !from.Valid() || !to.Valid() {
		return nil, model.ErrInvalidCoin
	}
	if from == to {
		return nil, model.ErrSameCoin
	}
	if amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	p, err := s.players.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	if p.Balance(from) < amount {
		return nil, model.ErrInsufficientBalance
	}

	fromRate := s.satoshiRate(ctx, from)
	toRate := s.satoshiRate(ctx, to)
	if fromRate <= 0 || toRate <= 0 {
		return nil, model.ErrRateUnavailable
	}

	// Value the amount in satoshi-equivalent units, then take the fee
	value := amount * fromRate
	afterFee := value * (1 - FeePercent/100)

	received := afterFee / toRate
	if to == model.CoinSatoshis {
		received = math.Trunc(received)
	} else {
		received = roundTo(received, to.Precision())
	}

	p.AddBalance(from, -amount)
	p.AddBalance(to, received)
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("conversion",
		slog.String("user_key", string(key)),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.Float64("amount", amount),
		slog.Float64("received", received),
	)

	return &Conversion{
		FromCoin:   from,
		ToCoin:     to,
		FromAmount: amount,
		ToAmount:   received,
		FeePercent: FeePercent,
		Wallet:     p.Wallet(),
	}, nil
}

// satoshiRate returns a coin's value in satoshi-equivalent units.
// Bitcoin is fixed at 1e8, satoshis at 1; every other coin is derived
// from its USD price relative to Bitcoin. Zero means no usable price.
func (s *Service) satoshiRate(ctx context.Context, coin model.CoinID) float64 {
	switch coin {
	case model.CoinSatoshis:
		return 1
	case model.CoinBitcoin:
		return model.SatoshisPerBitcoin
	}

	btcUSD := s.prices.Quote(ctx, model.CoinBitcoin).USD
	coinUSD := s.prices.Quote(ctx, coin).USD
	if btcUSD <= 0 || coinUSD <= 0 {
		return 0
	}
	return math.Floor(coinUSD / btcUSD * model.SatoshisPerBitcoin)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

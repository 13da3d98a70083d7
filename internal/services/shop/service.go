package shop

import (
	"context"
	"log/slog"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
)

// Item is one purchasable scrap unlock. Each item has a fixed price in
// one specific coin and maps to exactly one ownership flag.
type Item struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Coin  model.CoinID     `json:"coin"`
	Price float64          `json:"price"`
	Scrap model.MinigameID `json:"scrap"`
}

// catalog holds the five scrap items, one per minigame
var catalog = map[string]Item{
	"scrap_crypto_miner": {
		ID: "scrap_crypto_miner", Name: "Mining Rig Scrap",
		Coin: model.CoinSatoshis, Price: 2500, Scrap: model.MinigameCryptoMiner,
	},
	"scrap_infinite_user": {
		ID: "scrap_infinite_user", Name: "Infinite User Scrap",
		Coin: model.CoinSatoshis, Price: 4000, Scrap: model.MinigameInfiniteUser,
	},
	"scrap_laundry": {
		ID: "scrap_laundry", Name: "Laundry Token Scrap",
		Coin: model.CoinDogecoin, Price: 150, Scrap: model.MinigameLaundry,
	},
	"scrap_ash_trail": {
		ID: "scrap_ash_trail", Name: "Ash Trail Ember Scrap",
		Coin: model.CoinEthereum, Price: 0.05, Scrap: model.MinigameAshTrail,
	},
	"scrap_whackarat": {
		ID: "scrap_whackarat", Name: "Whackarat Mallet Scrap",
		Coin: model.CoinSatoshis, Price: 7500, Scrap: model.MinigameWhackarat,
	},
}

// catalogOrder fixes the listing order
var catalogOrder = []string{
	"scrap_crypto_miner",
	"scrap_infinite_user",
	"scrap_laundry",
	"scrap_ash_trail",
	"scrap_whackarat",
}

// Service gates one-time scrap purchases against wallet balances
type Service struct {
	players *player.Service
	logger  *slog.Logger
}

// New creates a new shop service
func New(players *player.Service, logger *slog.Logger) *Service {
	return &Service{
		players: players,
		logger:  logger,
	}
}

// Catalog returns every purchasable item in fixed order
func (s *Service) Catalog() []Item {
	items := make([]Item, 0, len(catalogOrder))
	for _, id := range catalogOrder {
		items = append(items, catalog[id])
	}
	return items
}

// Receipt is the result of a successful purchase
type Receipt struct {
	Item       Item                     `json:"item"`
	NewBalance float64                  `json:"new_balance"`
	ScrapOwned map[model.MinigameID]bool `json:"scrap_owned"`
}

// Purchase buys a scrap unlock. Purchases are fixed-price sinks, not
// market exchanges: the exact price is debited with no fee, and the
// debit and flag flip land in one player save.
func (s *Service) Purchase(ctx context.Context, key model.UserKey, itemID string) (*Receipt, error) {
	item, ok := catalog[itemID]
	if !ok {
		return nil, model.ErrUnknownShopItem
	}

	p, err := s.players.GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}

	if p.ScrapOwned[item.Scrap] {
		return nil, model.ErrAlreadyOwned
	}
	if p.Balance(item.Coin) < item.Price {
		return nil, model.ErrInsufficientFunds
	}

	p.AddBalance(item.Coin, -item.Price)
	p.ScrapOwned[item.Scrap] = true
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("scrap purchased",
		slog.String("user_key", string(key)),
		slog.String("item", item.ID),
	)

	owned := make(map[model.MinigameID]bool, len(model.Minigames))
	for _, m := range model.Minigames {
		owned[m] = p.ScrapOwned[m]
	}

	return &Receipt{
		Item:       item,
		NewBalance: p.Balance(item.Coin),
		ScrapOwned: owned,
	}, nil
}

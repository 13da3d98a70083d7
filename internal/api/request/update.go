package request

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// UpdatePlayerRequest is the raw field map of a player update. Fields
// are decoded into typed mutations; names outside the recognized set
// are rejected here at the boundary instead of being silently dropped.
type UpdatePlayerRequest map[string]json.RawMessage

// walletFields maps the wire names of absolute coin sets to coins
var walletFields = map[string]model.CoinID{
	"wallet_btc":  model.CoinBitcoin,
	"wallet_eth":  model.CoinEthereum,
	"wallet_sol":  model.CoinSolana,
	"wallet_ada":  model.CoinCardano,
	"wallet_doge": model.CoinDogecoin,
}

// Mutations decodes the field map into mutation variants. Each field is
// independent; one decode error fails the whole request before anything
// is applied.
func (r UpdatePlayerRequest) Mutations() ([]model.Mutation, error) {
	mutations := make([]model.Mutation, 0, len(r))

	for name, raw := range r {
		mutation, err := decodeField(name, raw)
		if err != nil {
			return nil, err
		}
		mutations = append(mutations, mutation)
	}
	return mutations, nil
}

func decodeField(name string, raw json.RawMessage) (model.Mutation, error) {
	switch name {
	case "crypto", "satoshis":
		v, err := decodeNumber(name, raw)
		if err != nil {
			return nil, err
		}
		return model.SetBalance{Coin: model.CoinSatoshis, Amount: v}, nil

	case "add_crypto":
		v, err := decodeNumber(name, raw)
		if err != nil {
			return nil, err
		}
		return model.AddBalance{Coin: model.CoinSatoshis, Delta: v}, nil

	case "inventory":
		// Garbage in, empty out: a malformed container resets the
		// inventory rather than erroring
		var items []model.InventoryItem
		if err := json.Unmarshal(raw, &items); err != nil {
			items = nil
		}
		return model.SetInventory{Items: items}, nil

	case "scores":
		var scores map[string]float64
		if err := json.Unmarshal(raw, &scores); err != nil {
			scores = nil
		}
		return model.SetScores{Scores: scores}, nil

	case "has_seen_intro":
		v, err := decodeBool(name, raw)
		if err != nil {
			return nil, err
		}
		return model.SetSeenIntro{Seen: v}, nil
	}

	if coin, ok := walletFields[name]; ok {
		v, err := decodeNumber(name, raw)
		if err != nil {
			return nil, err
		}
		return model.SetBalance{Coin: coin, Amount: v}, nil
	}

	if game, ok := minigameField(name, "completed_"); ok {
		v, err := decodeBool(name, raw)
		if err != nil {
			return nil, err
		}
		return model.SetCompleted{Game: game, Done: v}, nil
	}

	if game, ok := minigameField(name, "scrap_"); ok {
		v, err := decodeBool(name, raw)
		if err != nil {
			return nil, err
		}
		return model.SetScrapOwned{Game: game, Owned: v}, nil
	}

	return nil, fmt.Errorf("%w: %s", model.ErrUnknownField, name)
}

func minigameField(name, prefix string) (model.MinigameID, bool) {
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return "", false
	}
	game := model.MinigameID(name[len(prefix):])
	if !game.Valid() {
		return "", false
	}
	return game, true
}

// decodeNumber accepts a JSON number or a numeric string
func decodeNumber(name string, raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", model.ErrInvalidNumber, name)
}

// decodeBool accepts a JSON bool or, for compatibility with older
// clients, a number (non-zero is true)
func decodeBool(name string, raw json.RawMessage) (bool, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("%w: %s", model.ErrInvalidNumber, name)
}

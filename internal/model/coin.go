package model

// CoinID identifies a supported currency
type CoinID string

// Supported coins. Satoshis is the primary in-game currency and the only
// coin without an external price feed.
const (
	CoinSatoshis CoinID = "satoshis"
	CoinBitcoin  CoinID = "bitcoin"
	CoinEthereum CoinID = "ethereum"
	CoinSolana   CoinID = "solana"
	CoinCardano  CoinID = "cardano"
	CoinDogecoin CoinID = "dogecoin"
)

// SatoshisPerBitcoin is the fixed relationship between the in-game
// currency and simulated Bitcoin.
const SatoshisPerBitcoin = 100_000_000

// Coins lists every supported coin in canonical order
var Coins = []CoinID{
	CoinSatoshis,
	CoinBitcoin,
	CoinEthereum,
	CoinSolana,
	CoinCardano,
	CoinDogecoin,
}

// WalletCoins lists the coins held as floating-point wallet balances
// (everything except satoshis)
var WalletCoins = []CoinID{
	CoinBitcoin,
	CoinEthereum,
	CoinSolana,
	CoinCardano,
	CoinDogecoin,
}

// Valid reports whether c is a supported coin
func (c CoinID) Valid() bool {
	switch c {
	case CoinSatoshis, CoinBitcoin, CoinEthereum, CoinSolana, CoinCardano, CoinDogecoin:
		return true
	}
	return false
}

// Precision returns the number of decimal places credited amounts are
// rounded to for this coin. Satoshis are whole units.
func (c CoinID) Precision() int {
	if c == CoinSatoshis {
		return 0
	}
	return 8
}

package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPlayer() *Player {
	return NewPlayer("user-1", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
}

func TestAddBalanceFloorsFractionalSatoshiDebit(t *testing.T) {
	p := newTestPlayer()
	p.Satoshis = 100

	p.AddBalance(CoinSatoshis, -1.9)
	assert.Equal(t, int64(98), p.Satoshis)
}

func TestAddBalanceFloorsFractionalSatoshiCredit(t *testing.T) {
	p := newTestPlayer()
	p.Satoshis = 100

	p.AddBalance(CoinSatoshis, 2.9)
	assert.Equal(t, int64(102), p.Satoshis)
}

func TestAddBalanceSatoshisClampsAtZero(t *testing.T) {
	p := newTestPlayer()
	p.Satoshis = 10

	p.AddBalance(CoinSatoshis, -50)
	assert.Equal(t, int64(0), p.Satoshis)
}

func TestSetBalanceSatoshisClampsHugeValues(t *testing.T) {
	p := newTestPlayer()

	p.SetBalance(CoinSatoshis, 1e19)
	assert.Equal(t, int64(math.MaxInt64), p.Satoshis)

	p.SetBalance(CoinSatoshis, -1e19)
	assert.Equal(t, int64(0), p.Satoshis)
}

func TestSetBalanceSatoshisNaNReadsAsZero(t *testing.T) {
	p := newTestPlayer()
	p.Satoshis = 100

	p.SetBalance(CoinSatoshis, math.NaN())
	assert.Equal(t, int64(0), p.Satoshis)
}

func TestAddBalanceWalletCoinFloorsAtZero(t *testing.T) {
	p := newTestPlayer()
	p.SetBalance(CoinEthereum, 1.5)

	p.AddBalance(CoinEthereum, -2)
	assert.Equal(t, 0.0, p.Balances[CoinEthereum])
}

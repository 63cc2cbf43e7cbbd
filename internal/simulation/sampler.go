package simulation

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// ReturnSource supplies annual returns and inflation by historical year
// index. The production source is *history.Series; tests substitute fixed
// streams to make outcomes deterministic.
type ReturnSource interface {
	Len() int
	StockReturn(i int) decimal.Decimal
	BondReturn(i int) decimal.Decimal
	CashReturn(i int) decimal.Decimal
	Inflation(i int) decimal.Decimal
}

// blockSampler draws historical year indexes as consecutive blocks rather
// than independent years, preserving the serial correlation between asset
// classes and multi-year market regimes. Each block starts at a uniformly
// drawn year chosen so the whole block fits in range; the modulo is a guard,
// not the normal path.
type blockSampler struct {
	rng       *rand.Rand
	n         int
	blockSize int
	start     int
	offset    int
}

func newBlockSampler(rng *rand.Rand, n, years int) *blockSampler {
	size := years
	if size > 10 {
		size = 10
	}
	if size > n {
		size = n
	}
	if size < 1 {
		size = 1
	}
	return &blockSampler{rng: rng, n: n, blockSize: size}
}

// next returns the historical index for the next simulated year.
func (b *blockSampler) next() int {
	if b.offset == 0 {
		b.start = b.rng.Intn(b.n - b.blockSize + 1)
	}
	idx := (b.start + b.offset) % b.n
	b.offset++
	if b.offset == b.blockSize {
		b.offset = 0
	}
	return idx
}

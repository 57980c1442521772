package amm

import (
	"math"

	"sandscan/types"
)

// Pool is the state of one constant-product liquidity pool. It is a pure
// value: a swap never mutates a Pool, it yields the next one, so a block's
// trajectory is a fold over its ordered transactions.
type Pool struct {
	ReserveA float64
	ReserveB float64
	TokenA   string
	TokenB   string
}

func NewPool(reserveA, reserveB float64, tokenA, tokenB string) Pool {
	return Pool{
		ReserveA: reserveA,
		ReserveB: reserveB,
		TokenA:   tokenA,
		TokenB:   tokenB,
	}
}

// PriceA is the marginal price of token A denominated in token B.
func (p Pool) PriceA() float64 {
	return p.ReserveB / p.ReserveA
}

// PriceB is the marginal price of token B denominated in token A.
func (p Pool) PriceB() float64 {
	return p.ReserveA / p.ReserveB
}

// SwapResult is the outcome of executing one swap against a pool state.
type SwapResult struct {
	TokensReceived float64
	ExecutionPrice float64 // input amount per output token
	Slippage       float64 // percent deviation from the pre-trade marginal price
	Pool           Pool    // the next pool state
}

// constantProduct returns the output for dx input against reserves (x, y).
// The simplified formula without explicit fee deduction; observed slippage
// absorbs the fee.
func constantProduct(x, y, dx float64) float64 {
	return (y * dx) / (x + dx)
}

func slippage(initialPrice, executionPrice float64) float64 {
	return math.Abs((executionPrice-initialPrice)/initialPrice) * 100
}

// Swap executes one transaction against the pool. The side being bought is
// the one whose token address matches the swap's output token.
func (p Pool) Swap(tx *types.SwapTransaction) SwapResult {
	buyingA := tx.TokenOut == p.TokenA

	var initialPrice, inputReserve, outputReserve float64
	if buyingA {
		initialPrice = p.PriceA()
		inputReserve, outputReserve = p.ReserveB, p.ReserveA
	} else {
		initialPrice = p.PriceB()
		inputReserve, outputReserve = p.ReserveA, p.ReserveB
	}

	received := constantProduct(inputReserve, outputReserve, tx.AmountIn)
	executionPrice := tx.AmountIn / received

	next := p
	if buyingA {
		next.ReserveA -= received
		next.ReserveB += tx.AmountIn
	} else {
		next.ReserveA += tx.AmountIn
		next.ReserveB -= received
	}

	return SwapResult{
		TokensReceived: received,
		ExecutionPrice: executionPrice,
		Slippage:       slippage(initialPrice, executionPrice),
		Pool:           next,
	}
}

// Replay folds a transaction sequence over the pool and returns the final
// state. Transactions must already be in execution order.
func (p Pool) Replay(txs []*types.SwapTransaction) Pool {
	current := p
	for _, tx := range txs {
		current = current.Swap(tx).Pool
	}
	return current
}

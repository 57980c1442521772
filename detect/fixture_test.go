package detect

import (
	"time"

	"sandscan/amm"
	"sandscan/types"
)

// Pools referenced by the sample corpus.
const (
	poolUni   = "0xpool_uni"   // USDC/SHIB
	poolSushi = "0xpool_sushi" // USDC/SHIB, second venue
	poolEth   = "0xpool_eth"   // ETH/NEWTOKEN
)

func samplePools() map[string]amm.Pool {
	return map[string]amm.Pool{
		poolUni:   amm.NewPool(1_000_000, 50_000_000_000, "USDC", "SHIB"),
		poolSushi: amm.NewPool(900_000, 45_000_000_000, "USDC", "SHIB"),
		poolEth:   amm.NewPool(800, 800_000, "ETH", "NEWTOKEN"),
	}
}

type swapSpec struct {
	hash     string
	block    uint64
	pos      int
	from     string
	tokenIn  string
	tokenOut string
	amountIn float64
	gasPrice uint64
	pool     string
	contract bool
	usdIn    float64
	usdOut   float64
	gasUSD   float64
}

func buildTx(s swapSpec) *types.SwapTransaction {
	return &types.SwapTransaction{
		TxHash:           s.hash,
		BlockNumber:      s.block,
		Timestamp:        time.Unix(1_700_000_000+int64(s.block), 0).UTC(),
		Position:         s.pos,
		FromAddress:      s.from,
		TokenIn:          s.tokenIn,
		TokenOut:         s.tokenOut,
		AmountIn:         s.amountIn,
		GasPrice:         s.gasPrice,
		PoolAddress:      s.pool,
		TokenLaunchBlock: 10_000,
		IsContractCaller: s.contract,
		USDValueIn:       s.usdIn,
		USDValueOut:      s.usdOut,
		GasCostUSD:       s.gasUSD,
	}
}

// sampleBatch is the 16-transaction, 7-block corpus used by the
// end-to-end tests. Under the equivalence-aware detector it holds exactly
// 6 sandwich attacks:
//
//	block 12360 (USDC/SHIB, 5 txs): front, two victims (one literal USDC,
//	  one USDT through stablecoin equivalence), and a split exit: one back
//	  on the same pool, one on another venue -> 4 attacks.
//	block 12361 (ETH/NEWTOKEN, 4 txs): front, two victims (one literal
//	  ETH, one WETH), one back -> 2 attacks.
//	block 12362 (3 txs): an unrelated round trip and a trade on a
//	  different pool -> no attacks.
//	blocks 12363-12366 (1 tx each): too small to hold a sandwich.
//
// amount_out of every tx on a known pool is produced by folding the pool
// forward, so replaying the block reproduces recorded reality exactly.
func sampleBatch() []*types.SwapTransaction {
	pools := samplePools()

	// Attacker leg sizes on the pools are fixed up below once the
	// front-run outputs are known.
	specs := []swapSpec{
		// Block 12360: USDC/SHIB sandwich with two victims and a split exit.
		{hash: "0xfront1", block: 12360, pos: 0, from: "0xattacker1", tokenIn: "USDC", tokenOut: "SHIB",
			amountIn: 20_000, gasPrice: 120, pool: poolUni, contract: true, usdIn: 20_000, usdOut: 19_900, gasUSD: 15},
		{hash: "0xtx_victim1", block: 12360, pos: 1, from: "0xvictim1", tokenIn: "USDC", tokenOut: "SHIB",
			amountIn: 10_000, gasPrice: 80, pool: poolUni, usdIn: 10_000, usdOut: 9_550, gasUSD: 4},
		{hash: "0xtx_victim2", block: 12360, pos: 2, from: "0xvictim2", tokenIn: "USDT", tokenOut: "SHIB",
			amountIn: 8_000, gasPrice: 70, pool: poolUni, usdIn: 8_000, usdOut: 7_590, gasUSD: 4},
		{hash: "0xback1", block: 12360, pos: 3, from: "0xattacker1", tokenIn: "SHIB", tokenOut: "USDC",
			gasPrice: 50, pool: poolUni, contract: true, usdIn: 10_050, usdOut: 10_020, gasUSD: 12},
		{hash: "0xback2", block: 12360, pos: 4, from: "0xattacker1", tokenIn: "SHIB", tokenOut: "USDC",
			gasPrice: 50, pool: poolSushi, contract: true, usdIn: 10_050, usdOut: 10_180, gasUSD: 12},

		// Block 12361: ETH/NEWTOKEN sandwich, second victim swaps WETH.
		{hash: "0xfront_eth", block: 12361, pos: 0, from: "0xbot123", tokenIn: "ETH", tokenOut: "NEWTOKEN",
			amountIn: 8, gasPrice: 150, pool: poolEth, contract: true, usdIn: 16_000, usdOut: 15_800, gasUSD: 20},
		{hash: "0xtx_innocent", block: 12361, pos: 1, from: "0xinnocent", tokenIn: "ETH", tokenOut: "NEWTOKEN",
			amountIn: 40, gasPrice: 90, pool: poolEth, usdIn: 80_000, usdOut: 76_000, gasUSD: 6},
		{hash: "0xtx_ethholder", block: 12361, pos: 2, from: "0xeth_holder", tokenIn: "WETH", tokenOut: "NEWTOKEN",
			amountIn: 30, gasPrice: 85, pool: poolEth, usdIn: 60_000, usdOut: 57_200, gasUSD: 6},
		{hash: "0xback_eth", block: 12361, pos: 3, from: "0xbot123", tokenIn: "NEWTOKEN", tokenOut: "ETH",
			gasPrice: 60, pool: poolEth, contract: true, usdIn: 16_200, usdOut: 17_500, gasUSD: 15},

		// Block 12362: unrelated cross-pool traffic, no sandwich. The round
		// trip by 0xsolo_trader never shares a pool with the middle trade.
		{hash: "0xtx_solo1", block: 12362, pos: 0, from: "0xsolo_trader", tokenIn: "USDC", tokenOut: "SHIB",
			amountIn: 5_000, gasPrice: 95, pool: "0xpool_alpha", usdIn: 5_000, usdOut: 4_980, gasUSD: 3},
		{hash: "0xtx_random", block: 12362, pos: 1, from: "0xrandom_guy", tokenIn: "USDC", tokenOut: "SHIB",
			amountIn: 2_500, gasPrice: 88, pool: "0xpool_beta", usdIn: 2_500, usdOut: 2_490, gasUSD: 3},
		{hash: "0xtx_solo2", block: 12362, pos: 2, from: "0xsolo_trader", tokenIn: "SHIB", tokenOut: "USDC",
			amountIn: 240_000_000, gasPrice: 93, pool: "0xpool_alpha", usdIn: 4_980, usdOut: 4_960, gasUSD: 3},

		// Blocks 12363-12366: one transaction each.
		{hash: "0xtx_lone1", block: 12363, pos: 0, from: "0xtrader_a", tokenIn: "DAI", tokenOut: "LINK",
			amountIn: 1_000, gasPrice: 70, pool: "0xpool_link", usdIn: 1_000, usdOut: 995, gasUSD: 2},
		{hash: "0xtx_lone2", block: 12364, pos: 0, from: "0xtrader_b", tokenIn: "WBTC", tokenOut: "USDC",
			amountIn: 0.5, gasPrice: 72, pool: "0xpool_btc", usdIn: 30_000, usdOut: 29_900, gasUSD: 5},
		{hash: "0xtx_lone3", block: 12365, pos: 0, from: "0xtrader_c", tokenIn: "ETH", tokenOut: "USDT",
			amountIn: 2, gasPrice: 65, pool: "0xpool_ethusdt", usdIn: 4_000, usdOut: 3_990, gasUSD: 3},
		{hash: "0xtx_lone4", block: 12366, pos: 0, from: "0xtrader_d", tokenIn: "FRAX", tokenOut: "SHIB",
			amountIn: 750, gasPrice: 60, pool: "0xpool_frax", usdIn: 750, usdOut: 748, gasUSD: 2},
	}

	byHash := make(map[string]*types.SwapTransaction, len(specs))
	txs := make([]*types.SwapTransaction, 0, len(specs))
	for _, s := range specs {
		tx := buildTx(s)
		byHash[tx.TxHash] = tx
		txs = append(txs, tx)
	}

	// The attacker exits with what the front-run bought.
	fillPoolOutputs(pools, txs[:3]) // front1, victim1, victim2 on poolUni
	frontShib := byHash["0xfront1"].AmountOut
	byHash["0xback1"].AmountIn = frontShib / 2
	byHash["0xback2"].AmountIn = frontShib / 2

	fillPoolOutputs(pools, []*types.SwapTransaction{byHash["0xback1"], byHash["0xback2"]})

	ethTxs := []*types.SwapTransaction{byHash["0xfront_eth"], byHash["0xtx_innocent"], byHash["0xtx_ethholder"]}
	fillPoolOutputs(pools, ethTxs)
	byHash["0xback_eth"].AmountIn = byHash["0xfront_eth"].AmountOut
	fillPoolOutputs(pools, []*types.SwapTransaction{byHash["0xback_eth"]})

	return txs
}

// fillPoolOutputs folds each transaction into its pool (when the pool is
// known) and records the simulated output as the transaction's actual
// amount_out.
func fillPoolOutputs(pools map[string]amm.Pool, txs []*types.SwapTransaction) {
	for _, tx := range txs {
		pool, ok := pools[tx.PoolAddress]
		if !ok {
			continue
		}
		res := pool.Swap(tx)
		tx.AmountOut = res.TokensReceived
		pools[tx.PoolAddress] = res.Pool
	}
}

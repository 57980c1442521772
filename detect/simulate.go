package detect

import (
	"math"
	"sync"

	"sandscan/amm"
	"sandscan/config"
	"sandscan/types"
)

// SimResult pairs simulation-confirmed attacks with per-candidate and
// per-block skip reasons.
type SimResult struct {
	Attacks []*types.SandwichAttackBySimulation
	Skips   []Skip
}

// DetectBySimulation cross-checks sandwich candidates by replaying each
// victim's pool transition-by-transition. pools maps a pool address to its
// state at the start of the block range. Candidates whose pool is missing,
// empty, or fails the reality check are skipped, never fatal.
func (d *Detector) DetectBySimulation(pools map[string]amm.Pool, txs []*types.SwapTransaction) *SimResult {
	grouped, skips := GroupByBlock(txs)
	res := &SimResult{Skips: skips}

	blocksQueue := make(chan uint64, len(grouped))
	resultsCh := make(chan simBlockResult)

	go func() {
		for block := range grouped {
			blocksQueue <- block
		}
		close(blocksQueue)
	}()

	var wg sync.WaitGroup
	wg.Add(config.DETECT_PARALLEL_NUM)
	for i := 0; i < config.DETECT_PARALLEL_NUM; i++ {
		go func() {
			defer wg.Done()
			for block := range blocksQueue {
				resultsCh <- d.simulateBlock(pools, block, grouped[block])
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	for br := range resultsCh {
		res.Attacks = append(res.Attacks, br.attacks...)
		res.Skips = append(res.Skips, br.skips...)
	}
	return res
}

type simBlockResult struct {
	attacks []*types.SandwichAttackBySimulation
	skips   []Skip
}

func (d *Detector) simulateBlock(pools map[string]amm.Pool, block uint64, blockTxs types.Transactions) (br simBlockResult) {
	cands, err := d.matchBlock(blockTxs)
	if err != nil {
		br.skips = append(br.skips, Skip{Block: block, Err: err})
		return br
	}

	for _, c := range cands {
		pool, ok := pools[c.victim.PoolAddress]
		if !ok {
			br.skips = append(br.skips, skipFor(block, c, ErrPoolNotFound))
			continue
		}

		lossPct, err := d.victimLoss(pool, c, blockTxs)
		if err != nil {
			br.skips = append(br.skips, skipFor(block, c, err))
			continue
		}
		br.attacks = append(br.attacks, &types.SandwichAttackBySimulation{
			FrontRun:      c.front,
			Victim:        c.victim,
			BackRun:       c.back,
			VictimLossPct: lossPct,
		})
	}
	return br
}

func skipFor(block uint64, c candidate, err error) Skip {
	return Skip{
		Block:      block,
		FrontHash:  c.front.TxHash,
		VictimHash: c.victim.TxHash,
		BackHash:   c.back.TxHash,
		Err:        err,
	}
}

// victimLoss runs the two-stage validation for one candidate: first the
// reality check against the supplied initial reserves, then the
// counterfactual replay without the front-run.
func (d *Detector) victimLoss(initial amm.Pool, c candidate, blockTxs types.Transactions) (float64, error) {
	poolTxs := make(types.Transactions, 0, len(blockTxs))
	for _, tx := range blockTxs {
		if tx.PoolAddress == c.victim.PoolAddress {
			poolTxs = append(poolTxs, tx)
		}
	}
	if len(poolTxs) == 0 {
		return 0, ErrNoPoolTransactions
	}

	// Reality check: replaying everything on this pool before the victim
	// must reproduce the victim's recorded output within tolerance,
	// otherwise the supplied reserves cannot be trusted for this block.
	simulatedOut := replayVictim(initial, poolTxs, c.victim, -1)
	diffPct := math.Abs((c.victim.AmountOut - simulatedOut) / c.victim.AmountOut * 100)
	// Phrased as accept-within-tolerance so a NaN diff (zero recorded
	// output) also rejects.
	if !(diffPct < config.SIM_REALITY_TOLERANCE_PCT) {
		return 0, ErrSimulationMismatch
	}

	// Counterfactual: same replay with the front-run removed, holding all
	// other block activity constant. The difference is the loss
	// attributable to that one leg.
	counterfactualOut := replayVictim(initial, poolTxs, c.victim, c.front.Position)
	return math.Abs((c.victim.AmountOut - counterfactualOut) / c.victim.AmountOut * 100), nil
}

// replayVictim folds every pool transaction strictly before the victim's
// position into the pool, optionally excluding one position, then
// simulates the victim's own trade and returns its output.
func replayVictim(initial amm.Pool, poolTxs types.Transactions, victim *types.SwapTransaction, excludePos int) float64 {
	current := initial
	for _, tx := range poolTxs {
		if tx.Position >= victim.Position {
			continue
		}
		if excludePos >= 0 && tx.Position == excludePos {
			continue
		}
		current = current.Swap(tx).Pool
	}
	return current.Swap(victim).TokensReceived
}

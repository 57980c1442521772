package detect

import (
	"sync"

	"sandscan/config"
	"sandscan/types"
)

// Result pairs the heuristic findings with the structured reasons for
// everything that was skipped. Attack order carries no meaning.
type Result struct {
	Attacks []*types.SandwichAttack
	Skips   []Skip
}

// DetectByHeuristics scans a batch of swap transactions for sandwich
// attacks using the pattern matcher and confidence scorer. Pure function
// of its input: no I/O, no shared state, grouping is rebuilt per call.
func (d *Detector) DetectByHeuristics(txs []*types.SwapTransaction) *Result {
	grouped, skips := GroupByBlock(txs)
	res := &Result{Skips: skips}

	type blockResult struct {
		attacks []*types.SandwichAttack
		skip    *Skip
	}

	blocksQueue := make(chan uint64, len(grouped))
	resultsCh := make(chan blockResult)

	go func() {
		for block := range grouped {
			blocksQueue <- block
		}
		close(blocksQueue)
	}()

	// Blocks are independent of each other; analyze them on a bounded
	// worker pool and concatenate.
	var wg sync.WaitGroup
	wg.Add(config.DETECT_PARALLEL_NUM)
	for i := 0; i < config.DETECT_PARALLEL_NUM; i++ {
		go func() {
			defer wg.Done()
			for block := range blocksQueue {
				blockTxs := grouped[block]
				cands, err := d.matchBlock(blockTxs)
				if err != nil {
					resultsCh <- blockResult{skip: &Skip{Block: block, Err: err}}
					continue
				}

				attacks := make([]*types.SandwichAttack, 0, len(cands))
				for _, c := range cands {
					score, flags := d.confidence(c.front, c.victim, c.back)
					attacks = append(attacks, &types.SandwichAttack{
						FrontRun:   c.front,
						Victim:     c.victim,
						BackRun:    c.back,
						Confidence: score,
						Flags:      flags,
					})
				}
				resultsCh <- blockResult{attacks: attacks}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	for br := range resultsCh {
		if br.skip != nil {
			res.Skips = append(res.Skips, *br.skip)
			continue
		}
		res.Attacks = append(res.Attacks, br.attacks...)
	}
	return res
}

package detect

import "sandscan/types"

// candidate is one (front, victim, back) triple that passed the shape
// checks. Shape says nothing about profitability yet.
type candidate struct {
	front  *types.SwapTransaction
	victim *types.SwapTransaction
	back   *types.SwapTransaction
}

// tokensReversed reports whether b round-trips a's swap: a's outbound
// token equals b's inbound and vice versa, under the policy's token
// comparison. Buying first and selling second.
func (d *Detector) tokensReversed(a, b *types.SwapTransaction) bool {
	return d.equivalent(a.TokenIn, b.TokenOut) && d.equivalent(a.TokenOut, b.TokenIn)
}

// isSandwichPattern checks the directional sandwich shape for an ordered
// (front, victim, back) triple. Returning true signals the swap directions
// are there, not that the attack paid off.
func (d *Detector) isSandwichPattern(front, victim, back *types.SwapTransaction) bool {
	// Same attacker on both legs
	if front.FromAddress != back.FromAddress {
		return false
	}

	// Attacker is not its own victim
	if front.FromAddress == victim.FromAddress {
		return false
	}

	// Front and victim must share a pool; strict mode demands the back leg
	// on the same pool too, otherwise the exit may run on another venue.
	if front.PoolAddress != victim.PoolAddress {
		return false
	}
	if d.policy.StrictPoolMatch && victim.PoolAddress != back.PoolAddress {
		return false
	}

	// Attacker got an equivalent token back
	if !d.tokensReversed(front, back) {
		return false
	}

	// Front and victim trade the same direction (attacker buys ahead)
	if !d.equivalent(front.TokenIn, victim.TokenIn) || !d.equivalent(front.TokenOut, victim.TokenOut) {
		return false
	}

	// Victim and back must not share a direction (attacker sells back)
	if d.equivalent(victim.TokenIn, back.TokenIn) && d.equivalent(victim.TokenOut, back.TokenOut) {
		return false
	}

	return true
}

// matchBlock finds every sandwich-shaped triple with indices i < j < k in
// one block's ordered transactions. The victim and any unrelated traffic
// may sit anywhere between the two attacker legs. O(n³) worst case, fine
// for per-block transaction counts.
func (d *Detector) matchBlock(blockTxs types.Transactions) ([]candidate, error) {
	if len(blockTxs) < 3 {
		return nil, ErrInsufficientTransactions
	}

	var found []candidate
	for i := 0; i < len(blockTxs)-2; i++ {
		front := blockTxs[i]

		for k := i + 2; k < len(blockTxs); k++ {
			back := blockTxs[k]

			if front.FromAddress != back.FromAddress {
				continue
			}
			if !d.tokensReversed(front, back) {
				continue
			}

			for j := i + 1; j < k; j++ {
				victim := blockTxs[j]
				if d.isSandwichPattern(front, victim, back) {
					found = append(found, candidate{front: front, victim: victim, back: back})
				}
			}
		}
	}
	return found, nil
}

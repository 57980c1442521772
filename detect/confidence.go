package detect

import (
	"sandscan/config"
	"sandscan/types"
)

// profitUSD is the attacker's net round-trip result after both gas legs.
func profitUSD(front, back *types.SwapTransaction) float64 {
	return back.USDValueOut - front.USDValueIn - front.GasCostUSD - back.GasCostUSD
}

// confidence scores a matched triple. Purely additive: each signal is
// evaluated on its own, recorded in the flags, and summed onto the policy
// base. The result is clamped to 1.0 from above and never drops below the
// base.
func (d *Detector) confidence(front, victim, back *types.SwapTransaction) (float64, types.SandwichFlags) {
	w := d.policy.Weights
	score := w.Base

	flags := types.SandwichFlags{
		FrontGasHigher: front.GasPrice > victim.GasPrice,
		BackGasLower:   back.GasPrice < victim.GasPrice,
		FrontContract:  front.IsContractCaller,
		BackContract:   back.IsContractCaller,
		ProfitUSD:      profitUSD(front, back),
	}
	flags.Profitable = flags.ProfitUSD > 0
	flags.Proportional = isProportional(front, victim, back)

	if flags.FrontGasHigher {
		score += w.FrontGasHigher
	}
	if flags.BackGasLower {
		score += w.BackGasLower
	}
	if flags.FrontContract {
		score += w.FrontContract
	}
	if flags.BackContract {
		score += w.BackContract
	}
	if flags.Profitable {
		score += w.Profitable
	}
	if flags.Proportional {
		score += w.Proportional
	}

	if w.PriceImpactCap > 0 {
		flags.PriceImpact = d.victimPriceImpact(front, victim)
		if flags.PriceImpact < w.PriceImpactCap {
			score += flags.PriceImpact
		} else {
			score += w.PriceImpactCap
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, flags
}

// isProportional reports whether the attacker sized both legs the way
// professional bots do: the front-run a fraction of the victim's trade and
// the back-run a comparable position.
func isProportional(front, victim, back *types.SwapTransaction) bool {
	if victim.USDValueIn <= 0 {
		return false
	}
	frontRatio := front.USDValueIn / victim.USDValueIn
	backRatio := back.USDValueIn / victim.USDValueIn

	if frontRatio < config.PROPORTIONAL_FRONT_MIN || frontRatio > config.PROPORTIONAL_FRONT_MAX {
		return false
	}
	span := config.PROPORTIONAL_BACK_SPAN
	return backRatio >= frontRatio/span && backRatio <= frontRatio*span
}

// victimPriceImpact measures how much worse the victim executed than the
// front leg, as a fraction of the front's execution rate. Only meaningful
// when both trade the same direction; never negative.
func (d *Detector) victimPriceImpact(front, victim *types.SwapTransaction) float64 {
	if !d.equivalent(front.TokenIn, victim.TokenIn) || !d.equivalent(front.TokenOut, victim.TokenOut) {
		return 0.0
	}

	frontRate := front.ExecutionRate()
	victimRate := victim.ExecutionRate()
	if frontRate <= 0 || victimRate >= frontRate {
		return 0.0
	}
	return (frontRate - victimRate) / frontRate
}

package detect

import (
	"sandscan/config"
	"sandscan/tokens"
)

// Weights is the additive scoring table. A zero PriceImpactCap disables
// the price-impact term.
type Weights struct {
	Base           float64
	FrontGasHigher float64
	BackGasLower   float64
	FrontContract  float64
	BackContract   float64
	Profitable     float64
	Proportional   float64
	PriceImpactCap float64
}

// Policy selects one detection variant. The matcher and scorer are a
// single implementation parameterized by it.
type Policy struct {
	// TokenEquivalence compares tokens by equivalence class instead of
	// literally, catching mixed-equivalent-asset sandwiches.
	TokenEquivalence bool
	// StrictPoolMatch requires all three legs on one pool. When false only
	// front and victim must share a pool, so an attacker optimizing its
	// exit on another venue is still caught.
	StrictPoolMatch bool
	Weights         Weights
}

// DefaultPolicy is the equivalence-aware, cross-venue-capable variant with
// the richer scoring table.
func DefaultPolicy() Policy {
	return Policy{
		TokenEquivalence: true,
		StrictPoolMatch:  false,
		Weights: Weights{
			Base:           config.CONFIDENCE_BASE_RICH,
			FrontGasHigher: config.WEIGHT_FRONT_GAS_HIGHER,
			BackGasLower:   config.WEIGHT_BACK_GAS_LOWER,
			FrontContract:  config.WEIGHT_FRONT_CONTRACT,
			BackContract:   config.WEIGHT_BACK_CONTRACT,
			Profitable:     config.WEIGHT_PROFITABLE,
			Proportional:   config.WEIGHT_PROPORTIONAL,
			PriceImpactCap: config.PRICE_IMPACT_CAP,
		},
	}
}

// StrictPolicy compares tokens literally and demands a single pool for all
// three legs.
func StrictPolicy() Policy {
	return Policy{
		TokenEquivalence: false,
		StrictPoolMatch:  true,
		Weights: Weights{
			Base:           config.CONFIDENCE_BASE_STRICT,
			FrontGasHigher: config.WEIGHT_FRONT_GAS_HIGHER,
			BackGasLower:   config.WEIGHT_BACK_GAS_LOWER,
			FrontContract:  config.WEIGHT_FRONT_CONTRACT,
			BackContract:   config.WEIGHT_BACK_CONTRACT,
			Profitable:     config.WEIGHT_PROFITABLE,
			Proportional:   config.WEIGHT_PROPORTIONAL,
		},
	}
}

// Detector finds sandwich attacks in batches of swap transactions. It is
// read-only after construction and safe for concurrent use.
type Detector struct {
	policy Policy
	tokens *tokens.Resolver
}

func New(policy Policy, resolver *tokens.Resolver) *Detector {
	if resolver == nil {
		resolver = tokens.DefaultResolver()
	}
	return &Detector{policy: policy, tokens: resolver}
}

// equivalent compares two tokens under the active policy.
func (d *Detector) equivalent(a, b string) bool {
	if !d.policy.TokenEquivalence {
		return a == b
	}
	return d.tokens.Equivalent(a, b)
}

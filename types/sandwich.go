package types

// SandwichFlags records every signal that contributed to a confidence
// score, so a finding can be explained without re-running the scorer.
type SandwichFlags struct {
	FrontGasHigher bool `ch:"frontGasHigher" json:"frontGasHigher"` // front paid more gas than the victim
	BackGasLower   bool `ch:"backGasLower" json:"backGasLower"`     // back paid less gas than the victim
	FrontContract  bool `ch:"frontContract" json:"frontContract"`
	BackContract   bool `ch:"backContract" json:"backContract"`
	Profitable     bool `ch:"profitable" json:"profitable"` // net USD profit after both gas legs
	Proportional   bool `ch:"proportional" json:"proportional"`

	ProfitUSD   float64 `ch:"profitUsd" json:"profitUsd"`
	PriceImpact float64 `ch:"priceImpact" json:"priceImpact"` // victim rate degradation vs the front leg
}

// SandwichAttack is a heuristically detected sandwich: the three legs plus
// a bounded confidence score and the signals behind it.
type SandwichAttack struct {
	FrontRun *SwapTransaction `json:"frontRunTx"`
	Victim   *SwapTransaction `json:"victimTx"`
	BackRun  *SwapTransaction `json:"backRunTx"`

	Confidence float64       `ch:"confidence" json:"confidence"`
	Flags      SandwichFlags `json:"flags"`
}

// SandwichAttackBySimulation is a sandwich confirmed by replaying the
// victim's pool, carrying the measured loss attributable to the front-run.
type SandwichAttackBySimulation struct {
	FrontRun *SwapTransaction `json:"frontRunTx"`
	Victim   *SwapTransaction `json:"victimTx"`
	BackRun  *SwapTransaction `json:"backRunTx"`

	VictimLossPct float64 `ch:"victimLossPct" json:"victimLossPct"`
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Path config
const (
	LogPath    = "./logs/"
	ConfigPath = "./"
)

// Network config (ClickHouse)
const (
	DefaultDialTimeout = 5 * time.Second
	DefaultMaxConns    = 10
)

// Detection config
const (
	DETECT_PARALLEL_NUM = 8 // number of blocks analyzed in parallel

	// Confidence weights. The strict variant starts from a coin flip; the
	// equivalence-aware variant starts lower because it adds the
	// proportional-sizing and price-impact terms on top.
	CONFIDENCE_BASE_STRICT = 0.5
	CONFIDENCE_BASE_RICH   = 0.3

	WEIGHT_FRONT_GAS_HIGHER = 0.2
	WEIGHT_BACK_GAS_LOWER   = 0.1
	WEIGHT_FRONT_CONTRACT   = 0.1
	WEIGHT_BACK_CONTRACT    = 0.1
	WEIGHT_PROFITABLE       = 0.25
	WEIGHT_PROPORTIONAL     = 0.15
	PRICE_IMPACT_CAP        = 0.25

	// Proportional sizing: front-run is 5-50% of the victim trade, back-run
	// within 2x of the front-run.
	PROPORTIONAL_FRONT_MIN = 0.05
	PROPORTIONAL_FRONT_MAX = 0.5
	PROPORTIONAL_BACK_SPAN = 2.0
)

// Simulation config
const (
	// Relative difference allowed between the replayed and the recorded
	// victim output. Also absorbs the swap fee the constant-product
	// formula omits.
	SIM_REALITY_TOLERANCE_PCT = 1.0

	// Losses above this are reported but flagged as suspect input data.
	SANITY_MAX_VICTIM_LOSS_PCT = 10.0
)

// EquivalenceGroups returns the token-equivalence table from config.yaml
// (tokens.groups), or nil when unset so callers fall back to the default
// taxonomy. Viper lowercases map keys, so configured class names come back
// lowercased; class ids only need to be distinct, but stored and logged
// names follow the lowercased form, not the YAML spelling.
func EquivalenceGroups() map[string][]string {
	if !viper.IsSet("tokens.groups") {
		return nil
	}
	return viper.GetStringMapStringSlice("tokens.groups")
}

package types

import "time"

// SwapTransaction is one observed DEX swap, as produced by an ingestion
// adapter. Values are immutable once handed to the detector.
type SwapTransaction struct {
	TxHash      string    `ch:"txHash" json:"tx_hash"`
	BlockNumber uint64    `ch:"blockNumber" json:"block_number"`
	Timestamp   time.Time `ch:"timestamp" json:"timestamp"`
	// Position is the intra-block execution index. It is unique within a
	// block and defines the total order used everywhere in detection.
	Position    int    `ch:"position" json:"tx_position_in_block"`
	FromAddress string `ch:"fromAddress" json:"from_address"`

	TokenIn   string  `ch:"tokenIn" json:"token_in"`
	TokenOut  string  `ch:"tokenOut" json:"token_out"`
	AmountIn  float64 `ch:"amountIn" json:"amount_in"`   // native units of TokenIn
	AmountOut float64 `ch:"amountOut" json:"amount_out"` // native units of TokenOut

	GasPrice         uint64 `ch:"gasPrice" json:"gas_price"`
	PoolAddress      string `ch:"poolAddress" json:"pool_address"`
	TokenLaunchBlock uint64 `ch:"tokenLaunchBlock" json:"token_launch_block"`
	IsContractCaller bool   `ch:"isContractCaller" json:"is_contract_caller"`

	USDValueIn  float64 `ch:"usdValueIn" json:"usd_value_in"`
	USDValueOut float64 `ch:"usdValueOut" json:"usd_value_out"`
	GasCostUSD  float64 `ch:"gasCostUsd" json:"gas_cost_usd"`
}

type Transactions []*SwapTransaction

// ExecutionRate is the USD-denominated output per unit of USD input.
// Returns 0 when the input side carries no USD value.
func (tx *SwapTransaction) ExecutionRate() float64 {
	if tx.USDValueIn <= 0 {
		return 0
	}
	return tx.USDValueOut / tx.USDValueIn
}

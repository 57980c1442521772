// Package ingest adapts external record sources into the in-memory values
// the detector consumes. The core never parses text; everything numeric is
// validated here, before detection starts.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"sandscan/amm"
	"sandscan/types"
)

var swapColumns = []string{
	"tx_hash", "block_number", "timestamp", "tx_position_in_block",
	"from_address", "token_in", "token_out", "amount_in", "amount_out",
	"gas_price", "pool_address", "token_launch_block", "is_contract_caller",
	"usd_value_in", "usd_value_out", "gas_cost_usd",
}

var poolColumns = []string{
	"pool_address", "token_a", "token_b", "reserve_a", "reserve_b",
}

// row wraps one CSV record with header-based field access and strict
// numeric parsing. The first parse failure sticks.
type row struct {
	index  map[string]int
	fields []string
	line   int
	err    error
}

func (r *row) field(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		r.fail(fmt.Errorf("line %d: missing column %q", r.line, name))
		return ""
	}
	return r.fields[i]
}

func (r *row) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *row) float(name string) float64 {
	v, err := strconv.ParseFloat(r.field(name), 64)
	if err != nil {
		r.fail(fmt.Errorf("line %d: column %q: %w", r.line, name, err))
	}
	return v
}

func (r *row) uint(name string) uint64 {
	v, err := strconv.ParseUint(r.field(name), 10, 64)
	if err != nil {
		r.fail(fmt.Errorf("line %d: column %q: %w", r.line, name, err))
	}
	return v
}

func (r *row) boolean(name string) bool {
	v, err := strconv.ParseBool(r.field(name))
	if err != nil {
		r.fail(fmt.Errorf("line %d: column %q: %w", r.line, name, err))
	}
	return v
}

func readAll(path string, required []string) ([]*row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q in header", path, name)
		}
	}

	rows := make([]*row, 0, len(records)-1)
	for i, fields := range records[1:] {
		rows = append(rows, &row{index: index, fields: fields, line: i + 2})
	}
	return rows, nil
}

// LoadSwaps reads swap records from a CSV file. Rows with non-numeric
// amounts, prices, or positions are rejected with their line number.
func LoadSwaps(path string) ([]*types.SwapTransaction, error) {
	rows, err := readAll(path, swapColumns)
	if err != nil {
		return nil, err
	}

	txs := make([]*types.SwapTransaction, 0, len(rows))
	for _, r := range rows {
		tx := &types.SwapTransaction{
			TxHash:           r.field("tx_hash"),
			BlockNumber:      r.uint("block_number"),
			Timestamp:        time.Unix(int64(r.uint("timestamp")), 0).UTC(),
			Position:         int(r.uint("tx_position_in_block")),
			FromAddress:      r.field("from_address"),
			TokenIn:          r.field("token_in"),
			TokenOut:         r.field("token_out"),
			AmountIn:         r.float("amount_in"),
			AmountOut:        r.float("amount_out"),
			GasPrice:         r.uint("gas_price"),
			PoolAddress:      r.field("pool_address"),
			TokenLaunchBlock: r.uint("token_launch_block"),
			IsContractCaller: r.boolean("is_contract_caller"),
			USDValueIn:       r.float("usd_value_in"),
			USDValueOut:      r.float("usd_value_out"),
			GasCostUSD:       r.float("gas_cost_usd"),
		}
		if r.err != nil {
			return nil, r.err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// LoadPools reads initial pool reserves for the simulation path, keyed by
// pool address.
func LoadPools(path string) (map[string]amm.Pool, error) {
	rows, err := readAll(path, poolColumns)
	if err != nil {
		return nil, err
	}

	pools := make(map[string]amm.Pool, len(rows))
	for _, r := range rows {
		addr := r.field("pool_address")
		pool := amm.NewPool(
			r.float("reserve_a"),
			r.float("reserve_b"),
			r.field("token_a"),
			r.field("token_b"),
		)
		if r.err != nil {
			return nil, r.err
		}
		if _, ok := pools[addr]; ok {
			return nil, fmt.Errorf("line %d: duplicate pool address %q", r.line, addr)
		}
		pools[addr] = pool
	}
	return pools, nil
}

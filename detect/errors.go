package detect

import "errors"

// Failure kinds. All are local to one block or one candidate: a failure
// never aborts the rest of the batch.
var (
	// ErrInsufficientTransactions marks a block with fewer than 3
	// transactions, which cannot contain a sandwich.
	ErrInsufficientTransactions = errors.New("not enough transactions to have a sandwich")

	// ErrDuplicatePosition marks a block where two transactions share an
	// intra-block position. Order is then ambiguous and the block is
	// rejected rather than silently reordered.
	ErrDuplicatePosition = errors.New("duplicate transaction position in block")

	// ErrPoolNotFound marks a candidate whose victim pool has no supplied
	// initial state.
	ErrPoolNotFound = errors.New("no pool state supplied for address")

	// ErrNoPoolTransactions marks a candidate whose block holds no
	// transactions routed through the victim's pool.
	ErrNoPoolTransactions = errors.New("no transactions found in the victim pool")

	// ErrSimulationMismatch marks a candidate whose replayed reality
	// diverges from the recorded victim output beyond tolerance. The
	// supplied reserves are untrustworthy for that block.
	ErrSimulationMismatch = errors.New("simulation does not match recorded reality")
)

// Skip explains why a block or candidate produced no finding.
type Skip struct {
	Block      uint64
	FrontHash  string // empty for block-level skips
	VictimHash string
	BackHash   string
	Err        error
}

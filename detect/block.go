package detect

import (
	"sort"

	"sandscan/types"
)

// GroupByBlock partitions transactions into per-block sequences sorted
// ascending by intra-block position. Blocks with duplicate positions are
// ambiguous and come back as skips instead of entries in the map.
func GroupByBlock(txs []*types.SwapTransaction) (map[uint64]types.Transactions, []Skip) {
	grouped := make(map[uint64]types.Transactions)
	for _, tx := range txs {
		grouped[tx.BlockNumber] = append(grouped[tx.BlockNumber], tx)
	}

	var skips []Skip
	for block, blockTxs := range grouped {
		sort.Slice(blockTxs, func(i, j int) bool {
			return blockTxs[i].Position < blockTxs[j].Position
		})

		dup := false
		for i := 1; i < len(blockTxs); i++ {
			if blockTxs[i].Position == blockTxs[i-1].Position {
				dup = true
				break
			}
		}
		if dup {
			delete(grouped, block)
			skips = append(skips, Skip{Block: block, Err: ErrDuplicatePosition})
		}
	}
	return grouped, skips
}

package extractor

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
)

// PrevTxResolver caches previous transactions while one block is processed, so inputs spending
// the same parent cost one node call.
type PrevTxResolver struct {
	source TransactionSource
	local  map[string]*btcjson.TxRawResult
}

// NewPrevTxResolver constructs an empty resolver over source.
func NewPrevTxResolver(source TransactionSource) *PrevTxResolver {
	return &PrevTxResolver{
		source: source,
		local:  make(map[string]*btcjson.TxRawResult),
	}
}

// Seed registers a transaction already at hand, such as one from the block being processed.
func (r *PrevTxResolver) Seed(tx *btcjson.TxRawResult) {
	r.local[tx.Txid] = tx
}

// Transaction returns txid from the cache or the source.
func (r *PrevTxResolver) Transaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	if tx, ok := r.local[txid]; ok {
		return tx, nil
	}
	tx, err := r.source.Transaction(ctx, txid)
	if err != nil {
		return nil, fmt.Errorf("resolve previous tx %s: %w", txid, err)
	}
	r.local[txid] = tx
	return tx, nil
}

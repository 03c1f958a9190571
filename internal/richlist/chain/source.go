// Package chain defines structs and errors shared between the chain source and the pipeline.
package chain

import (
	"errors"

	"github.com/btcsuite/btcd/btcjson"
)

// ErrHeightOutOfRange is returned when the requested height is above the chain tip.
var ErrHeightOutOfRange = errors.New("block height out of range")

// Block is a block fetched with full transaction detail.
type Block struct {
	Height       uint64
	Hash         string
	PreviousHash string
	Txs          []btcjson.TxRawResult
}

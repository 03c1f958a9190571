// Package extractor finds the addresses touched by a block.
package extractor

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ScriptDecoder interface {
		DecodeVout(vout btcjson.Vout) ([]string, error)
		DecodeScript(script []byte) ([]string, error)
	}
	TransactionSource interface {
		Transaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error)
	}
	Metrics interface {
		ObserveUnhandledDfTx(txType string)
	}
)

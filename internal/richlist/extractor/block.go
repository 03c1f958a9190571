package extractor

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/chain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/dftx"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"go.uber.org/zap"
)

// BlockExtractor collects every address active in a block: spent and paid outputs plus the
// accounts referenced by custom transactions.
type BlockExtractor struct {
	utxo     *UTXOExtractor
	decoder  ScriptDecoder
	txs      TransactionSource
	handlers map[dftx.Type]ScriptsFunc
	metrics  Metrics
	logger   *zap.Logger
}

// NewBlockExtractor constructs a BlockExtractor with the default dispatch table.
func NewBlockExtractor(decoder ScriptDecoder, txs TransactionSource, metrics Metrics, logger *zap.Logger) *BlockExtractor {
	return &BlockExtractor{
		utxo:     NewUTXOExtractor(decoder),
		decoder:  decoder,
		txs:      txs,
		handlers: DefaultHandlers(),
		metrics:  metrics,
		logger:   logger.Named("extractor"),
	}
}

// ExtractBlock returns the addresses of every transaction in block. Duplicates are kept.
func (e *BlockExtractor) ExtractBlock(ctx context.Context, block *chain.Block) ([]model.ActiveAddress, error) {
	resolver := NewPrevTxResolver(e.txs)
	for i := range block.Txs {
		resolver.Seed(&block.Txs[i])
	}

	var out []model.ActiveAddress
	for i := range block.Txs {
		addrs, err := e.ExtractTransaction(ctx, block.Txs[i], resolver)
		if err != nil {
			return nil, fmt.Errorf("block %d tx %s: %w", block.Height, block.Txs[i].Txid, err)
		}
		out = append(out, addrs...)
	}
	return out, nil
}

// ExtractTransaction returns input addresses followed by output addresses of tx.
func (e *BlockExtractor) ExtractTransaction(ctx context.Context, tx btcjson.TxRawResult, txs TransactionSource) ([]model.ActiveAddress, error) {
	var out []model.ActiveAddress
	for _, vin := range tx.Vin {
		addrs, err := e.utxo.ExtractFromVin(ctx, vin, txs)
		if err != nil {
			return nil, err
		}
		out = append(out, addrs...)
	}

	for _, vout := range tx.Vout {
		addrs, err := e.extractFromVout(tx.Txid, vout)
		if err != nil {
			return nil, err
		}
		out = append(out, addrs...)
	}
	return out, nil
}

func (e *BlockExtractor) extractFromVout(txid string, vout btcjson.Vout) ([]model.ActiveAddress, error) {
	if !dftx.HasMarker(vout.ScriptPubKey.Asm) {
		return e.utxo.ExtractFromVout(vout)
	}

	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil, fmt.Errorf("decode dftx script of vout %d: %w", vout.N, err)
	}
	payload, err := dftx.ParseScript(script)
	if errors.Is(err, dftx.ErrNotDfTx) {
		return e.utxo.ExtractFromVout(vout)
	}
	if err != nil {
		return nil, fmt.Errorf("vout %d: %w", vout.N, err)
	}

	handler, ok := e.handlers[payload.TxType()]
	if !ok {
		e.logger.Warn("unhandled custom transaction",
			zap.String("txid", txid),
			zap.Uint32("vout", vout.N),
			zap.Stringer("type", payload.TxType()),
		)
		e.metrics.ObserveUnhandledDfTx(payload.TxType().String())
		return nil, nil
	}

	var out []model.ActiveAddress
	for _, accountScript := range handler(payload) {
		addrs, err := e.decoder.DecodeScript(accountScript)
		if err != nil {
			return nil, fmt.Errorf("decode %s account script %s: %w", payload.TxType(), accountScript, err)
		}
		for _, addr := range addrs {
			out = append(out, model.ActiveAddress{TokenID: int64(model.NativeTokenID), Address: addr})
		}
	}
	return out, nil
}

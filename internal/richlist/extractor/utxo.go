package extractor

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
)

// UTXOExtractor maps plain inputs and outputs to active addresses.
type UTXOExtractor struct {
	decoder ScriptDecoder
}

func NewUTXOExtractor(decoder ScriptDecoder) *UTXOExtractor {
	return &UTXOExtractor{decoder: decoder}
}

// ExtractFromVout returns the addresses paid by vout. Unaddressable scripts yield nothing.
func (e *UTXOExtractor) ExtractFromVout(vout btcjson.Vout) ([]model.ActiveAddress, error) {
	addrs, err := e.decoder.DecodeVout(vout)
	if err != nil {
		return nil, fmt.Errorf("decode vout %d: %w", vout.N, err)
	}
	return utxoAddresses(addrs), nil
}

// ExtractFromVin returns the addresses of the output spent by vin. Coinbase inputs yield nothing.
func (e *UTXOExtractor) ExtractFromVin(ctx context.Context, vin btcjson.Vin, txs TransactionSource) ([]model.ActiveAddress, error) {
	if vin.IsCoinBase() || vin.Txid == "" {
		return nil, nil
	}
	prev, err := txs.Transaction(ctx, vin.Txid)
	if err != nil {
		return nil, err
	}
	if int(vin.Vout) >= len(prev.Vout) {
		return nil, fmt.Errorf("input spends %s:%d but tx has %d outputs", vin.Txid, vin.Vout, len(prev.Vout))
	}
	return e.ExtractFromVout(prev.Vout[vin.Vout])
}

func utxoAddresses(addrs []string) []model.ActiveAddress {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]model.ActiveAddress, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, model.ActiveAddress{TokenID: model.UTXOTokenID, Address: addr})
	}
	return out
}

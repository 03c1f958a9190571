package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store"
	"github.com/shopspring/decimal"
)

// RichListIndex stores address balances partitioned by token and sorted by amount.
type RichListIndex struct {
	index store.SingleIndex
}

// NewRichListIndex creates a RichListIndex over index.
func NewRichListIndex(index store.SingleIndex) *RichListIndex {
	return &RichListIndex{index: index}
}

// Put writes one balance per token of address, replacing previous ones.
func (r *RichListIndex) Put(ctx context.Context, address string, balances map[uint32]decimal.Decimal) error {
	records := make([]store.Record, 0, len(balances))
	for token, amount := range balances {
		entry := model.AddressBalance{Address: address, Amount: amount}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode balance of %s: %w", address, err)
		}
		records = append(records, store.Record{
			ID:        fmt.Sprintf("%s-%d", address, token),
			Partition: model.TokenPartition(token),
			Sort:      entry.SortKey(),
			Data:      string(data),
		})
	}
	if err := r.index.Put(ctx, records...); err != nil {
		return fmt.Errorf("put balances of %s: %w", address, err)
	}
	return nil
}

// Top returns up to limit positive balances of token, largest first.
func (r *RichListIndex) Top(ctx context.Context, token uint32, limit int) ([]model.AddressBalance, error) {
	records, err := r.index.List(ctx, store.ListQuery{
		Partition: model.TokenPartition(token),
		Limit:     limit,
		Order:     store.Descending,
		GT:        store.Int64(0),
	})
	if err != nil {
		return nil, fmt.Errorf("list rich list of token %d: %w", token, err)
	}
	out := make([]model.AddressBalance, 0, len(records))
	for _, rec := range records {
		var entry model.AddressBalance
		if err := json.Unmarshal([]byte(rec.Data), &entry); err != nil {
			return nil, fmt.Errorf("decode balance %s: %w", rec.ID, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

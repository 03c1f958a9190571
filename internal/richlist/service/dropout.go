package service

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store"
	"github.com/goodnatureofminers/richlist7000-backend/pkg/safe"
)

// DropoutLedger remembers at which height an address balance was last computed, per token, so
// the address can be queued again when that height is invalidated.
type DropoutLedger struct {
	index store.SingleIndex
}

// NewDropoutLedger creates a DropoutLedger over index.
func NewDropoutLedger(index store.SingleIndex) *DropoutLedger {
	return &DropoutLedger{index: index}
}

// Record stores address under every token at height.
func (l *DropoutLedger) Record(ctx context.Context, height uint64, address string, tokens ...uint32) error {
	sort, err := safe.Int64(height)
	if err != nil {
		return fmt.Errorf("dropout height: %w", err)
	}
	records := make([]store.Record, 0, len(tokens))
	for _, token := range tokens {
		records = append(records, store.Record{
			ID:        dropoutID(token, height, address),
			Partition: model.TokenPartition(token),
			Sort:      sort,
			Data:      address,
		})
	}
	return l.index.Put(ctx, records...)
}

// At returns the entries of token recorded at exactly height.
func (l *DropoutLedger) At(ctx context.Context, token uint32, height uint64) ([]model.DroppedEntry, error) {
	sort, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("dropout height: %w", err)
	}
	return l.list(ctx, store.ListQuery{
		Partition: model.TokenPartition(token),
		GT:        store.Int64(sort - 1),
		LT:        store.Int64(sort + 1),
	})
}

// Delete removes the entries of token recorded at height.
func (l *DropoutLedger) Delete(ctx context.Context, token uint32, height uint64) error {
	entries, err := l.At(ctx, token, height)
	if err != nil {
		return err
	}
	return l.delete(ctx, entries)
}

// Prune removes the entries of token recorded below height.
func (l *DropoutLedger) Prune(ctx context.Context, token uint32, below uint64) error {
	sort, err := safe.Int64(below)
	if err != nil {
		return fmt.Errorf("dropout height: %w", err)
	}
	entries, err := l.list(ctx, store.ListQuery{
		Partition: model.TokenPartition(token),
		LT:        store.Int64(sort),
	})
	if err != nil {
		return err
	}
	return l.delete(ctx, entries)
}

func (l *DropoutLedger) list(ctx context.Context, q store.ListQuery) ([]model.DroppedEntry, error) {
	records, err := l.index.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list dropouts of token %s: %w", q.Partition, err)
	}
	entries := make([]model.DroppedEntry, 0, len(records))
	for _, r := range records {
		height, err := safe.Uint64(r.Sort)
		if err != nil {
			return nil, fmt.Errorf("dropout %s: %w", r.ID, err)
		}
		entries = append(entries, model.DroppedEntry{
			ID:         r.ID,
			Partition:  r.Partition,
			SortHeight: height,
			Data:       r.Data,
		})
	}
	return entries, nil
}

func (l *DropoutLedger) delete(ctx context.Context, entries []model.DroppedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return l.index.Delete(ctx, ids...)
}

func dropoutID(token uint32, height uint64, address string) string {
	return fmt.Sprintf("%d-%d-%s", token, height, address)
}

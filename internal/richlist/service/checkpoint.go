package service

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store"
	"github.com/goodnatureofminers/richlist7000-backend/pkg/safe"
)

// Checkpoints keeps one record per crawled height. The highest one is the crawl tip.
type Checkpoints struct {
	index store.SingleIndex
}

// NewCheckpoints creates Checkpoints over index.
func NewCheckpoints(index store.SingleIndex) *Checkpoints {
	return &Checkpoints{index: index}
}

// Tip returns the highest crawled block or nil when nothing was crawled yet.
func (c *Checkpoints) Tip(ctx context.Context) (*model.CrawledBlock, error) {
	records, err := c.index.List(ctx, store.ListQuery{
		Partition: checkpointPartition,
		Limit:     1,
		Order:     store.Descending,
	})
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	height, err := safe.Uint64(records[0].Sort)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", records[0].ID, err)
	}
	return &model.CrawledBlock{Height: height, Hash: records[0].Data}, nil
}

// Put records block as crawled.
func (c *Checkpoints) Put(ctx context.Context, block model.CrawledBlock) error {
	sort, err := safe.Int64(block.Height)
	if err != nil {
		return fmt.Errorf("checkpoint height: %w", err)
	}
	return c.index.Put(ctx, store.Record{
		ID:        checkpointID(block.Height),
		Partition: checkpointPartition,
		Sort:      sort,
		Data:      block.Hash,
	})
}

// Delete removes the checkpoint at height, making the one below it the tip.
func (c *Checkpoints) Delete(ctx context.Context, height uint64) error {
	return c.index.Delete(ctx, checkpointID(height))
}

func checkpointID(height uint64) string {
	return fmt.Sprintf("block-%d", height)
}

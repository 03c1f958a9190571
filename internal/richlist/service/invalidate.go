package service

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"go.uber.org/zap"
)

// invalidate rolls the checkpoint back by one block. Addresses recomputed at the invalid height
// and at the height below it are queued again before their ledger entries are dropped. The
// checkpoint goes last so an interrupted invalidation is simply repeated.
func (c *Crawler) invalidate(ctx context.Context, tip model.CrawledBlock) error {
	tokens, err := c.tokens.IDs(ctx)
	if err != nil {
		return err
	}

	heights := []uint64{tip.Height}
	if tip.Height > 0 {
		heights = append(heights, tip.Height-1)
	}

	replay := make(map[string]struct{})
	var addresses []string
	for _, token := range tokens {
		for _, height := range heights {
			entries, err := c.dropouts.At(ctx, token, height)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if _, ok := replay[e.Data]; ok {
					continue
				}
				replay[e.Data] = struct{}{}
				addresses = append(addresses, e.Data)
			}
		}
	}
	if len(addresses) > 0 {
		if err := c.queue.Push(ctx, addresses...); err != nil {
			return fmt.Errorf("push replayed addresses: %w", err)
		}
	}

	for _, token := range tokens {
		if err := c.dropouts.Delete(ctx, token, tip.Height); err != nil {
			return fmt.Errorf("delete dropouts of token %d: %w", token, err)
		}
	}
	if err := c.checkpoints.Delete(ctx, tip.Height); err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}

	c.logger.Info("checkpoint invalidated", zap.Uint64("height", tip.Height), zap.Int("replayed", len(addresses)))
	return nil
}

// Package service contains the crawl and recompute loops of the rich list pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/richlist7000-backend/internal/clock"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/chain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/queue"
	"go.uber.org/zap"
)

// Crawler walks the chain one block at a time, queues the addresses active in each block and
// checkpoints progress. A block whose parent differs from the checkpoint triggers invalidation.
type Crawler struct {
	logger       *zap.Logger
	source       ChainSource
	extractor    BlockExtractor
	queue        queue.Queue
	checkpoints  *Checkpoints
	dropouts     *DropoutLedger
	tokens       *Tokens
	metrics      CrawlerMetrics
	wait         func(context.Context, time.Duration) error
	newBackoff   func() backoff.BackOff
	pollInterval time.Duration

	running atomic.Bool
}

// NewCrawler builds a Crawler. blockSignal may be nil, in which case the loop only polls.
func NewCrawler(
	source ChainSource,
	extractor BlockExtractor,
	q queue.Queue,
	checkpoints *Checkpoints,
	dropouts *DropoutLedger,
	tokens *Tokens,
	metrics CrawlerMetrics,
	network model.Network,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Crawler, error) {
	if metrics == nil {
		return nil, errors.New("crawler metrics is required")
	}
	return &Crawler{
		logger:      logger.With(zap.String("network", string(network))).Named("crawler"),
		source:      source,
		extractor:   extractor,
		queue:       q,
		checkpoints: checkpoints,
		dropouts:    dropouts,
		tokens:      tokens,
		metrics:     metrics,
		wait: func(ctx context.Context, d time.Duration) error {
			return clock.WaitForSignal(ctx, d, blockSignal)
		},
		newBackoff:   defaultBackoff,
		pollInterval: pollInterval,
	}, nil
}

// Run catches up with the chain, then waits for the next block signal or poll interval.
// Failed catch-ups are retried with exponential backoff. Returns on context cancellation.
func (c *Crawler) Run(ctx context.Context) error {
	for {
		err := backoff.RetryNotify(
			func() error { return c.CatchUp(ctx) },
			backoff.WithContext(c.newBackoff(), ctx),
			func(err error, d time.Duration) {
				c.logger.Warn("catch up failed, backing off", zap.Error(err), zap.Duration("retry_in", d))
			},
		)
		if err != nil {
			return err
		}
		if err := c.wait(ctx, c.pollInterval); err != nil {
			return err
		}
	}
}

// CatchUp processes blocks until the chain tip is reached. A call made while another one is
// in flight returns nil immediately.
func (c *Crawler) CatchUp(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		c.logger.Debug("catch up already in flight")
		return nil
	}
	defer c.running.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := c.step(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// step handles the height after the checkpoint. It reports false once the tip is reached.
func (c *Crawler) step(ctx context.Context) (bool, error) {
	tip, err := c.checkpoints.Tip(ctx)
	if err != nil {
		return false, err
	}
	var next uint64
	if tip != nil {
		next = tip.Height + 1
	}

	block, err := c.source.FetchBlock(ctx, next)
	if errors.Is(err, chain.ErrHeightOutOfRange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch block %d: %w", next, err)
	}
	if block.Height != next {
		return false, fmt.Errorf("fetch block %d: node returned height %d", next, block.Height)
	}

	if tip != nil && tip.Hash != block.PreviousHash {
		c.logger.Info("chain reorganized, invalidating checkpoint",
			zap.Uint64("height", tip.Height),
			zap.String("checkpoint_hash", tip.Hash),
			zap.String("next_previous_hash", block.PreviousHash),
		)
		started := time.Now()
		err := c.invalidate(ctx, *tip)
		c.metrics.ObserveInvalidation(err, tip.Height, started)
		if err != nil {
			return false, fmt.Errorf("invalidate block %d: %w", tip.Height, err)
		}
		return true, nil
	}

	started := time.Now()
	count, err := c.processBlock(ctx, block)
	c.metrics.ObserveBlock(err, block.Height, count, started)
	if err != nil {
		return false, fmt.Errorf("process block %d: %w", block.Height, err)
	}
	return true, nil
}

func (c *Crawler) processBlock(ctx context.Context, block *chain.Block) (int, error) {
	active, err := c.extractor.ExtractBlock(ctx, block)
	if err != nil {
		return 0, err
	}

	addresses := uniqueAddresses(active)
	if len(addresses) > 0 {
		if err := c.queue.Push(ctx, addresses...); err != nil {
			return 0, fmt.Errorf("push addresses: %w", err)
		}
	}
	if err := c.checkpoints.Put(ctx, model.CrawledBlock{Height: block.Height, Hash: block.Hash}); err != nil {
		return 0, fmt.Errorf("put checkpoint: %w", err)
	}

	c.logger.Debug("block crawled", zap.Uint64("height", block.Height), zap.Int("addresses", len(addresses)))
	return len(addresses), nil
}

func uniqueAddresses(active []model.ActiveAddress) []string {
	seen := make(map[string]struct{}, len(active))
	out := make([]string, 0, len(active))
	for _, a := range active {
		if _, ok := seen[a.Address]; ok {
			continue
		}
		seen[a.Address] = struct{}{}
		out = append(out, a.Address)
	}
	return out
}

func defaultBackoff() backoff.BackOff {
	return backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(0))
}

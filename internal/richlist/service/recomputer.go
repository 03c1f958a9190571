package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/richlist7000-backend/internal/clock"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/queue"
	"github.com/goodnatureofminers/richlist7000-backend/pkg/workerpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Recomputer drains the active address queue and refreshes the balances of every drained
// address in the rich list index.
type Recomputer struct {
	logger      *zap.Logger
	source      ChainSource
	queue       queue.Queue
	richList    *RichListIndex
	checkpoints *Checkpoints
	dropouts    *DropoutLedger
	tokens      *Tokens
	metrics     RecomputerMetrics
	wait        func(context.Context, time.Duration) error
	newBackoff  func() backoff.BackOff

	drainLimit       int
	workerCount      int
	dropoutRetention uint64
	pollInterval     time.Duration
}

// RecomputerConfig tunes a Recomputer. Zero values use the defaults.
type RecomputerConfig struct {
	DrainLimit       int
	WorkerCount      int
	DropoutRetention uint64
}

// NewRecomputer builds a Recomputer. blockSignal may be nil.
func NewRecomputer(
	source ChainSource,
	q queue.Queue,
	richList *RichListIndex,
	checkpoints *Checkpoints,
	dropouts *DropoutLedger,
	tokens *Tokens,
	metrics RecomputerMetrics,
	cfg RecomputerConfig,
	network model.Network,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Recomputer, error) {
	if metrics == nil {
		return nil, errors.New("recomputer metrics is required")
	}
	if cfg.DrainLimit <= 0 {
		cfg.DrainLimit = DefaultDrainLimit
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.DropoutRetention == 0 {
		cfg.DropoutRetention = DefaultDropoutRetention
	}
	return &Recomputer{
		logger:      logger.With(zap.String("network", string(network))).Named("recomputer"),
		source:      source,
		queue:       q,
		richList:    richList,
		checkpoints: checkpoints,
		dropouts:    dropouts,
		tokens:      tokens,
		metrics:     metrics,
		wait: func(ctx context.Context, d time.Duration) error {
			return clock.WaitForSignal(ctx, d, blockSignal)
		},
		newBackoff:       defaultBackoff,
		drainLimit:       cfg.DrainLimit,
		workerCount:      cfg.WorkerCount,
		dropoutRetention: cfg.DropoutRetention,
		pollInterval:     pollInterval,
	}, nil
}

// Run drains the queue, then waits for the next block signal or poll interval. Failed cycles
// are retried with exponential backoff. Returns on context cancellation.
func (r *Recomputer) Run(ctx context.Context) error {
	for {
		err := backoff.RetryNotify(
			func() error { return r.CalculateNext(ctx, r.drainLimit) },
			backoff.WithContext(r.newBackoff(), ctx),
			func(err error, d time.Duration) {
				r.logger.Warn("recompute failed, backing off", zap.Error(err), zap.Duration("retry_in", d))
			},
		)
		if err != nil {
			return err
		}
		if err := r.wait(ctx, r.pollInterval); err != nil {
			return err
		}
	}
}

// CalculateNext claims up to drainLimit addresses at a time until the queue is empty. A batch
// that fails is pushed back to the queue before the error is returned.
func (r *Recomputer) CalculateNext(ctx context.Context, drainLimit int) error {
	if drainLimit <= 0 {
		drainLimit = r.drainLimit
	}
	if length, err := r.queue.Len(ctx); err == nil {
		r.metrics.ObserveQueueLength(length)
	}

	var processed int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		addresses, err := r.queue.Receive(ctx, drainLimit)
		if err != nil {
			return fmt.Errorf("receive addresses: %w", err)
		}
		if len(addresses) == 0 {
			break
		}

		started := time.Now()
		err = r.processBatch(ctx, addresses)
		r.metrics.ObserveBatch(err, len(addresses), started)
		if err != nil {
			if pushErr := r.queue.Push(context.WithoutCancel(ctx), addresses...); pushErr != nil {
				return errors.Join(err, fmt.Errorf("push back %d addresses: %w", len(addresses), pushErr))
			}
			return err
		}
		processed += len(addresses)
	}

	if processed == 0 {
		return nil
	}
	r.logger.Debug("queue drained", zap.Int("addresses", processed))
	return r.prune(ctx)
}

func (r *Recomputer) processBatch(ctx context.Context, addresses []string) error {
	tokens, err := r.tokens.IDs(ctx)
	if err != nil {
		return err
	}
	return workerpool.Process(ctx, r.workerCount, addresses, func(ctx context.Context, address string) error {
		return r.recompute(ctx, address, tokens)
	})
}

// recompute refreshes every token balance of address. The native token ledger entry is written
// before the node is asked, so an invalidation running during the reads queues the address again.
func (r *Recomputer) recompute(ctx context.Context, address string, tokens []uint32) error {
	tip, err := r.checkpoints.Tip(ctx)
	if err != nil {
		return err
	}
	if tip != nil {
		if err := r.dropouts.Record(ctx, tip.Height, address, model.NativeTokenID); err != nil {
			return fmt.Errorf("record dropout of %s: %w", address, err)
		}
	}

	accounts, err := r.source.AccountBalances(ctx, address)
	if err != nil {
		return fmt.Errorf("account balances of %s: %w", address, err)
	}
	utxo, err := r.source.UTXOBalance(ctx, address)
	if err != nil {
		return fmt.Errorf("utxo balance of %s: %w", address, err)
	}

	balances := make(map[uint32]decimal.Decimal, len(tokens)+len(accounts))
	for _, token := range tokens {
		balances[token] = decimal.Zero
	}
	for token, amount := range accounts {
		balances[token] = amount
	}
	balances[model.NativeTokenID] = balances[model.NativeTokenID].Add(utxo)

	if err := r.richList.Put(ctx, address, balances); err != nil {
		return err
	}

	if tip == nil {
		return nil
	}
	var held []uint32
	for token, amount := range balances {
		if token != model.NativeTokenID && !amount.IsZero() {
			held = append(held, token)
		}
	}
	if len(held) > 0 {
		if err := r.dropouts.Record(ctx, tip.Height, address, held...); err != nil {
			return fmt.Errorf("record dropout of %s: %w", address, err)
		}
	}
	return r.requeueIfRolledBack(ctx, address, *tip)
}

// requeueIfRolledBack pushes address again when the checkpoint it was computed against has been
// invalidated in the meantime.
func (r *Recomputer) requeueIfRolledBack(ctx context.Context, address string, computedAt model.CrawledBlock) error {
	tip, err := r.checkpoints.Tip(ctx)
	if err != nil {
		return err
	}
	if tip != nil && (tip.Height > computedAt.Height || *tip == computedAt) {
		return nil
	}
	r.logger.Debug("checkpoint rolled back during recompute, queueing address again",
		zap.String("address", address), zap.Uint64("height", computedAt.Height))
	if err := r.queue.Push(ctx, address); err != nil {
		return fmt.Errorf("requeue %s: %w", address, err)
	}
	return nil
}

func (r *Recomputer) prune(ctx context.Context) error {
	tip, err := r.checkpoints.Tip(ctx)
	if err != nil {
		return err
	}
	if tip == nil || tip.Height <= r.dropoutRetention {
		return nil
	}
	tokens, err := r.tokens.IDs(ctx)
	if err != nil {
		return err
	}
	below := tip.Height - r.dropoutRetention
	for _, token := range tokens {
		if err := r.dropouts.Prune(ctx, token, below); err != nil {
			return fmt.Errorf("prune dropouts of token %d: %w", token, err)
		}
	}
	return nil
}

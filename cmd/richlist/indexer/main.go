// Package main runs the rich list crawler and balance recomputer for one network.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/metrics"
	"github.com/goodnatureofminers/richlist7000-backend/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/defichain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/extractor"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/queue"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/service"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store/clickhouse"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	Network          model.Network `long:"network" env:"RICHLIST_NETWORK" description:"mainnet, testnet, changi or regtest" required:"true"`
	RPCURL           string        `long:"rpc-url" env:"RICHLIST_RPC_URL" description:"DeFiChain RPC URL" default:"http://127.0.0.1:8554"`
	RPCUser          string        `long:"rpc-user" env:"RICHLIST_RPC_USER" description:"DeFiChain RPC username"`
	RPCPassword      string        `long:"rpc-password" env:"RICHLIST_RPC_PASSWORD" description:"DeFiChain RPC password"`
	RPCRateLimit     int           `long:"rpc-rate-limit" env:"RICHLIST_RPC_RATE_LIMIT" description:"max RPC calls per second, 0 disables" default:"0"`
	ZMQAddr          string        `long:"zmq-addr" env:"RICHLIST_ZMQ_ADDR" description:"node zmqpubhashblock endpoint"`
	Store            string        `long:"store" env:"RICHLIST_STORE" description:"sorted index backend" choice:"clickhouse" choice:"memory" default:"clickhouse"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"RICHLIST_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Queue            string        `long:"queue" env:"RICHLIST_QUEUE" description:"work queue backend" choice:"redis" choice:"memory" default:"redis"`
	RedisAddr        string        `long:"redis-addr" env:"RICHLIST_REDIS_ADDR" description:"Redis address" default:"localhost:6379"`
	RedisPassword    string        `long:"redis-password" env:"RICHLIST_REDIS_PASSWORD" description:"Redis password"`
	RedisDB          int           `long:"redis-db" env:"RICHLIST_REDIS_DB" description:"Redis database number" default:"0"`
	DrainLimit       int           `long:"drain-limit" env:"RICHLIST_DRAIN_LIMIT" description:"addresses claimed per batch" default:"100"`
	Workers          int           `long:"workers" env:"RICHLIST_WORKERS" description:"addresses recomputed concurrently" default:"8"`
	DropoutRetention uint64        `long:"dropout-retention" env:"RICHLIST_DROPOUT_RETENTION" description:"heights of dropout ledger kept below the tip" default:"100"`
	TokenCacheTTL    time.Duration `long:"token-cache-ttl" env:"RICHLIST_TOKEN_CACHE_TTL" description:"how long the token list is cached" default:"10m"`
	MetricsAddr      string        `long:"metrics-addr" env:"RICHLIST_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("rich list indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	decoder, err := defichain.NewScriptDecoder(cfg.Network)
	if err != nil {
		return err
	}

	node, err := rpcclient.Dial(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init defichain rpc client: %w", err)
	}
	defer func() {
		node.Shutdown()
		node.WaitForShutdown()
	}()
	source := defichain.NewSource(rpcclient.NewObservedClient(node, metrics.NewRPCClient(cfg.Network), cfg.RPCRateLimit))

	checkpointIndex, dropoutIndex, richListIndex, closeStore, err := openIndexes(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	q, err := openQueue(ctx, cfg, logger)
	if err != nil {
		return err
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}
	crawlerSignal, recomputerSignal := fanOut(ctx, blockSignal)

	checkpoints := service.NewCheckpoints(checkpointIndex)
	dropouts := service.NewDropoutLedger(dropoutIndex)
	tokens := service.NewTokens(source, cfg.TokenCacheTTL)

	crawler, err := service.NewCrawler(
		source,
		extractor.NewBlockExtractor(decoder, source, metrics.NewExtractor(cfg.Network), logger),
		q,
		checkpoints,
		dropouts,
		tokens,
		metrics.NewCrawler(cfg.Network),
		cfg.Network,
		logger,
		crawlerSignal,
	)
	if err != nil {
		return err
	}
	recomputer, err := service.NewRecomputer(
		source,
		q,
		service.NewRichListIndex(richListIndex),
		checkpoints,
		dropouts,
		tokens,
		metrics.NewRecomputer(cfg.Network),
		service.RecomputerConfig{
			DrainLimit:       cfg.DrainLimit,
			WorkerCount:      cfg.Workers,
			DropoutRetention: cfg.DropoutRetention,
		},
		cfg.Network,
		logger,
		recomputerSignal,
	)
	if err != nil {
		return err
	}

	logger.Info("starting rich list indexer",
		zap.String("network", string(cfg.Network)),
		zap.String("store", cfg.Store),
		zap.String("queue", cfg.Queue),
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return crawler.Run(gctx) })
	g.Go(func() error { return recomputer.Run(gctx) })
	return g.Wait()
}

func openIndexes(cfg config) (checkpoint, dropout, richList store.SingleIndex, closeFn func(), err error) {
	if cfg.Store == "memory" {
		return store.NewMemoryIndex(), store.NewMemoryIndex(), store.NewMemoryIndex(), func() {}, nil
	}
	chStore, err := clickhouse.NewStore(cfg.ClickhouseDSN, metrics.NewClickhouseStore())
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("init clickhouse store: %w", err)
	}
	closeFn = func() { _ = chStore.Close() }
	return chStore.Index(service.IndexName(cfg.Network, service.IndexCheckpoint)),
		chStore.Index(service.IndexName(cfg.Network, service.IndexDropout)),
		chStore.Index(service.IndexName(cfg.Network, service.IndexRichList)),
		closeFn, nil
}

func openQueue(ctx context.Context, cfg config, logger *zap.Logger) (queue.Queue, error) {
	var backend queue.Backend = queue.NewMemoryBackend()
	if cfg.Queue == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
		backend = queue.NewRedisBackend(client)
	}
	return backend.CreateQueueIfNotExist(ctx, queue.Name(string(cfg.Network)), queue.ModeLIFO)
}

// fanOut copies every signal to two consumers without blocking the producer.
func fanOut(ctx context.Context, in <-chan struct{}) (<-chan struct{}, <-chan struct{}) {
	if in == nil {
		return nil, nil
	}
	a, b := make(chan struct{}, 1), make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-in:
				for _, out := range []chan struct{}{a, b} {
					select {
					case out <- struct{}{}:
					default:
					}
				}
			}
		}
	}()
	return a, b
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

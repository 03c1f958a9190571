// Package main serves the rich list over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/metrics"
	"github.com/goodnatureofminers/richlist7000-backend/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/defichain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/service"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/store/clickhouse"
	"github.com/goodnatureofminers/richlist7000-backend/internal/transport"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	Addr           string        `long:"addr" env:"RICHLIST_API_ADDR" description:"HTTP listen address" default:":8001"`
	Network        model.Network `long:"network" env:"RICHLIST_NETWORK" description:"mainnet, testnet, changi or regtest" required:"true"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"RICHLIST_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	RPCURL         string        `long:"rpc-url" env:"RICHLIST_RPC_URL" description:"DeFiChain RPC URL" default:"http://127.0.0.1:8554"`
	RPCUser        string        `long:"rpc-user" env:"RICHLIST_RPC_USER" description:"DeFiChain RPC username"`
	RPCPassword    string        `long:"rpc-password" env:"RICHLIST_RPC_PASSWORD" description:"DeFiChain RPC password"`
	RichListLength int           `long:"rich-list-length" env:"RICHLIST_LENGTH" description:"entries returned per asset" default:"1000"`
	TokenCacheTTL  time.Duration `long:"token-cache-ttl" env:"RICHLIST_TOKEN_CACHE_TTL" description:"how long the token list is cached" default:"10m"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	chStore, err := clickhouse.NewStore(config.ClickhouseDSN, metrics.NewClickhouseStore())
	if err != nil {
		logger.Fatal("Init clickhouse store", zap.Error(err))
	}
	defer func() {
		_ = chStore.Close()
	}()

	node, err := rpcclient.Dial(config.RPCURL, config.RPCUser, config.RPCPassword)
	if err != nil {
		logger.Fatal("Init defichain rpc client", zap.Error(err))
	}
	defer func() {
		node.Shutdown()
		node.WaitForShutdown()
	}()
	source := defichain.NewSource(rpcclient.NewObservedClient(node, metrics.NewRPCClient(config.Network), 0))

	richList := service.NewRichList(
		service.NewRichListIndex(chStore.Index(service.IndexName(config.Network, service.IndexRichList))),
		service.NewTokens(source, config.TokenCacheTTL),
		config.RichListLength,
	)

	router := mux.NewRouter()
	transport.NewRichListHandler(richList, logger).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr), zap.String("network", string(config.Network)))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/chain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainSource interface {
		FetchBlock(ctx context.Context, height uint64) (*chain.Block, error)
		ListTokens(ctx context.Context) ([]model.TokenInfo, error)
		AccountBalances(ctx context.Context, address string) (map[uint32]decimal.Decimal, error)
		UTXOBalance(ctx context.Context, address string) (decimal.Decimal, error)
	}
	BlockExtractor interface {
		ExtractBlock(ctx context.Context, block *chain.Block) ([]model.ActiveAddress, error)
	}
	CrawlerMetrics interface {
		ObserveBlock(err error, height uint64, addresses int, started time.Time)
		ObserveInvalidation(err error, height uint64, started time.Time)
	}
	RecomputerMetrics interface {
		ObserveBatch(err error, addresses int, started time.Time)
		ObserveQueueLength(length int64)
	}
)

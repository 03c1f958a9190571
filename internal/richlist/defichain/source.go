package defichain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/chain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/pkg/safe"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// RPCClient is the node API used by Source.
type RPCClient interface {
	GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
	GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
	GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
}

const (
	defaultPageSize = 1000

	scanRetries      = 10
	scanRetryInitial = 200 * time.Millisecond
	scanRetryMax     = 5 * time.Second
)

// ErrScanInProgress reports that the node is running another scantxoutset.
var ErrScanInProgress = errors.New("utxo set scan already in progress")

// Source implements the chain data source on top of a DeFiChain node.
type Source struct {
	rpc      RPCClient
	pageSize int

	// The node runs one scantxoutset at a time and rejects overlapping calls.
	scanMu      sync.Mutex
	scanBackoff func() backoff.BackOff
}

// NewSource creates a Source.
func NewSource(rpc RPCClient) *Source {
	return &Source{rpc: rpc, pageSize: defaultPageSize, scanBackoff: defaultScanBackoff}
}

func defaultScanBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = scanRetryInitial
	b.MaxInterval = scanRetryMax
	return backoff.WithMaxRetries(b, scanRetries)
}

type pagination struct {
	Start          any  `json:"start,omitempty"`
	IncludingStart bool `json:"including_start"`
	Limit          int  `json:"limit"`
}

type tokenResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	IsDAT  bool   `json:"isDAT"`
	IsLPS  bool   `json:"isLPS"`
}

type scanResult struct {
	Success     bool            `json:"success"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// FetchBlock retrieves the block at height with full transaction detail. Heights above the tip
// return chain.ErrHeightOutOfRange.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (*chain.Block, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		if isHeightOutOfRange(err) {
			return nil, chain.ErrHeightOutOfRange
		}
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	blockHeight, err := safe.Uint64(src.Height)
	if err != nil {
		return nil, fmt.Errorf("block %s height overflow: %w", src.Hash, err)
	}
	return &chain.Block{
		Height:       blockHeight,
		Hash:         src.Hash,
		PreviousHash: src.PreviousHash,
		Txs:          src.Tx,
	}, nil
}

// Transaction returns a verbose transaction by id.
func (s *Source) Transaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %s: %w", txid, err)
	}
	tx, err := s.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	return tx, nil
}

// ListTokens returns every token known to the node ordered by id.
func (s *Source) ListTokens(ctx context.Context) ([]model.TokenInfo, error) {
	var (
		tokens []model.TokenInfo
		page   = pagination{Start: uint32(0), IncludingStart: true, Limit: s.pageSize}
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var res map[string]tokenResult
		if err := s.call("listtokens", &res, page, true); err != nil {
			return nil, err
		}

		batch := make([]model.TokenInfo, 0, len(res))
		for key, info := range res {
			id, err := parseTokenID(key)
			if err != nil {
				return nil, fmt.Errorf("listtokens: %w", err)
			}
			batch = append(batch, model.TokenInfo{
				ID:     id,
				Symbol: info.Symbol,
				Name:   info.Name,
				IsDAT:  info.IsDAT,
				IsLPS:  info.IsLPS,
			})
		}
		sort.Slice(batch, func(i, j int) bool { return batch[i].ID < batch[j].ID })
		tokens = append(tokens, batch...)

		if len(batch) < s.pageSize {
			return tokens, nil
		}
		page = pagination{Start: batch[len(batch)-1].ID, IncludingStart: false, Limit: s.pageSize}
	}
}

// AccountBalances returns the non-zero account balances of address keyed by token id.
func (s *Source) AccountBalances(ctx context.Context, address string) (map[uint32]decimal.Decimal, error) {
	balances := make(map[uint32]decimal.Decimal)
	page := pagination{IncludingStart: true, Limit: s.pageSize}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var res map[string]decimal.Decimal
		if err := s.call("getaccount", &res, address, page, true); err != nil {
			return nil, err
		}

		var last uint32
		for key, amount := range res {
			id, err := parseTokenID(key)
			if err != nil {
				return nil, fmt.Errorf("getaccount %s: %w", address, err)
			}
			balances[id] = amount
			if id > last {
				last = id
			}
		}

		if len(res) < s.pageSize {
			return balances, nil
		}
		page = pagination{Start: last, IncludingStart: false, Limit: s.pageSize}
	}
}

// UTXOBalance returns the native-currency amount held by address in unspent outputs. Scans are
// serialized; a scan started by another client is waited out with backoff and reported as
// ErrScanInProgress when it does not finish in time.
func (s *Source) UTXOBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	var res scanResult
	err := backoff.Retry(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		err := s.call("scantxoutset", &res, "start", []string{"addr(" + address + ")"})
		if isScanInProgress(err) {
			return fmt.Errorf("%w: %v", ErrScanInProgress, err)
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithContext(s.scanBackoff(), ctx))
	if err != nil {
		return decimal.Zero, err
	}
	if !res.Success {
		return decimal.Zero, fmt.Errorf("scantxoutset %s: scan did not complete", address)
	}
	return res.TotalAmount, nil
}

func (s *Source) call(method string, out any, args ...any) error {
	params := make([]json.RawMessage, 0, len(args))
	for _, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return fmt.Errorf("%s: marshal param: %w", method, err)
		}
		params = append(params, raw)
	}

	raw, err := s.rpc.RawRequest(method, params)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}
	return nil
}

func parseTokenID(key string) (uint32, error) {
	raw, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token id %q: %w", key, err)
	}
	id, err := safe.Uint32(raw)
	if err != nil {
		return 0, fmt.Errorf("token id %q: %w", key, err)
	}
	return id, nil
}

func isScanInProgress(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) &&
		rpcErr.Code == btcjson.ErrRPCInvalidParameter &&
		strings.Contains(rpcErr.Message, "in progress")
}

func isHeightOutOfRange(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCInvalidParameter
}

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
)

type tokenLister interface {
	ListTokens(ctx context.Context) ([]model.TokenInfo, error)
}

// Tokens caches the ids of the tokens tracked by the chain.
type Tokens struct {
	source tokenLister
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	ids     []uint32
	fetched time.Time
}

// NewTokens creates a token cache refreshed every ttl. ttl <= 0 uses the default.
func NewTokens(source tokenLister, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = tokenCacheTTL
	}
	return &Tokens{source: source, ttl: ttl, now: time.Now}
}

// IDs returns the tracked token ids in ascending order. The native token is always included.
func (t *Tokens) IDs(ctx context.Context) ([]uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ids != nil && t.now().Sub(t.fetched) < t.ttl {
		return slices.Clone(t.ids), nil
	}

	infos, err := t.source.ListTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	ids := []uint32{model.NativeTokenID}
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	slices.Sort(ids)
	t.ids = slices.Compact(ids)
	t.fetched = t.now()
	return slices.Clone(t.ids), nil
}

// Tracked reports whether id is a tracked token.
func (t *Tokens) Tracked(ctx context.Context, id uint32) (bool, error) {
	ids, err := t.IDs(ctx)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(ids, id)
	return found, nil
}

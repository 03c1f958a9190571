package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
)

// ErrUnknownAsset is returned for asset ids that are not tracked token ids.
var ErrUnknownAsset = errors.New("unknown asset")

// RichList answers rich list queries.
type RichList struct {
	index  *RichListIndex
	tokens *Tokens
	length int
}

// NewRichList creates a RichList returning up to length entries. length <= 0 uses the default.
func NewRichList(index *RichListIndex, tokens *Tokens, length int) *RichList {
	if length <= 0 {
		length = DefaultRichListLength
	}
	return &RichList{index: index, tokens: tokens, length: length}
}

// Get returns the largest positive balances of assetID in descending order.
func (r *RichList) Get(ctx context.Context, assetID string) ([]model.AddressBalance, error) {
	id, err := strconv.ParseUint(assetID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a token id", ErrUnknownAsset, assetID)
	}
	tracked, err := r.tokens.Tracked(ctx, uint32(id))
	if err != nil {
		return nil, err
	}
	if !tracked {
		return nil, fmt.Errorf("%w: token %d is not tracked", ErrUnknownAsset, id)
	}
	return r.index.Top(ctx, uint32(id), r.length)
}

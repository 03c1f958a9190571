package dftx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/btcsuite/btcd/wire"
)

// maxScriptLen bounds an embedded script; consensus limits scripts to 10k bytes.
const maxScriptLen = 10_000

var errVarUIntOverflow = errors.New("varuint overflows uint64")

// reader decodes payload fields. The first failure sticks and later reads return zero values.
type reader struct {
	buf *bytes.Reader
	err error
}

func newReader(data []byte) *reader {
	return &reader{buf: bytes.NewReader(data)}
}

func (r *reader) fail(field string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %w", field, err)
	}
}

func (r *reader) uint32(field string) uint32 {
	if r.err != nil {
		return 0
	}
	var v uint32
	if err := binary.Read(r.buf, binary.LittleEndian, &v); err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *reader) int64(field string) int64 {
	if r.err != nil {
		return 0
	}
	var v int64
	if err := binary.Read(r.buf, binary.LittleEndian, &v); err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *reader) script(field string) Script {
	if r.err != nil {
		return nil
	}
	b, err := wire.ReadVarBytes(r.buf, 0, maxScriptLen, field)
	if err != nil {
		r.fail(field, err)
		return nil
	}
	return b
}

func (r *reader) vaultID(field string) VaultID {
	var id VaultID
	if r.err != nil {
		return id
	}
	if _, err := io.ReadFull(r.buf, id[:]); err != nil {
		r.fail(field, err)
	}
	return id
}

// count reads a CompactSize element count. Every element takes at least one byte, so counts
// larger than the remaining input are rejected before allocating.
func (r *reader) count(field string) int {
	if r.err != nil {
		return 0
	}
	n, err := wire.ReadVarInt(r.buf, 0)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	if n > uint64(r.buf.Len()) {
		r.fail(field, fmt.Errorf("count %d exceeds remaining %d bytes", n, r.buf.Len()))
		return 0
	}
	return int(n)
}

// varUInt reads the MSB base-128 VARINT used by the node's serializer, where every
// continuation byte adds one to avoid redundant encodings.
func (r *reader) varUInt(field string) uint64 {
	if r.err != nil {
		return 0
	}
	var n uint64
	for {
		b, err := r.buf.ReadByte()
		if err != nil {
			r.fail(field, err)
			return 0
		}
		if n > math.MaxUint64>>7 {
			r.fail(field, errVarUIntOverflow)
			return 0
		}
		n = n<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return n
		}
		if n == math.MaxUint64 {
			r.fail(field, errVarUIntOverflow)
			return 0
		}
		n++
	}
}

func (r *reader) tokenID(field string) uint32 {
	v := r.varUInt(field)
	if v > math.MaxUint32 {
		r.fail(field, fmt.Errorf("token id %d out of range", v))
		return 0
	}
	return uint32(v)
}

func (r *reader) tokenBalance(field string) TokenBalance {
	return TokenBalance{Token: r.uint32(field + ".token"), Amount: r.int64(field + ".amount")}
}

func (r *reader) tokenBalances(field string) []TokenBalance {
	n := r.count(field)
	if n == 0 {
		return nil
	}
	out := make([]TokenBalance, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.tokenBalance(field))
	}
	return out
}

func (r *reader) tokenBalancesVarInt(field string) []TokenBalance {
	n := r.count(field)
	if n == 0 {
		return nil
	}
	out := make([]TokenBalance, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, TokenBalance{Token: r.tokenID(field + ".token"), Amount: r.int64(field + ".amount")})
	}
	return out
}

func (r *reader) scriptBalances(field string) []ScriptBalances {
	n := r.count(field)
	if n == 0 {
		return nil
	}
	out := make([]ScriptBalances, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, ScriptBalances{
			Script:   r.script(field + ".script"),
			Balances: r.tokenBalances(field + ".balances"),
		})
	}
	return out
}

func (r *reader) poolSwap() PoolSwap {
	return PoolSwap{
		FromScript:  r.script("fromScript"),
		FromTokenID: r.tokenID("fromTokenId"),
		FromAmount:  r.int64("fromAmount"),
		ToScript:    r.script("toScript"),
		ToTokenID:   r.tokenID("toTokenId"),
		MaxPrice:    MaxPrice{Integer: r.int64("maxPrice.integer"), Fraction: r.int64("maxPrice.fraction")},
	}
}

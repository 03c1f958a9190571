package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// UTXOTokenID marks an active address discovered through plain UTXO inputs/outputs.
	UTXOTokenID int64 = -1
	// NativeTokenID is the account-side id of the native currency (DFI).
	NativeTokenID uint32 = 0

	// AmountDecimals is the fixed-point precision of every amount on chain.
	AmountDecimals = 8
)

// ActiveAddress is a unit of work: recheck the balance of Address.
type ActiveAddress struct {
	TokenID int64
	Address string
}

// AddressBalance is one entry of the rich list of a token.
type AddressBalance struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// SortKey converts the amount into its integer minor-unit representation, truncated toward zero.
func (b AddressBalance) SortKey() int64 {
	return SortKey(b.Amount)
}

// SortKey converts a fixed-point amount into integer minor units (8 implied decimals).
func SortKey(amount decimal.Decimal) int64 {
	return amount.Shift(AmountDecimals).Truncate(0).IntPart()
}

// AmountFromMinor builds an amount from integer minor units.
func AmountFromMinor(v int64) decimal.Decimal {
	return decimal.New(v, -AmountDecimals)
}

// DroppedEntry records that Data (an address) had its balance computed at SortHeight.
type DroppedEntry struct {
	ID         string
	Partition  string
	SortHeight uint64
	Data       string
}

// TokenPartition renders a token id as the partition name used by the per-token indexes.
func TokenPartition(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

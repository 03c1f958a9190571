// Package dftx decodes and encodes DeFiChain custom transactions carried in OP_RETURN outputs.
package dftx

import (
	"encoding/hex"
	"fmt"
)

// Type is the one-byte custom transaction type following the DfTx signature.
type Type byte

const (
	TypeUtxosToAccount        Type = 'U'
	TypeAccountToUtxos        Type = 'b'
	TypeAccountToAccount      Type = 'B'
	TypeAnyAccountsToAccounts Type = 'a'
	TypePoolSwap              Type = 's'
	TypeCompositeSwap         Type = 'i'
	TypePoolAddLiquidity      Type = 'l'
	TypePoolRemoveLiquidity   Type = 'r'
	TypeTakeLoan              Type = 'X'
	TypePaybackLoan           Type = 'H'
	TypeWithdrawFromVault     Type = 'J'
	TypeDepositToVault        Type = 'S'
)

var typeNames = map[Type]string{
	TypeUtxosToAccount:        "UtxosToAccount",
	TypeAccountToUtxos:        "AccountToUtxos",
	TypeAccountToAccount:      "AccountToAccount",
	TypeAnyAccountsToAccounts: "AnyAccountsToAccounts",
	TypePoolSwap:              "PoolSwap",
	TypeCompositeSwap:         "CompositeSwap",
	TypePoolAddLiquidity:      "PoolAddLiquidity",
	TypePoolRemoveLiquidity:   "PoolRemoveLiquidity",
	TypeTakeLoan:              "TakeLoan",
	TypePaybackLoan:           "PaybackLoan",
	TypeWithdrawFromVault:     "WithdrawFromVault",
	TypeDepositToVault:        "DepositToVault",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	if t >= 0x21 && t <= 0x7e {
		return fmt.Sprintf("Unknown(%c)", byte(t))
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(t))
}

// Script is a raw locking script embedded in a payload.
type Script []byte

func (s Script) String() string {
	return hex.EncodeToString(s)
}

// TokenBalance is an amount of a token in minor units.
type TokenBalance struct {
	Token  uint32
	Amount int64
}

// ScriptBalances binds balances to the account identified by Script.
type ScriptBalances struct {
	Script   Script
	Balances []TokenBalance
}

// VaultID is the 32-byte id of a loan vault, stored little endian on the wire.
type VaultID [32]byte

func (v VaultID) String() string {
	var reversed [32]byte
	for i := range v {
		reversed[i] = v[len(v)-1-i]
	}
	return hex.EncodeToString(reversed[:])
}

// MaxPrice is the price limit of a swap, split into integer and fractional parts.
type MaxPrice struct {
	Integer  int64
	Fraction int64
}

// Payload is a decoded custom transaction.
type Payload interface {
	TxType() Type
	encode(w *writer)
}

type (
	UtxosToAccount struct {
		To []ScriptBalances
	}
	AccountToUtxos struct {
		From                Script
		Balances            []TokenBalance
		MintingOutputsStart uint32
	}
	AccountToAccount struct {
		From Script
		To   []ScriptBalances
	}
	AnyAccountsToAccounts struct {
		From []ScriptBalances
		To   []ScriptBalances
	}
	PoolSwap struct {
		FromScript  Script
		FromTokenID uint32
		FromAmount  int64
		ToScript    Script
		ToTokenID   uint32
		MaxPrice    MaxPrice
	}
	CompositeSwap struct {
		PoolSwap PoolSwap
		Pools    []uint32
	}
	PoolAddLiquidity struct {
		From         []ScriptBalances
		ShareAddress Script
	}
	PoolRemoveLiquidity struct {
		Script  Script
		TokenID uint32
		Amount  int64
	}
	TakeLoan struct {
		VaultID VaultID
		To      Script
		Amounts []TokenBalance
	}
	PaybackLoan struct {
		VaultID VaultID
		From    Script
		Amounts []TokenBalance
	}
	WithdrawFromVault struct {
		VaultID VaultID
		To      Script
		Amount  TokenBalance
	}
	DepositToVault struct {
		VaultID VaultID
		From    Script
		Amount  TokenBalance
	}
	// Unknown carries a custom transaction of a type this package does not decode.
	Unknown struct {
		Type Type
		Data []byte
	}
)

func (UtxosToAccount) TxType() Type        { return TypeUtxosToAccount }
func (AccountToUtxos) TxType() Type        { return TypeAccountToUtxos }
func (AccountToAccount) TxType() Type      { return TypeAccountToAccount }
func (AnyAccountsToAccounts) TxType() Type { return TypeAnyAccountsToAccounts }
func (PoolSwap) TxType() Type              { return TypePoolSwap }
func (CompositeSwap) TxType() Type         { return TypeCompositeSwap }
func (PoolAddLiquidity) TxType() Type      { return TypePoolAddLiquidity }
func (PoolRemoveLiquidity) TxType() Type   { return TypePoolRemoveLiquidity }
func (TakeLoan) TxType() Type              { return TypeTakeLoan }
func (PaybackLoan) TxType() Type           { return TypePaybackLoan }
func (WithdrawFromVault) TxType() Type     { return TypeWithdrawFromVault }
func (DepositToVault) TxType() Type        { return TypeDepositToVault }
func (u Unknown) TxType() Type             { return u.Type }

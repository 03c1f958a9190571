package dftx

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/wire"
)

// writer is the inverse of reader. Writes to a bytes.Buffer cannot fail.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) uint32(v uint32) {
	_ = binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *writer) int64(v int64) {
	_ = binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *writer) script(s Script) {
	_ = wire.WriteVarBytes(&w.buf, 0, s)
}

func (w *writer) vaultID(id VaultID) {
	w.buf.Write(id[:])
}

func (w *writer) count(n int) {
	_ = wire.WriteVarInt(&w.buf, 0, uint64(n))
}

func (w *writer) varUInt(n uint64) {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(n & 0x7f)
	for n > 0x7f {
		n = (n >> 7) - 1
		i--
		tmp[i] = byte(n&0x7f) | 0x80
	}
	w.buf.Write(tmp[i:])
}

func (w *writer) tokenBalance(b TokenBalance) {
	w.uint32(b.Token)
	w.int64(b.Amount)
}

func (w *writer) tokenBalances(bs []TokenBalance) {
	w.count(len(bs))
	for _, b := range bs {
		w.tokenBalance(b)
	}
}

func (w *writer) tokenBalancesVarInt(bs []TokenBalance) {
	w.count(len(bs))
	for _, b := range bs {
		w.varUInt(uint64(b.Token))
		w.int64(b.Amount)
	}
}

func (w *writer) scriptBalances(sbs []ScriptBalances) {
	w.count(len(sbs))
	for _, sb := range sbs {
		w.script(sb.Script)
		w.tokenBalances(sb.Balances)
	}
}

func (p PoolSwap) encode(w *writer) {
	w.script(p.FromScript)
	w.varUInt(uint64(p.FromTokenID))
	w.int64(p.FromAmount)
	w.script(p.ToScript)
	w.varUInt(uint64(p.ToTokenID))
	w.int64(p.MaxPrice.Integer)
	w.int64(p.MaxPrice.Fraction)
}

func (p UtxosToAccount) encode(w *writer) {
	w.scriptBalances(p.To)
}

func (p AccountToUtxos) encode(w *writer) {
	w.script(p.From)
	w.tokenBalancesVarInt(p.Balances)
	w.varUInt(uint64(p.MintingOutputsStart))
}

func (p AccountToAccount) encode(w *writer) {
	w.script(p.From)
	w.scriptBalances(p.To)
}

func (p AnyAccountsToAccounts) encode(w *writer) {
	w.scriptBalances(p.From)
	w.scriptBalances(p.To)
}

func (p CompositeSwap) encode(w *writer) {
	p.PoolSwap.encode(w)
	w.count(len(p.Pools))
	for _, id := range p.Pools {
		w.varUInt(uint64(id))
	}
}

func (p PoolAddLiquidity) encode(w *writer) {
	w.scriptBalances(p.From)
	w.script(p.ShareAddress)
}

func (p PoolRemoveLiquidity) encode(w *writer) {
	w.script(p.Script)
	w.varUInt(uint64(p.TokenID))
	w.int64(p.Amount)
}

func (p TakeLoan) encode(w *writer) {
	w.vaultID(p.VaultID)
	w.script(p.To)
	w.tokenBalances(p.Amounts)
}

func (p PaybackLoan) encode(w *writer) {
	w.vaultID(p.VaultID)
	w.script(p.From)
	w.tokenBalances(p.Amounts)
}

func (p WithdrawFromVault) encode(w *writer) {
	w.vaultID(p.VaultID)
	w.script(p.To)
	w.tokenBalance(p.Amount)
}

func (p DepositToVault) encode(w *writer) {
	w.vaultID(p.VaultID)
	w.script(p.From)
	w.tokenBalance(p.Amount)
}

func (p Unknown) encode(w *writer) {
	w.buf.Write(p.Data)
}

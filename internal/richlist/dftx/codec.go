package dftx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// Signature prefixes every custom transaction push.
const Signature = "DfTx"

// asmMarker is how the node renders an OP_RETURN carrying the signature.
const asmMarker = "OP_RETURN 44665478"

var (
	// ErrMalformed reports a custom transaction whose payload cannot be decoded.
	ErrMalformed = errors.New("malformed dftx payload")
	// ErrNotDfTx reports a script that does not carry a custom transaction.
	ErrNotDfTx = errors.New("script is not a dftx")
)

type decodeFunc func(r *reader) Payload

var decoders = map[Type]decodeFunc{
	TypeUtxosToAccount: func(r *reader) Payload {
		return UtxosToAccount{To: r.scriptBalances("to")}
	},
	TypeAccountToUtxos: func(r *reader) Payload {
		return AccountToUtxos{
			From:                r.script("from"),
			Balances:            r.tokenBalancesVarInt("balances"),
			MintingOutputsStart: r.tokenID("mintingOutputsStart"),
		}
	},
	TypeAccountToAccount: func(r *reader) Payload {
		return AccountToAccount{From: r.script("from"), To: r.scriptBalances("to")}
	},
	TypeAnyAccountsToAccounts: func(r *reader) Payload {
		return AnyAccountsToAccounts{From: r.scriptBalances("from"), To: r.scriptBalances("to")}
	},
	TypePoolSwap: func(r *reader) Payload {
		return r.poolSwap()
	},
	TypeCompositeSwap: func(r *reader) Payload {
		p := CompositeSwap{PoolSwap: r.poolSwap()}
		n := r.count("pools")
		for i := 0; i < n && r.err == nil; i++ {
			p.Pools = append(p.Pools, r.tokenID("pools"))
		}
		return p
	},
	TypePoolAddLiquidity: func(r *reader) Payload {
		return PoolAddLiquidity{From: r.scriptBalances("from"), ShareAddress: r.script("shareAddress")}
	},
	TypePoolRemoveLiquidity: func(r *reader) Payload {
		return PoolRemoveLiquidity{Script: r.script("script"), TokenID: r.tokenID("tokenId"), Amount: r.int64("amount")}
	},
	TypeTakeLoan: func(r *reader) Payload {
		return TakeLoan{VaultID: r.vaultID("vaultId"), To: r.script("to"), Amounts: r.tokenBalances("amounts")}
	},
	TypePaybackLoan: func(r *reader) Payload {
		return PaybackLoan{VaultID: r.vaultID("vaultId"), From: r.script("from"), Amounts: r.tokenBalances("amounts")}
	},
	TypeWithdrawFromVault: func(r *reader) Payload {
		return WithdrawFromVault{VaultID: r.vaultID("vaultId"), To: r.script("to"), Amount: r.tokenBalance("amount")}
	},
	TypeDepositToVault: func(r *reader) Payload {
		return DepositToVault{VaultID: r.vaultID("vaultId"), From: r.script("from"), Amount: r.tokenBalance("amount")}
	},
}

// HasMarker reports whether a script asm rendering starts with an OP_RETURN DfTx push.
func HasMarker(asm string) bool {
	return strings.HasPrefix(asm, asmMarker)
}

// Decode parses a push that starts with Signature. Types without a decoder become Unknown;
// bytes after a decoded payload are ignored.
func Decode(push []byte) (Payload, error) {
	if !bytes.HasPrefix(push, []byte(Signature)) {
		return nil, ErrNotDfTx
	}
	body := push[len(Signature):]
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: missing type byte", ErrMalformed)
	}

	t := Type(body[0])
	decode, ok := decoders[t]
	if !ok {
		return Unknown{Type: t, Data: append([]byte(nil), body[1:]...)}, nil
	}

	r := newReader(body[1:])
	payload := decode(r)
	if r.err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, t, r.err)
	}
	return payload, nil
}

// ParseScript tokenizes a locking script and decodes its custom transaction. The first opcode
// must be OP_RETURN and the second a data push beginning with Signature.
func ParseScript(script []byte) (Payload, error) {
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_RETURN {
		return nil, ErrNotDfTx
	}
	if !tokenizer.Next() {
		if err := tokenizer.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil, ErrNotDfTx
	}
	push := tokenizer.Data()
	if !bytes.HasPrefix(push, []byte(Signature)) {
		return nil, ErrNotDfTx
	}
	return Decode(push)
}

// Encode serializes payload behind Signature and its type byte.
func Encode(payload Payload) []byte {
	w := &writer{}
	w.buf.WriteString(Signature)
	w.buf.WriteByte(byte(payload.TxType()))
	payload.encode(w)
	return w.buf.Bytes()
}

// BuildScript wraps an encoded payload into an OP_RETURN locking script.
func BuildScript(payload Payload) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddFullData(Encode(payload)).
		Script()
}

package extractor

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/defichain"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/dftx"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
)

func regtestDecoder(t *testing.T) *defichain.ScriptDecoder {
	t.Helper()
	d, err := defichain.NewScriptDecoder(model.Regtest)
	if err != nil {
		t.Fatalf("NewScriptDecoder() error = %v", err)
	}
	return d
}

// account returns a P2WPKH script and its regtest address.
func account(t *testing.T, seed byte) (dftx.Script, string) {
	t.Helper()
	pkh := make([]byte, 20)
	for i := range pkh {
		pkh[i] = seed
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(pkh, &defichain.RegtestParams)
	if err != nil {
		t.Fatalf("NewAddressWitnessPubKeyHash() error = %v", err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		t.Fatalf("PayToAddrScript() error = %v", err)
	}
	return script, addr.EncodeAddress()
}

func scriptVout(t *testing.T, n uint32, script []byte) btcjson.Vout {
	t.Helper()
	asm, err := txscript.DisasmString(script)
	if err != nil {
		t.Fatalf("DisasmString() error = %v", err)
	}
	return btcjson.Vout{N: n, ScriptPubKey: btcjson.ScriptPubKeyResult{Asm: asm, Hex: hex.EncodeToString(script)}}
}

func dftxVout(t *testing.T, n uint32, payload dftx.Payload) btcjson.Vout {
	t.Helper()
	script, err := dftx.BuildScript(payload)
	if err != nil {
		t.Fatalf("BuildScript() error = %v", err)
	}
	return scriptVout(t, n, script)
}

func addresses(active []model.ActiveAddress) []string {
	out := make([]string, 0, len(active))
	for _, a := range active {
		out = append(out, a.Address)
	}
	return out
}

// Package defichain implements the DeFiChain node source and address codec.
package defichain

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
)

var (
	MainNetParams chaincfg.Params
	TestNetParams chaincfg.Params
	ChangiParams  chaincfg.Params
	RegtestParams chaincfg.Params
)

func init() {
	MainNetParams = chaincfg.MainNetParams
	MainNetParams.Name = "mainnet"
	MainNetParams.PubKeyHashAddrID = 0x12
	MainNetParams.ScriptHashAddrID = 0x5a
	MainNetParams.PrivateKeyID = 0x80
	MainNetParams.Bech32HRPSegwit = "df"

	TestNetParams = chaincfg.TestNet3Params
	TestNetParams.Name = "testnet"
	TestNetParams.PubKeyHashAddrID = 0x0f
	TestNetParams.ScriptHashAddrID = 0x80
	TestNetParams.PrivateKeyID = 0xef
	TestNetParams.Bech32HRPSegwit = "tf"

	ChangiParams = TestNetParams
	ChangiParams.Name = "changi"

	RegtestParams = chaincfg.RegressionNetParams
	RegtestParams.Name = "regtest"
	RegtestParams.PubKeyHashAddrID = 0x6f
	RegtestParams.ScriptHashAddrID = 0xc4
	RegtestParams.PrivateKeyID = 0xef
	RegtestParams.Bech32HRPSegwit = "bcrt"
}

// ChainParams returns address parameters for a DeFiChain network.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet":
		return &MainNetParams, nil
	case "test", "testnet":
		return &TestNetParams, nil
	case "changi", "devnet":
		return &ChangiParams, nil
	case "regtest":
		return &RegtestParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

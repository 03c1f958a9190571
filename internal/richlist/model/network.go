// Package model defines domain models for the rich list indexer.
package model

// Network names a DeFiChain network.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Changi  Network = "changi"
	Regtest Network = "regtest"
)

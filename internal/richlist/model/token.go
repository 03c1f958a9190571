package model

// TokenInfo describes a token tracked by the node.
type TokenInfo struct {
	ID     uint32
	Symbol string
	Name   string
	IsDAT  bool
	IsLPS  bool
}

package service

import "github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"

const (
	IndexCheckpoint = "checkpoint"
	IndexDropout    = "dropout"
	IndexRichList   = "richlist"
)

// IndexName scopes an index kind to network so several networks can share one store.
func IndexName(network model.Network, kind string) string {
	return string(network) + "." + kind
}

// Package metrics holds the Prometheus collectors of the indexer components.
package metrics

import "github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"

const namespace = "richlist7000"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func networkLabel(network model.Network) string {
	if network == "" {
		return "unknown"
	}
	return string(network)
}

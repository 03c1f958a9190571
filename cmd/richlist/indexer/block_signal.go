//go:build !zmq

package main

import (
	"context"

	"go.uber.org/zap"
)

// startBlockSignal is a stub for builds without the zmq tag. The loops only poll.
func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr != "" {
		logger.Warn("zmq support not compiled in, polling only", zap.String("zmq_addr", addr))
	}
	return nil, nil
}

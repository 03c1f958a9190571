//go:build zmq

package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

// startBlockSignal subscribes to the node hashblock topic. Signals are coalesced: a pending
// signal is not duplicated while nobody consumed it.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, fmt.Errorf("create zmq socket: %w", err)
	}
	if err := sub.SetSubscribe("hashblock"); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe hashblock: %w", err)
	}
	if err := sub.SetRcvtimeo(time.Second); err != nil {
		sub.Close()
		return nil, fmt.Errorf("set zmq receive timeout: %w", err)
	}
	if err := sub.Connect(addr); err != nil {
		sub.Close()
		return nil, fmt.Errorf("connect zmq %s: %w", addr, err)
	}

	notify := make(chan struct{}, 1)
	go func() {
		defer sub.Close()
		for ctx.Err() == nil {
			parts, err := sub.RecvMessageBytes(0)
			if err != nil {
				if zmq4.AsErrno(err) != zmq4.Errno(syscall.EAGAIN) {
					logger.Warn("zmq recv failed", zap.Error(err))
				}
				continue
			}
			if len(parts) < 2 {
				logger.Warn("skip malformed zmq message", zap.Int("parts", len(parts)))
				continue
			}
			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	logger.Info("listening for new blocks", zap.String("zmq_addr", addr))
	return notify, nil
}

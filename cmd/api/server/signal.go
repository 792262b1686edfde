package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WithSignal cancels the returned context on the first SIGINT or SIGTERM.
// Calling the returned function releases the subscription.
func WithSignal(parent context.Context, l *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, shutdownSignals...)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			l.Info("shutdown signal received", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

package server

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithSignal_CancelsOnSIGTERM(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, stop := WithSignal(context.Background(), zap.New(core))
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled by SIGTERM")
	}
	require.Eventually(t, func() bool {
		return logs.FilterMessage("shutdown signal received").Len() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "terminated", logs.All()[0].ContextMap()["signal"])
}

func TestWithSignal_StopCancels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, stop := WithSignal(context.Background(), zap.New(core))

	stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Zero(t, logs.Len())
}

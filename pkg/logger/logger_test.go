package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	l, err := NewWithConfig(Config{
		Level:          "info",
		Format:         "json",
		OutputPath:     path,
		ServiceName:    "user-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
	})
	require.NoError(t, err)

	l.Debug("dropped")
	l.Info("kept", zap.Int64("id", 7))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"message":"kept"`)
	assert.Contains(t, out, `"service":"user-service"`)
	assert.NotContains(t, out, "dropped")
}

func TestWithContext_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-123")
	WithContext(ctx, base).Info("hello")
	WithContext(context.Background(), base).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := RequestIDInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	var seen string
	handler := func(ctx context.Context, req any) (any, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	}

	t.Run("from metadata", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc"))
		_, err := interceptor(ctx, nil, info, handler)
		require.NoError(t, err)
		assert.Equal(t, "abc", seen)
	})

	t.Run("generated", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, info, handler)
		require.NoError(t, err)
		assert.Len(t, seen, 36)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), 0.001, "warn")
	assert.Equal(t, gormlogger.Warn, gl.level)

	fc := func() (string, int64) { return "SELECT * FROM `users`", 1 }

	// slow query at warn level
	gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	// fast query is silent at warn level
	gl.Trace(context.Background(), time.Now(), fc, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "gorm slow query", entries[0].Message)

	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Len(t, logs.All(), 1)

	// missing rows are an expected outcome, driver failures are not
	gl.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now(), fc, errors.New("connection reset"))
	require.Len(t, logs.All(), 2)
	assert.Equal(t, "gorm query error", logs.All()[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
}

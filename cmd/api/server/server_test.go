package server

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"user-service/internal/adapter/gin/handler"
	ginrouter "user-service/internal/adapter/gin/router"
	"user-service/internal/config"
)

func testConfig(grpcEnabled bool) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:         "test",
			HTTPPort:    "0",
			GRPCEnabled: grpcEnabled,
			GRPCPort:    "0",
		},
		Logger: config.LoggerConfig{ServiceName: "user-service"},
	}
}

func testOptions(t *testing.T) ginrouter.Options {
	log := zaptest.NewLogger(t)
	return ginrouter.Options{
		UserHandler:   handler.NewUserHandler(nil, log),
		HealthHandler: handler.NewHealthHandler("user-service", nil, log),
		Log:           log,
	}
}

func dialBufconn(t *testing.T, srv *grpc.Server) *grpc.ClientConn {
	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNew_GRPCDisabled(t *testing.T) {
	s := New(testConfig(false), zaptest.NewLogger(t), testOptions(t))

	assert.NotNil(t, s.HTTP)
	assert.Equal(t, ":0", s.HTTP.Addr)
	assert.Nil(t, s.GRPC)
	assert.Nil(t, s.Health)
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestGRPCHealth(t *testing.T) {
	s := New(testConfig(true), zaptest.NewLogger(t), testOptions(t))
	require.NotNil(t, s.GRPC)

	client := healthpb.NewHealthClient(dialBufconn(t, s.GRPC))
	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-request-id", "probe-1")

	for _, service := range []string{"", "user-service"} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	require.NoError(t, s.Shutdown(context.Background()))

	resp, err := s.Health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "user-service"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestGRPCHealth_UnknownService(t *testing.T) {
	srv, _ := SetupGRPC("user-service", zaptest.NewLogger(t))
	t.Cleanup(srv.Stop)

	client := healthpb.NewHealthClient(dialBufconn(t, srv))
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "other"})
	assert.Error(t, err)
}

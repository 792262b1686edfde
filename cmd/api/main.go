package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"user-service/cmd/api/app"
	"user-service/cmd/api/server"
)

func main() {
	os.Exit(run(context.Background()))
}

// run returns the process exit code so deferred cleanup runs before exit.
func run(ctx context.Context) int {
	a, err := app.New(ctx)
	if err != nil {
		log.Printf("failed to initialize application: %v", err)
		return 1
	}

	ctx, stop := server.WithSignal(ctx, a.Logger)
	defer stop()

	if err := a.Run(ctx); err != nil {
		a.Logger.Error("application exited with error", zap.Error(err))
		_ = a.Logger.Sync()
		return 1
	}
	return 0
}

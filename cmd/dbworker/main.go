package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/blog-backend/internal/dbworker/app"
	"github.com/yungbote/blog-backend/internal/platform/shutdown"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx, app.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db worker: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		a.Log.Error("db worker stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
}

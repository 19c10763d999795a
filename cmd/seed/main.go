// Command seed loads the bundled demo mentors and stories into the configured
// Firestore or MongoDB backend. Existing records are left untouched.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/careercanvas/career-canvas-api/internal/app"
	"github.com/careercanvas/career-canvas-api/internal/platform/config"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/seed"
)

func main() {
	defer func() { _ = applog.Sync() }()
	if err := run(context.Background()); err != nil {
		applog.LogError(context.Background(), "seed failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreBackend == config.BackendMemory {
		applog.LogWarn(ctx, "memory backend selected, seeded data will not persist")
	}
	cfg.SeedMentors = false

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close(context.Background()) }()

	res, err := seed.Load(ctx, backend.Stores.Mentors, backend.Stores.Stories, time.Now().UTC())
	if err != nil {
		return err
	}
	applog.LogInfo(ctx, "seed complete",
		zap.String("store", cfg.StoreBackend),
		zap.Int("mentors", res.Mentors),
		zap.Int("stories", res.Stories),
	)
	return nil
}

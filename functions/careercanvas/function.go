// Package careercanvas serves the Career Canvas API as an HTTP Cloud Function.
package careercanvas

import (
	"context"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/careercanvas/career-canvas-api/internal/app"
	"github.com/careercanvas/career-canvas-api/internal/platform/config"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
)

// Version is reported in the OpenAPI document.
var Version = "dev"

func init() {
	functions.HTTP("CareerCanvas", handle)
}

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

// build runs once per instance. The backend stays open for the instance lifetime.
func build() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	backend, err := app.Open(context.Background(), cfg)
	if err != nil {
		initErr = err
		return
	}
	handler, initErr = app.NewHandler(cfg, backend, Version)
}

func handle(w http.ResponseWriter, r *http.Request) {
	once.Do(build)
	if initErr != nil {
		_ = respond.WriteError(w, r, http.StatusServiceUnavailable, "service unavailable", initErr)
		return
	}
	handler.ServeHTTP(w, r)
}

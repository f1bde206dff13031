package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/anishqd/lexiscan/internal/adapters/http"
	"github.com/anishqd/lexiscan/internal/bootstrap"
	"github.com/anishqd/lexiscan/internal/config"
	"github.com/anishqd/lexiscan/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewJSONLogger("lexiscan-api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.New(cfg)
	if app.AnalyzeUC.Health(ctx)["model"] != "configured" {
		slog.Warn("model credentials missing, analysis endpoints will report service unavailable")
	}

	router := httpadapter.NewRouter(app.AnalyzeUC, app.AnalyzeUC, app.Metrics, cfg.MaxUploadBytes)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/legal/", router.Handler())
	mux.Handle("/metrics", app.Metrics.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("api server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api shutdown error", "error", err)
	}
}

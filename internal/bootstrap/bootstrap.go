package bootstrap

import (
	"time"

	"github.com/anishqd/lexiscan/internal/config"
	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/core/usecase"
	"github.com/anishqd/lexiscan/internal/infrastructure/extractor/doctext"
	"github.com/anishqd/lexiscan/internal/infrastructure/llm/gemini"
	"github.com/anishqd/lexiscan/internal/infrastructure/prompting"
	"github.com/anishqd/lexiscan/internal/infrastructure/resilience"
	"github.com/anishqd/lexiscan/internal/infrastructure/validation"
	"github.com/anishqd/lexiscan/internal/observability/metrics"
)

// App wires the analysis pipeline together. Everything is request-scoped
// past construction; there is nothing to close on shutdown.
type App struct {
	Config    config.Config
	Metrics   *metrics.HTTPMetrics
	AnalyzeUC *usecase.AnalyzeUseCase
}

func New(cfg config.Config) *App {
	httpMetrics := metrics.NewHTTPMetrics("lexiscan-api")

	extractor := doctext.New()
	composer := prompting.New()

	client := gemini.New(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey,
		gemini.WithTimeout(time.Duration(cfg.GeminiTimeout)*time.Second),
		gemini.WithRPS(cfg.GeminiRPS),
	)
	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: cfg.RetryMaxAttempts,
		BreakerEnabled:   cfg.BreakerEnabled,
	})
	gateway := gemini.NewResilient(client, executor,
		gemini.WithCallObserver(httpMetrics.ObserveModelCall))

	validator := validation.New(
		validation.WithFallbackHook(func(task domain.AnalysisTask) {
			httpMetrics.ObserveFallback(string(task))
		}),
	)

	analyzeUC := usecase.NewAnalyzeUseCase(extractor, composer, gateway, validator, client.Configured)

	return &App{
		Config:    cfg,
		Metrics:   httpMetrics,
		AnalyzeUC: analyzeUC,
	}
}

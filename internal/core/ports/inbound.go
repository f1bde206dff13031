package ports

import (
	"context"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

// DocumentAnalyzer is the inbound contract for every analysis endpoint.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, task domain.AnalysisTask, input domain.AnalysisInput) (domain.AnalysisResult, error)
}

// ServiceHealth reports the readiness of the pipeline's collaborators.
type ServiceHealth interface {
	Health(ctx context.Context) map[string]string
}

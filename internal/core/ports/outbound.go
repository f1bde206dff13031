package ports

import (
	"context"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

// TextExtractor converts an uploaded artifact into plain UTF-8 text by its
// declared MIME type.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.SourceDocument) (string, error)
}

// PromptComposer builds the complete model instruction for a task. It is a
// pure function of its arguments.
type PromptComposer interface {
	Compose(task domain.AnalysisTask, text string, params domain.TaskParams) (string, error)
}

// ModelGateway is the sole integration point with the external generative
// model. One external call per invocation; no internal retry.
type ModelGateway interface {
	Generate(ctx context.Context, req domain.ModelRequest) (string, error)
}

// ResponseValidator turns raw model output into the task's canonical
// result shape. It never fails: unparseable or schema-violating output is
// replaced by a deterministic fallback of the same shape.
type ResponseValidator interface {
	Validate(task domain.AnalysisTask, raw string, params domain.TaskParams) domain.AnalysisResult
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/core/ports"
)

// AnalyzeUseCase coordinates one analysis request: extract (when a file
// was uploaded), compose, call the model, validate. Extraction and
// transport failures surface to the caller with their kind; model-output
// shape problems never do; the validator absorbs them.
type AnalyzeUseCase struct {
	extractor ports.TextExtractor
	composer  ports.PromptComposer
	gateway   ports.ModelGateway
	validator ports.ResponseValidator

	modelReady func() bool
}

func NewAnalyzeUseCase(
	extractor ports.TextExtractor,
	composer ports.PromptComposer,
	gateway ports.ModelGateway,
	validator ports.ResponseValidator,
	modelReady func() bool,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		extractor:  extractor,
		composer:   composer,
		gateway:    gateway,
		validator:  validator,
		modelReady: modelReady,
	}
}

func (uc *AnalyzeUseCase) Analyze(ctx context.Context, task domain.AnalysisTask, input domain.AnalysisInput) (domain.AnalysisResult, error) {
	if !task.Valid() {
		return domain.AnalysisResult{}, domain.WrapError(domain.ErrInvalidInput, "analyze",
			errors.New("unknown analysis task"))
	}
	if err := validateInput(task, input); err != nil {
		return domain.AnalysisResult{}, err
	}

	text := input.Text
	if input.Document != nil {
		extracted, err := uc.extractor.Extract(ctx, input.Document)
		if err != nil {
			return domain.AnalysisResult{}, err
		}
		// Image-only PDFs legitimately extract to empty text; the model
		// is still asked and the validator guarantees a shaped answer.
		text = extracted
	}

	prompt, err := uc.composer.Compose(task, text, input.Params)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	raw, err := uc.gateway.Generate(ctx, domain.ModelRequest{
		Prompt:      prompt,
		MaxTokens:   task.MaxTokens(),
		Temperature: task.Temperature(),
	})
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	result := uc.validator.Validate(task, raw, input.Params)
	if result.Degraded {
		slog.Warn("analysis_degraded", "task", string(task))
	}
	return result, nil
}

func validateInput(task domain.AnalysisTask, input domain.AnalysisInput) error {
	if input.Document == nil && strings.TrimSpace(input.Text) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "analyze",
			errors.New("either a document or text is required"))
	}
	if task == domain.TaskTranslate && strings.TrimSpace(input.Params.TargetLanguage) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "analyze",
			errors.New("targetLanguage is required"))
	}
	return nil
}

// Health reports collaborator readiness for the health endpoint.
func (uc *AnalyzeUseCase) Health(_ context.Context) map[string]string {
	model := "unconfigured"
	if uc.modelReady != nil && uc.modelReady() {
		model = "configured"
	}
	return map[string]string{
		"model":     model,
		"extractor": "ok",
	}
}

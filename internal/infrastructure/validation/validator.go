package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/infrastructure/prompting"
)

// Validator turns raw model output into the task's canonical result. It
// never fails: output that is not JSON, or is JSON of the wrong shape,
// becomes a deterministic fallback of the same canonical shape. Schema
// problems are absorbed here and never escape as errors.
type Validator struct {
	onFallback func(task domain.AnalysisTask)
}

type Option func(*Validator)

// WithFallbackHook registers an observer invoked once per absorbed schema
// mismatch, for metrics.
func WithFallbackHook(hook func(task domain.AnalysisTask)) Option {
	return func(v *Validator) {
		v.onFallback = hook
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Validate(task domain.AnalysisTask, raw string, params domain.TaskParams) domain.AnalysisResult {
	result, err := parse(task, raw, params)
	if err != nil {
		slog.Warn("model_output_fallback", "task", string(task), "error", err)
		if v.onFallback != nil {
			v.onFallback(task)
		}
		return Fallback(task, raw, params)
	}
	return result
}

// parse is the strict path: recover the JSON value, check it against the
// task's schema, decode it into the task's record. Any error here routes
// to the fallback; none of these errors reach callers.
func parse(task domain.AnalysisTask, raw string, params domain.TaskParams) (domain.AnalysisResult, error) {
	cleaned, err := ExtractJSON(raw)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("parse model json: %w", err)
	}
	value = coerce(task, value)

	data, err := json.Marshal(value)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("remarshal model json: %w", err)
	}
	if err := validateAgainstSchema(prompting.SchemaFor(task, params), value); err != nil {
		return domain.AnalysisResult{}, err
	}

	return decode(task, data)
}

// coerce accepts near-miss shapes models commonly emit: a bare array for
// list-valued tasks instead of the wrapping object.
func coerce(task domain.AnalysisTask, value any) any {
	arr, ok := value.([]any)
	if !ok {
		return value
	}
	switch task {
	case domain.TaskRedFlagDetection:
		return map[string]any{"redFlags": arr}
	case domain.TaskClauseTagging:
		return map[string]any{"clauseTags": arr}
	case domain.TaskStatuteLinking:
		return map[string]any{"statuteLinks": arr}
	default:
		return value
	}
}

func validateAgainstSchema(schemaMap map[string]any, value any) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("model json does not match task schema: %w", err)
	}
	return nil
}

func decode(task domain.AnalysisTask, data []byte) (domain.AnalysisResult, error) {
	result := domain.AnalysisResult{Task: task}

	var err error
	switch task {
	case domain.TaskDocumentAnalysis:
		record := &domain.DocumentAnalysis{}
		err = json.Unmarshal(data, record)
		normalizeDocumentAnalysis(record)
		result.DocumentAnalysis = record
	case domain.TaskSimplify:
		record := &domain.Simplification{}
		err = json.Unmarshal(data, record)
		result.Simplification = record
	case domain.TaskRedFlagDetection:
		record := &domain.RedFlagReport{}
		err = json.Unmarshal(data, record)
		if record.RedFlags == nil {
			record.RedFlags = []domain.RedFlag{}
		}
		result.RedFlagReport = record
	case domain.TaskClauseTagging:
		record := &domain.ClauseTagReport{}
		err = json.Unmarshal(data, record)
		if record.ClauseTags == nil {
			record.ClauseTags = []domain.ClauseTag{}
		}
		result.ClauseTagReport = record
	case domain.TaskStatuteLinking:
		record := &domain.StatuteLinkReport{}
		err = json.Unmarshal(data, record)
		if record.StatuteLinks == nil {
			record.StatuteLinks = []domain.StatuteLink{}
		}
		result.StatuteLinkReport = record
	case domain.TaskMultilingualSimplify:
		record := &domain.MultilingualSummary{}
		err = json.Unmarshal(data, record)
		normalizeMultilingual(record)
		result.MultilingualSummary = record
	case domain.TaskTranslate:
		record := &domain.Translation{}
		err = json.Unmarshal(data, record)
		result.Translation = record
	case domain.TaskBailExtraction:
		record := &domain.BailDocument{}
		err = json.Unmarshal(data, record)
		normalizeBail(record)
		result.BailDocument = record
	case domain.TaskLegalAdvice:
		record := &domain.Advice{}
		err = json.Unmarshal(data, record)
		result.Advice = record
	case domain.TaskVoiceResponse:
		record := &domain.VoiceReply{}
		err = json.Unmarshal(data, record)
		result.VoiceReply = record
	default:
		return domain.AnalysisResult{}, fmt.Errorf("unknown task %q", task)
	}

	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("decode %s result: %w", task, err)
	}
	return result, nil
}

func normalizeDocumentAnalysis(record *domain.DocumentAnalysis) {
	if record.RedFlags == nil {
		record.RedFlags = []domain.RedFlag{}
	}
	if record.ClauseTags == nil {
		record.ClauseTags = []domain.ClauseTag{}
	}
	if record.StatuteLinks == nil {
		record.StatuteLinks = []domain.StatuteLink{}
	}
	if record.MultilingualSummary == nil {
		record.MultilingualSummary = map[string]string{}
	}
	if record.Recommendations == nil {
		record.Recommendations = []string{}
	}
	if record.RiskAssessment.Factors == nil {
		record.RiskAssessment.Factors = []string{}
	}
}

func normalizeMultilingual(record *domain.MultilingualSummary) {
	if record.Summaries == nil {
		record.Summaries = map[string]string{}
	}
	if record.KeyPoints == nil {
		record.KeyPoints = map[string][]string{}
	}
	if record.Warnings == nil {
		record.Warnings = map[string][]string{}
	}
}

func normalizeBail(record *domain.BailDocument) {
	if record.DefendantInfo == nil {
		record.DefendantInfo = map[string]string{}
	}
	if record.SuretyInfo == nil {
		record.SuretyInfo = map[string]string{}
	}
	if record.CourtInfo == nil {
		record.CourtInfo = map[string]string{}
	}
	if record.Dates == nil {
		record.Dates = map[string]string{}
	}
	if record.Conditions == nil {
		record.Conditions = []string{}
	}
	if record.ComplianceRequirements == nil {
		record.ComplianceRequirements = []string{}
	}
	if record.NextSteps == nil {
		record.NextSteps = []string{}
	}
}

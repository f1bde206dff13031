package validation

import (
	"strings"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

const (
	manualReviewNote = "Automated analysis could not produce structured results; manual review by a qualified person is required."
	diagnosticType   = "analysis_error"
)

// Fallback synthesizes the task's canonical result shape from unparseable
// model output. It is a pure function of (task, raw, params): the degraded
// path is first-class, tested behavior, not error handling. The raw model
// text is preserved in the task's free-text field so nothing the model
// said is lost.
func Fallback(task domain.AnalysisTask, raw string, params domain.TaskParams) domain.AnalysisResult {
	raw = strings.TrimSpace(raw)
	result := domain.AnalysisResult{Task: task, Degraded: true}

	switch task {
	case domain.TaskDocumentAnalysis:
		result.DocumentAnalysis = &domain.DocumentAnalysis{
			RedFlags:     []domain.RedFlag{},
			ClauseTags:   []domain.ClauseTag{},
			StatuteLinks: []domain.StatuteLink{},
			RiskAssessment: domain.RiskAssessment{
				OverallRisk: domain.SeverityMedium,
				Score:       50,
				Factors:     []string{manualReviewNote},
			},
			SimplifiedSummary:   raw,
			MultilingualSummary: map[string]string{},
			Recommendations:     []string{manualReviewNote},
		}
	case domain.TaskSimplify:
		result.Simplification = &domain.Simplification{SimplifiedText: raw}
	case domain.TaskRedFlagDetection:
		result.RedFlagReport = &domain.RedFlagReport{
			RedFlags: []domain.RedFlag{{
				Type:           diagnosticType,
				Severity:       domain.SeverityLow,
				Description:    manualReviewNote,
				Location:       "document",
				Recommendation: clip(raw, 500),
			}},
		}
	case domain.TaskClauseTagging:
		result.ClauseTagReport = &domain.ClauseTagReport{
			ClauseTags: []domain.ClauseTag{},
			Summary:    raw,
		}
	case domain.TaskStatuteLinking:
		result.StatuteLinkReport = &domain.StatuteLinkReport{
			StatuteLinks: []domain.StatuteLink{},
			Summary:      raw,
		}
	case domain.TaskMultilingualSimplify:
		languages := params.Languages
		if len(languages) == 0 {
			languages = domain.DefaultLanguages
		}
		summaries := make(map[string]string, len(languages))
		keyPoints := make(map[string][]string, len(languages))
		warnings := make(map[string][]string, len(languages))
		for _, lang := range languages {
			key := strings.ToLower(strings.TrimSpace(lang))
			summaries[key] = raw
			keyPoints[key] = []string{}
			warnings[key] = []string{manualReviewNote}
		}
		result.MultilingualSummary = &domain.MultilingualSummary{
			Summaries: summaries,
			KeyPoints: keyPoints,
			Warnings:  warnings,
		}
	case domain.TaskTranslate:
		result.Translation = &domain.Translation{TranslatedText: raw}
	case domain.TaskBailExtraction:
		result.BailDocument = &domain.BailDocument{
			DocumentType:           "unknown",
			DefendantInfo:          map[string]string{},
			BailAmount:             "",
			SuretyInfo:             map[string]string{},
			CourtInfo:              map[string]string{},
			Dates:                  map[string]string{},
			Conditions:             []string{},
			RiskAssessment:         manualReviewNote,
			ComplianceRequirements: []string{},
			NextSteps:              []string{},
			ExtractedText:          raw,
		}
	case domain.TaskLegalAdvice:
		result.Advice = &domain.Advice{Advice: raw}
	case domain.TaskVoiceResponse:
		result.VoiceReply = &domain.VoiceReply{Response: raw}
	}

	return result
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

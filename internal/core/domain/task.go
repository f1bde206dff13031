package domain

// AnalysisTask enumerates the supported analysis operations. Every task has
// exactly one canonical result shape; see analysis.go.
type AnalysisTask string

const (
	TaskDocumentAnalysis     AnalysisTask = "document_analysis"
	TaskSimplify             AnalysisTask = "simplify"
	TaskRedFlagDetection     AnalysisTask = "red_flag_detection"
	TaskClauseTagging        AnalysisTask = "clause_tagging"
	TaskStatuteLinking       AnalysisTask = "statute_linking"
	TaskMultilingualSimplify AnalysisTask = "multilingual_simplify"
	TaskTranslate            AnalysisTask = "translate"
	TaskBailExtraction       AnalysisTask = "bail_document_extraction"
	TaskLegalAdvice          AnalysisTask = "legal_advice"
	TaskVoiceResponse        AnalysisTask = "voice_response"
)

// AllTasks lists every task variant, in a stable order.
func AllTasks() []AnalysisTask {
	return []AnalysisTask{
		TaskDocumentAnalysis,
		TaskSimplify,
		TaskRedFlagDetection,
		TaskClauseTagging,
		TaskStatuteLinking,
		TaskMultilingualSimplify,
		TaskTranslate,
		TaskBailExtraction,
		TaskLegalAdvice,
		TaskVoiceResponse,
	}
}

// MaxTokens returns the generation budget for the task. Full-document and
// bail extraction answers are long-form; conversational tasks are not.
func (t AnalysisTask) MaxTokens() int {
	switch t {
	case TaskDocumentAnalysis, TaskBailExtraction:
		return 4000
	case TaskMultilingualSimplify:
		return 3000
	case TaskSimplify, TaskClauseTagging, TaskStatuteLinking, TaskTranslate:
		return 2000
	case TaskRedFlagDetection:
		return 1500
	default:
		return 1000
	}
}

// Temperature is the default sampling temperature for every task.
func (t AnalysisTask) Temperature() float64 {
	return 0.7
}

// Valid reports whether the task names a known variant.
func (t AnalysisTask) Valid() bool {
	switch t {
	case TaskDocumentAnalysis, TaskSimplify, TaskRedFlagDetection,
		TaskClauseTagging, TaskStatuteLinking, TaskMultilingualSimplify,
		TaskTranslate, TaskBailExtraction, TaskLegalAdvice, TaskVoiceResponse:
		return true
	}
	return false
}

package domain

// SourceDocument is an uploaded artifact as received at the request
// boundary. It lives only for the duration of one analysis request and is
// discarded after text extraction.
type SourceDocument struct {
	Bytes    []byte
	MIMEType string
	Filename string
}

// AnalysisInput carries either an uploaded document or raw text into the
// analysis pipeline, plus the task-specific parameters.
type AnalysisInput struct {
	Document *SourceDocument
	Text     string
	Params   TaskParams
}

// TaskParams holds per-task caller parameters.
type TaskParams struct {
	// Language is the optional output language for simplification and
	// full-document analysis.
	Language string
	// Languages is the target language list for multilingual summaries.
	Languages []string
	// TargetLanguage is required for translation.
	TargetLanguage string
	// Context is optional free-form background for advice and voice turns.
	Context string
}

// ModelRequest is a single, immutable call to the generative model.
type ModelRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

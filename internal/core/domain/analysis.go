package domain

// Severity levels for red flags and clause risk.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// DefaultLanguages is used when a multilingual request names no targets.
var DefaultLanguages = []string{"english", "hindi", "tamil"}

// RedFlag is a clause flagged as high-risk to the document's signer.
type RedFlag struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Recommendation string `json:"recommendation"`
}

// ClauseTag categorizes a contract clause into a domain category.
type ClauseTag struct {
	Clause      string `json:"clause"`
	Category    string `json:"category"`
	Explanation string `json:"explanation"`
	RiskLevel   string `json:"riskLevel"`
}

// StatuteLink associates document text with an external legal reference.
type StatuteLink struct {
	Statute     string `json:"statute"`
	Section     string `json:"section"`
	Description string `json:"description"`
	Relevance   string `json:"relevance"`
}

type RiskAssessment struct {
	OverallRisk string   `json:"overallRisk"`
	Score       int      `json:"score"`
	Factors     []string `json:"factors"`
}

// DocumentAnalysis is the full analysis produced for an uploaded document.
type DocumentAnalysis struct {
	RedFlags            []RedFlag         `json:"redFlags"`
	ClauseTags          []ClauseTag       `json:"clauseTags"`
	StatuteLinks        []StatuteLink     `json:"statuteLinks"`
	RiskAssessment      RiskAssessment    `json:"riskAssessment"`
	SimplifiedSummary   string            `json:"simplifiedSummary"`
	MultilingualSummary map[string]string `json:"multilingualSummary"`
	Recommendations     []string          `json:"recommendations"`
}

type Simplification struct {
	SimplifiedText string `json:"simplifiedText"`
}

type RedFlagReport struct {
	RedFlags []RedFlag `json:"redFlags"`
}

type ClauseTagReport struct {
	ClauseTags []ClauseTag `json:"clauseTags"`
	Summary    string      `json:"summary"`
}

type StatuteLinkReport struct {
	StatuteLinks []StatuteLink `json:"statuteLinks"`
	Summary      string        `json:"summary"`
}

// MultilingualSummary keys every map by target language name.
type MultilingualSummary struct {
	Summaries map[string]string   `json:"summaries"`
	KeyPoints map[string][]string `json:"keyPoints"`
	Warnings  map[string][]string `json:"warnings"`
}

type Translation struct {
	TranslatedText string `json:"translatedText"`
}

// BailDocument is the ten-field structured record extracted from a bail
// order or bail application.
type BailDocument struct {
	DocumentType           string            `json:"documentType"`
	DefendantInfo          map[string]string `json:"defendantInfo"`
	BailAmount             string            `json:"bailAmount"`
	SuretyInfo             map[string]string `json:"suretyInfo"`
	CourtInfo              map[string]string `json:"courtInfo"`
	Dates                  map[string]string `json:"dates"`
	Conditions             []string          `json:"conditions"`
	RiskAssessment         string            `json:"riskAssessment"`
	ComplianceRequirements []string          `json:"complianceRequirements"`
	NextSteps              []string          `json:"nextSteps"`
	// ExtractedText carries the raw model answer when structured
	// extraction degraded to a fallback.
	ExtractedText string `json:"extractedText,omitempty"`
}

type Advice struct {
	Advice string `json:"advice"`
}

type VoiceReply struct {
	Response string `json:"response"`
}

// AnalysisResult is the tagged union over per-task result records. Exactly
// one payload pointer is set, matching Task. Degraded marks results
// synthesized by the fallback path; the payload shape is identical either
// way, so callers never branch on it.
type AnalysisResult struct {
	Task     AnalysisTask `json:"-"`
	Degraded bool         `json:"-"`

	DocumentAnalysis    *DocumentAnalysis    `json:"-"`
	Simplification      *Simplification      `json:"-"`
	RedFlagReport       *RedFlagReport       `json:"-"`
	ClauseTagReport     *ClauseTagReport     `json:"-"`
	StatuteLinkReport   *StatuteLinkReport   `json:"-"`
	MultilingualSummary *MultilingualSummary `json:"-"`
	Translation         *Translation         `json:"-"`
	BailDocument        *BailDocument        `json:"-"`
	Advice              *Advice              `json:"-"`
	VoiceReply          *VoiceReply          `json:"-"`
}

// Payload returns the populated variant for serialization.
func (r AnalysisResult) Payload() any {
	switch r.Task {
	case TaskDocumentAnalysis:
		return r.DocumentAnalysis
	case TaskSimplify:
		return r.Simplification
	case TaskRedFlagDetection:
		return r.RedFlagReport
	case TaskClauseTagging:
		return r.ClauseTagReport
	case TaskStatuteLinking:
		return r.StatuteLinkReport
	case TaskMultilingualSimplify:
		return r.MultilingualSummary
	case TaskTranslate:
		return r.Translation
	case TaskBailExtraction:
		return r.BailDocument
	case TaskLegalAdvice:
		return r.Advice
	case TaskVoiceResponse:
		return r.VoiceReply
	default:
		return nil
	}
}

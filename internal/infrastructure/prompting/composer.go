package prompting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

// Composer builds the full model instruction for each analysis task:
// the analytical objective, the exact JSON output skeleton the validator
// later checks against, and the source text verbatim. It is deterministic,
// so tests can assert on composed prompts byte for byte. Truncation is the
// gateway's token-budget concern, never the composer's.
type Composer struct{}

func New() *Composer {
	return &Composer{}
}

func (c *Composer) Compose(task domain.AnalysisTask, text string, params domain.TaskParams) (string, error) {
	switch task {
	case domain.TaskDocumentAnalysis:
		return documentAnalysisPrompt(text, params.Language), nil
	case domain.TaskSimplify:
		return simplifyPrompt(text, params.Language), nil
	case domain.TaskRedFlagDetection:
		return redFlagPrompt(text), nil
	case domain.TaskClauseTagging:
		return clauseTaggingPrompt(text), nil
	case domain.TaskStatuteLinking:
		return statuteLinkingPrompt(text), nil
	case domain.TaskMultilingualSimplify:
		return multilingualPrompt(text, targetLanguages(params)), nil
	case domain.TaskTranslate:
		if strings.TrimSpace(params.TargetLanguage) == "" {
			return "", domain.WrapError(domain.ErrInvalidInput, "compose translate prompt",
				errors.New("target language is required"))
		}
		return translatePrompt(text, params.TargetLanguage), nil
	case domain.TaskBailExtraction:
		return bailExtractionPrompt(text), nil
	case domain.TaskLegalAdvice:
		return legalAdvicePrompt(text, params.Context), nil
	case domain.TaskVoiceResponse:
		return voiceResponsePrompt(text, params.Context), nil
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "compose prompt",
			fmt.Errorf("unknown task %q", task))
	}
}

func targetLanguages(params domain.TaskParams) []string {
	if len(params.Languages) > 0 {
		return params.Languages
	}
	return domain.DefaultLanguages
}

const jsonOnlyRule = "Return ONLY a JSON value exactly matching the structure below. No markdown, no commentary, no extra keys."

func documentAnalysisPrompt(text, language string) string {
	langNote := "english"
	if strings.TrimSpace(language) != "" {
		langNote = strings.ToLower(strings.TrimSpace(language))
	}
	return fmt.Sprintf(`You are a legal document analyst. Analyze the document below: detect high-risk clauses, categorize every clause, link the text to applicable statutes, assess overall risk, and write a plain-language summary in %s.
%s

%s

Document:
%s`, langNote, jsonOnlyRule, documentAnalysisSkeleton, text)
}

func simplifyPrompt(text, language string) string {
	langNote := "english"
	if strings.TrimSpace(language) != "" {
		langNote = strings.ToLower(strings.TrimSpace(language))
	}
	return fmt.Sprintf(`You are a legal document simplifier. Rewrite the document below in plain %s a non-lawyer can understand, preserving every obligation, deadline and amount.
%s

%s

Document:
%s`, langNote, jsonOnlyRule, simplifySkeleton, text)
}

func redFlagPrompt(text string) string {
	return fmt.Sprintf(`You are a legal risk reviewer. Detect high-risk clauses in the document below: excessive penalties, binding arbitration, unilateral termination, liability waivers, automatic renewals, and similar traps for the signer.
%s

%s

Document:
%s`, jsonOnlyRule, redFlagSkeleton, text)
}

func clauseTaggingPrompt(text string) string {
	return fmt.Sprintf(`You are a contract clause classifier. Tag every clause in the document below with a domain category such as termination, liability, payment, confidentiality, dispute_resolution, indemnification or renewal, and explain each tag briefly.
%s

%s

Document:
%s`, jsonOnlyRule, clauseTagSkeleton, text)
}

func statuteLinkingPrompt(text string) string {
	return fmt.Sprintf(`You are a legal research assistant. Link the document below to the specific statutes, acts and sections that govern its subject matter, and state why each applies.
%s

%s

Document:
%s`, jsonOnlyRule, statuteLinkSkeleton, text)
}

func multilingualPrompt(text string, languages []string) string {
	return fmt.Sprintf(`You are a legal document simplifier. Summarize the document below in each of these languages: %s. For every language give a plain-language summary, the key points, and any warnings the signer must know.
%s

%s

Document:
%s`, strings.Join(languages, ", "), jsonOnlyRule, multilingualSkeleton(languages), text)
}

func translatePrompt(text, targetLanguage string) string {
	return fmt.Sprintf(`You are a legal translator. Translate the text below into %s, keeping legal terms precise and the meaning unchanged.
%s

%s

Text:
%s`, strings.ToLower(strings.TrimSpace(targetLanguage)), jsonOnlyRule, translateSkeleton, text)
}

func bailExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are a bail document processor. Extract the structured record below from the bail order or bail application. Every one of the ten fields is required; use empty values where the document is silent.
%s

%s

Document:
%s`, jsonOnlyRule, bailSkeleton, text)
}

func legalAdvicePrompt(question, contextNote string) string {
	var ctxSection string
	if strings.TrimSpace(contextNote) != "" {
		ctxSection = "\nBackground provided by the user:\n" + contextNote + "\n"
	}
	return fmt.Sprintf(`You are a legal information assistant. Answer the question below with general legal information, practical next steps, and a reminder that this is not a substitute for a licensed lawyer.
%s

%s
%s
Question:
%s`, jsonOnlyRule, adviceSkeleton, ctxSection, question)
}

func voiceResponsePrompt(message, contextNote string) string {
	var ctxSection string
	if strings.TrimSpace(contextNote) != "" {
		ctxSection = "\nConversation context:\n" + contextNote + "\n"
	}
	return fmt.Sprintf(`You are a voice legal assistant. Reply to the message below in short, speakable sentences without lists, tables or markup.
%s

%s
%s
Message:
%s`, jsonOnlyRule, voiceSkeleton, ctxSection, message)
}

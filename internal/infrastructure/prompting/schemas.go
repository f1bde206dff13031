package prompting

import (
	"fmt"
	"strings"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

// The skeletons below are embedded verbatim in the prompts; SchemaFor
// returns the matching JSON-Schema document the validator enforces. Keep
// the two in lockstep: the skeleton is the model-facing rendering of the
// schema, not a separate contract.

const severityEnum = `"high" | "medium" | "low"`

var redFlagItemSkeleton = fmt.Sprintf(`{"type": "string", "severity": %s, "description": "string", "location": "string", "recommendation": "string"}`, severityEnum)

var documentAnalysisSkeleton = fmt.Sprintf(`{
  "redFlags": [%s],
  "clauseTags": [{"clause": "string", "category": "string", "explanation": "string", "riskLevel": %s}],
  "statuteLinks": [{"statute": "string", "section": "string", "description": "string", "relevance": "string"}],
  "riskAssessment": {"overallRisk": %s, "score": 0, "factors": ["string"]},
  "simplifiedSummary": "string",
  "multilingualSummary": {"<language>": "string"},
  "recommendations": ["string"]
}`, redFlagItemSkeleton, severityEnum, severityEnum)

const simplifySkeleton = `{"simplifiedText": "string"}`

var redFlagSkeleton = fmt.Sprintf(`{"redFlags": [%s]}`, redFlagItemSkeleton)

var clauseTagSkeleton = fmt.Sprintf(`{
  "clauseTags": [{"clause": "string", "category": "string", "explanation": "string", "riskLevel": %s}],
  "summary": "string"
}`, severityEnum)

const statuteLinkSkeleton = `{
  "statuteLinks": [{"statute": "string", "section": "string", "description": "string", "relevance": "string"}],
  "summary": "string"
}`

func multilingualSkeleton(languages []string) string {
	summaries := make([]string, 0, len(languages))
	lists := make([]string, 0, len(languages))
	for _, lang := range languages {
		key := fmt.Sprintf("%q", strings.ToLower(strings.TrimSpace(lang)))
		summaries = append(summaries, key+`: "string"`)
		lists = append(lists, key+`: ["string"]`)
	}
	return fmt.Sprintf(`{
  "summaries": {%s},
  "keyPoints": {%s},
  "warnings": {%s}
}`, strings.Join(summaries, ", "), strings.Join(lists, ", "), strings.Join(lists, ", "))
}

const translateSkeleton = `{"translatedText": "string"}`

const bailSkeleton = `{
  "documentType": "string",
  "defendantInfo": {"name": "string", "age": "string", "address": "string"},
  "bailAmount": "string",
  "suretyInfo": {"name": "string", "relationship": "string"},
  "courtInfo": {"name": "string", "judge": "string", "caseNumber": "string"},
  "dates": {"orderDate": "string", "hearingDate": "string"},
  "conditions": ["string"],
  "riskAssessment": "string",
  "complianceRequirements": ["string"],
  "nextSteps": ["string"]
}`

const adviceSkeleton = `{"advice": "string"}`

const voiceSkeleton = `{"response": "string"}`

// SchemaFor returns the JSON-Schema document for the task's canonical
// result shape. Multilingual schemas require the requested language keys.
func SchemaFor(task domain.AnalysisTask, params domain.TaskParams) map[string]any {
	switch task {
	case domain.TaskDocumentAnalysis:
		return objectSchema(map[string]any{
			"redFlags":            arraySchema(redFlagItemSchema()),
			"clauseTags":          arraySchema(clauseTagItemSchema()),
			"statuteLinks":        arraySchema(statuteLinkItemSchema()),
			"riskAssessment":      riskAssessmentSchema(),
			"simplifiedSummary":   stringSchema(),
			"multilingualSummary": map[string]any{"type": "object"},
			"recommendations":     arraySchema(stringSchema()),
		}, "redFlags", "riskAssessment", "simplifiedSummary")
	case domain.TaskSimplify:
		return objectSchema(map[string]any{
			"simplifiedText": stringSchema(),
		}, "simplifiedText")
	case domain.TaskRedFlagDetection:
		return objectSchema(map[string]any{
			"redFlags": arraySchema(redFlagItemSchema()),
		}, "redFlags")
	case domain.TaskClauseTagging:
		return objectSchema(map[string]any{
			"clauseTags": arraySchema(clauseTagItemSchema()),
			"summary":    stringSchema(),
		}, "clauseTags")
	case domain.TaskStatuteLinking:
		return objectSchema(map[string]any{
			"statuteLinks": arraySchema(statuteLinkItemSchema()),
			"summary":      stringSchema(),
		}, "statuteLinks")
	case domain.TaskMultilingualSimplify:
		languages := params.Languages
		if len(languages) == 0 {
			languages = domain.DefaultLanguages
		}
		return objectSchema(map[string]any{
			"summaries": languageMapSchema(languages, stringSchema()),
			"keyPoints": languageMapSchema(languages, arraySchema(stringSchema())),
			"warnings":  languageMapSchema(languages, arraySchema(stringSchema())),
		}, "summaries")
	case domain.TaskTranslate:
		return objectSchema(map[string]any{
			"translatedText": stringSchema(),
		}, "translatedText")
	case domain.TaskBailExtraction:
		return objectSchema(map[string]any{
			"documentType":           stringSchema(),
			"defendantInfo":          stringMapSchema(),
			"bailAmount":             stringSchema(),
			"suretyInfo":             stringMapSchema(),
			"courtInfo":              stringMapSchema(),
			"dates":                  stringMapSchema(),
			"conditions":             arraySchema(stringSchema()),
			"riskAssessment":         stringSchema(),
			"complianceRequirements": arraySchema(stringSchema()),
			"nextSteps":              arraySchema(stringSchema()),
			"extractedText":          stringSchema(),
		}, "documentType")
	case domain.TaskLegalAdvice:
		return objectSchema(map[string]any{
			"advice": stringSchema(),
		}, "advice")
	case domain.TaskVoiceResponse:
		return objectSchema(map[string]any{
			"response": stringSchema(),
		}, "response")
	default:
		return map[string]any{"type": "object"}
	}
}

func severitySchema() map[string]any {
	return map[string]any{
		"type": "string",
		"enum": []string{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow},
	}
}

func redFlagItemSchema() map[string]any {
	return objectSchema(map[string]any{
		"type":           stringSchema(),
		"severity":       severitySchema(),
		"description":    stringSchema(),
		"location":       stringSchema(),
		"recommendation": stringSchema(),
	}, "type", "severity", "description")
}

func clauseTagItemSchema() map[string]any {
	return objectSchema(map[string]any{
		"clause":      stringSchema(),
		"category":    stringSchema(),
		"explanation": stringSchema(),
		"riskLevel":   severitySchema(),
	}, "category")
}

func statuteLinkItemSchema() map[string]any {
	return objectSchema(map[string]any{
		"statute":     stringSchema(),
		"section":     stringSchema(),
		"description": stringSchema(),
		"relevance":   stringSchema(),
	}, "statute")
}

func riskAssessmentSchema() map[string]any {
	return objectSchema(map[string]any{
		"overallRisk": severitySchema(),
		"score":       map[string]any{"type": "number"},
		"factors":     arraySchema(stringSchema()),
	}, "overallRisk")
}

func languageMapSchema(languages []string, valueSchema map[string]any) map[string]any {
	props := make(map[string]any, len(languages))
	required := make([]string, 0, len(languages))
	for _, lang := range languages {
		key := strings.ToLower(strings.TrimSpace(lang))
		props[key] = valueSchema
		required = append(required, key)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func stringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func stringMapSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
}

func arraySchema(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/core/ports"
	"github.com/anishqd/lexiscan/internal/observability/metrics"
)

const apiPrefix = "/api/v1/legal"

// Router exposes the legal-analysis endpoints. All handlers funnel into
// the same analyzer; they differ only in how the request body maps onto
// an analysis task and its parameters.
type Router struct {
	analyzer       ports.DocumentAnalyzer
	health         ports.ServiceHealth
	metrics        *metrics.HTTPMetrics
	maxUploadBytes int64
}

func NewRouter(
	analyzer ports.DocumentAnalyzer,
	health ports.ServiceHealth,
	httpMetrics *metrics.HTTPMetrics,
	maxUploadBytes int64,
) *Router {
	return &Router{
		analyzer:       analyzer,
		health:         health,
		metrics:        httpMetrics,
		maxUploadBytes: maxUploadBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(apiPrefix+"/analyze-document", rt.analyzeDocument)
	mux.HandleFunc(apiPrefix+"/simplify", rt.simplify)
	mux.HandleFunc(apiPrefix+"/detect-red-flags", rt.detectRedFlags)
	mux.HandleFunc(apiPrefix+"/tag-clauses", rt.tagClauses)
	mux.HandleFunc(apiPrefix+"/link-statutes", rt.linkStatutes)
	mux.HandleFunc(apiPrefix+"/multilingual-simplify", rt.multilingualSimplify)
	mux.HandleFunc(apiPrefix+"/translate", rt.translate)
	mux.HandleFunc(apiPrefix+"/process-bail-document", rt.processBailDocument)
	mux.HandleFunc(apiPrefix+"/legal-advice", rt.legalAdvice)
	mux.HandleFunc(apiPrefix+"/voice-assistant", rt.voiceAssistant)
	mux.HandleFunc(apiPrefix+"/health", rt.healthz)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"services": rt.health.Health(r.Context()),
	})
}

// analyzeDocument accepts either a multipart file upload or a JSON body
// with inline text.
func (rt *Router) analyzeDocument(w http.ResponseWriter, r *http.Request) {
	rt.documentOrText(w, r, domain.TaskDocumentAnalysis)
}

func (rt *Router) processBailDocument(w http.ResponseWriter, r *http.Request) {
	rt.documentOrText(w, r, domain.TaskBailExtraction)
}

func (rt *Router) documentOrText(w http.ResponseWriter, r *http.Request, task domain.AnalysisTask) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	input := domain.AnalysisInput{}
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		doc, params, ok := rt.readUpload(w, r)
		if !ok {
			return
		}
		input.Document = doc
		input.Params = params
	default:
		var req struct {
			Text     string `json:"text"`
			Language string `json:"language"`
		}
		if !decodeJSONBody(w, r, &req) {
			return
		}
		input.Text = req.Text
		input.Params.Language = req.Language
	}

	rt.runAnalysis(w, r, task, input)
}

func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (*domain.SourceDocument, domain.TaskParams, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	if err := r.ParseMultipartForm(rt.maxUploadBytes); err != nil {
		status := http.StatusBadRequest
		msg := "invalid multipart body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
			msg = "uploaded file exceeds the size limit"
		}
		writeJSON(w, status, errorBody(msg))
		return nil, domain.TaskParams{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("multipart field 'file' is required"))
		return nil, domain.TaskParams{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("could not read uploaded file"))
		return nil, domain.TaskParams{}, false
	}

	doc := &domain.SourceDocument{
		Bytes:    data,
		MIMEType: header.Header.Get("Content-Type"),
		Filename: header.Filename,
	}
	params := domain.TaskParams{Language: r.FormValue("language")}
	return doc, params, true
}

func (rt *Router) simplify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskSimplify, domain.AnalysisInput{
		Text:   req.Text,
		Params: domain.TaskParams{Language: req.Language},
	})
}

func (rt *Router) detectRedFlags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskRedFlagDetection, domain.AnalysisInput{Text: req.Text})
}

func (rt *Router) tagClauses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskClauseTagging, domain.AnalysisInput{Text: req.Text})
}

func (rt *Router) linkStatutes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskStatuteLinking, domain.AnalysisInput{Text: req.Text})
}

func (rt *Router) multilingualSimplify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string   `json:"text"`
		Languages []string `json:"languages"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskMultilingualSimplify, domain.AnalysisInput{
		Text:   req.Text,
		Params: domain.TaskParams{Languages: req.Languages},
	})
}

func (rt *Router) translate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskTranslate, domain.AnalysisInput{
		Text:   req.Text,
		Params: domain.TaskParams{TargetLanguage: req.TargetLanguage},
	})
}

func (rt *Router) legalAdvice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskLegalAdvice, domain.AnalysisInput{
		Text:   req.Question,
		Params: domain.TaskParams{Context: req.Context},
	})
}

func (rt *Router) voiceAssistant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
		Context string `json:"context"`
	}
	if !rt.postJSONBody(w, r, &req) {
		return
	}
	rt.runAnalysis(w, r, domain.TaskVoiceResponse, domain.AnalysisInput{
		Text:   req.Message,
		Params: domain.TaskParams{Context: req.Context},
	})
}

func (rt *Router) runAnalysis(w http.ResponseWriter, r *http.Request, task domain.AnalysisTask, input domain.AnalysisInput) {
	result, err := rt.analyzer.Analyze(r.Context(), task, input)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.ObserveAnalysis(string(task), result.Degraded)
	}
	writeJSON(w, http.StatusOK, result.Payload())
}

func (rt *Router) postJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return false
	}
	return decodeJSONBody(w, r, dst)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json body"))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

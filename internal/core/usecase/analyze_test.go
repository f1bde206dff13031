package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

type extractorStub struct {
	text string
	err  error
}

func (s extractorStub) Extract(context.Context, *domain.SourceDocument) (string, error) {
	return s.text, s.err
}

type composerStub struct{}

func (composerStub) Compose(task domain.AnalysisTask, text string, _ domain.TaskParams) (string, error) {
	return fmt.Sprintf("task=%s text=%s", task, text), nil
}

type gatewayStub struct {
	mu      sync.Mutex
	calls   atomic.Int32
	prompts []string
	raw     string
	err     error
}

func (s *gatewayStub) Generate(_ context.Context, req domain.ModelRequest) (string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.prompts = append(s.prompts, req.Prompt)
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if s.raw != "" {
		return s.raw, nil
	}
	// echo enough of the prompt back to detect cross-request leaks
	return fmt.Sprintf(`{"simplifiedText":%q}`, req.Prompt), nil
}

type validatorStub struct{}

func (validatorStub) Validate(task domain.AnalysisTask, raw string, _ domain.TaskParams) domain.AnalysisResult {
	return domain.AnalysisResult{
		Task:           task,
		Simplification: &domain.Simplification{SimplifiedText: raw},
		RedFlagReport:  &domain.RedFlagReport{},
	}
}

func newUseCase(gw *gatewayStub, ext extractorStub) *AnalyzeUseCase {
	return NewAnalyzeUseCase(ext, composerStub{}, gw, validatorStub{}, func() bool { return true })
}

func TestAnalyzeRejectsEmptyInputWithoutModelCall(t *testing.T) {
	gw := &gatewayStub{}
	uc := newUseCase(gw, extractorStub{})

	_, err := uc.Analyze(context.Background(), domain.TaskSimplify, domain.AnalysisInput{Text: "   "})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gw.calls.Load() != 0 {
		t.Fatalf("model must not be called for invalid input")
	}
}

func TestAnalyzeRejectsTranslateWithoutTargetLanguage(t *testing.T) {
	gw := &gatewayStub{}
	uc := newUseCase(gw, extractorStub{})

	_, err := uc.Analyze(context.Background(), domain.TaskTranslate, domain.AnalysisInput{Text: "hello"})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gw.calls.Load() != 0 {
		t.Fatalf("model must not be called when required params are missing")
	}
}

func TestAnalyzeRejectsUnknownTask(t *testing.T) {
	gw := &gatewayStub{}
	uc := newUseCase(gw, extractorStub{})

	_, err := uc.Analyze(context.Background(), domain.AnalysisTask("made_up"), domain.AnalysisInput{Text: "x"})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAnalyzeUsesExtractedTextForUploads(t *testing.T) {
	gw := &gatewayStub{}
	uc := newUseCase(gw, extractorStub{text: "EXTRACTED BODY"})

	_, err := uc.Analyze(context.Background(), domain.TaskSimplify, domain.AnalysisInput{
		Document: &domain.SourceDocument{Bytes: []byte("x"), MIMEType: "text/plain"},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(gw.prompts) != 1 || !strings.Contains(gw.prompts[0], "EXTRACTED BODY") {
		t.Fatalf("prompt does not embed extracted text: %v", gw.prompts)
	}
}

func TestAnalyzeSurfacesExtractionFailure(t *testing.T) {
	gw := &gatewayStub{}
	uc := newUseCase(gw, extractorStub{
		err: domain.WrapError(domain.ErrExtraction, "extract pdf text", errors.New("broken xref")),
	})

	_, err := uc.Analyze(context.Background(), domain.TaskDocumentAnalysis, domain.AnalysisInput{
		Document: &domain.SourceDocument{Bytes: []byte("x"), MIMEType: "application/pdf"},
	})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if gw.calls.Load() != 0 {
		t.Fatalf("model must not be called when extraction failed")
	}
}

func TestAnalyzeSurfacesGatewayFailureKinds(t *testing.T) {
	kinds := []error{domain.ErrModelUnavailable, domain.ErrModelTimeout, domain.ErrModelTransport}
	for _, kind := range kinds {
		gw := &gatewayStub{err: domain.WrapError(kind, "generate", errors.New("boom"))}
		uc := newUseCase(gw, extractorStub{})

		_, err := uc.Analyze(context.Background(), domain.TaskLegalAdvice, domain.AnalysisInput{Text: "q"})
		if !domain.IsKind(err, kind) {
			t.Fatalf("expected %v to surface, got %v", kind, err)
		}
	}
}

func TestAnalyzeReturnsValidatedResult(t *testing.T) {
	gw := &gatewayStub{raw: `{"simplifiedText":"short version"}`}
	uc := newUseCase(gw, extractorStub{})

	result, err := uc.Analyze(context.Background(), domain.TaskSimplify, domain.AnalysisInput{Text: "long version"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Simplification.SimplifiedText != `{"simplifiedText":"short version"}` {
		t.Fatalf("validator output not returned: %+v", result)
	}
}

func TestAnalyzeConcurrentRequestsStayIndependent(t *testing.T) {
	gw := &gatewayStub{}
	uc := newUseCase(gw, extractorStub{})

	const workers = 16
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("document-%d", i)
			res, err := uc.Analyze(context.Background(), domain.TaskSimplify, domain.AnalysisInput{Text: text})
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			results[i] = res.Simplification.SimplifiedText
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		want := fmt.Sprintf("document-%d", i)
		if !strings.Contains(got, want) {
			t.Fatalf("worker %d result %q does not carry its own text", i, got)
		}
		for j, other := range results {
			if i != j && got == other {
				t.Fatalf("workers %d and %d produced identical results: state leaked", i, j)
			}
		}
	}
}

func TestHealthReportsModelState(t *testing.T) {
	uc := NewAnalyzeUseCase(extractorStub{}, composerStub{}, &gatewayStub{}, validatorStub{}, func() bool { return false })
	health := uc.Health(context.Background())
	if health["model"] != "unconfigured" {
		t.Fatalf("expected unconfigured model, got %q", health["model"])
	}
	if health["extractor"] != "ok" {
		t.Fatalf("expected extractor ok, got %q", health["extractor"])
	}
}

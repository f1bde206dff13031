package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

func candidateBody(text string) string {
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestGenerateSendsPromptAndGenerationConfig(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/test-model:generateContent") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("x-goog-api-key") != "secret" {
			http.Error(w, "missing key", http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(candidateBody(`{"advice":"ok"}`)))
	}))
	defer server.Close()

	client := New(server.URL, "test-model", "secret")
	raw, err := client.Generate(context.Background(), domain.ModelRequest{
		Prompt:      "analyze this",
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if raw != `{"advice":"ok"}` {
		t.Fatalf("unexpected response text: %q", raw)
	}
	if len(captured.Contents) != 1 || captured.Contents[0].Parts[0].Text != "analyze this" {
		t.Fatalf("prompt not forwarded: %+v", captured)
	}
	if captured.GenerationConfig.MaxOutputTokens != 1500 || captured.GenerationConfig.Temperature != 0.7 {
		t.Fatalf("generation config not forwarded: %+v", captured.GenerationConfig)
	}
}

func TestGenerateWithoutKeyIsModelUnavailable(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := New(server.URL, "test-model", "")
	_, err := client.Generate(context.Background(), domain.ModelRequest{Prompt: "p"})
	if !domain.IsKind(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected model unavailable, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("no HTTP call must be made without credentials")
	}
}

func TestGenerateClassifiesHTTPFailureAsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "test-model", "secret")
	_, err := client.Generate(context.Background(), domain.ModelRequest{Prompt: "p"})
	if !domain.IsKind(err, domain.ErrModelTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "backend exploded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestGenerateClassifiesSlowModelAsTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	client := New(server.URL, "test-model", "secret", WithTimeout(50*time.Millisecond))
	_, err := client.Generate(context.Background(), domain.ModelRequest{Prompt: "p"})
	if !domain.IsKind(err, domain.ErrModelTimeout) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestGeneratePropagatesCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	client := New(server.URL, "test-model", "secret")
	_, err := client.Generate(ctx, domain.ModelRequest{Prompt: "p"})
	if err == nil || !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Fatalf("expected caller cancellation to propagate, got %v", err)
	}
	if domain.IsKind(err, domain.ErrModelTimeout) {
		t.Fatalf("caller abort must not be classified as model timeout")
	}
}

func TestGenerateEmptyCandidatesIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-model", "secret")
	_, err := client.Generate(context.Background(), domain.ModelRequest{Prompt: "p"})
	if !domain.IsKind(err, domain.ErrModelTransport) {
		t.Fatalf("expected transport error for empty candidates, got %v", err)
	}
}

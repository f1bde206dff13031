package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

// Client is the sole integration point with the generative model. Every
// Generate is one independent external call: no conversation state, no
// internal retry. Retries are the orchestrator's explicit policy.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

type Option func(*Client)

// WithTimeout sets the per-call deadline. The model endpoint is
// network-bound and may hang; a deadline is always enforced.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRPS caps outbound calls per second toward the model endpoint.
func WithRPS(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func New(baseURL, model, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  strings.TrimSpace(apiKey),
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{Timeout: c.timeout}
	return c
}

// Configured reports whether a model credential is present. Without one
// every Generate fails with ErrModelUnavailable and callers should treat
// AI features as disabled.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, req domain.ModelRequest) (string, error) {
	if !c.Configured() {
		return "", domain.WrapError(domain.ErrModelUnavailable, "generate",
			errors.New("no API key configured"))
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", classifyCallError(ctx, "generate", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	var response generateResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	if err := c.postJSON(callCtx, path, payload, &response); err != nil {
		return "", classifyCallError(ctx, "generate", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", domain.WrapError(domain.ErrModelTransport, "generate",
			errors.New("empty candidate list in model response"))
	}

	var sb strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// classifyCallError maps transport failures onto the gateway's error
// taxonomy. A deadline hit inside the call is a model timeout; a caller
// abort propagates as-is so nothing upstream retries it.
func classifyCallError(parent context.Context, operation string, err error) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return domain.WrapError(domain.ErrModelTimeout, operation, err)
	}
	return domain.WrapError(domain.ErrModelTransport, operation, err)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

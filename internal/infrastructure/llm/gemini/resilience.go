package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/infrastructure/resilience"
)

// ClassifyError feeds the orchestrator's retry/breaker policy. Missing
// credentials and caller aborts are neither retried nor counted against
// the breaker; timeouts and transport failures are safe to retry because
// a model call has no side effects.
func ClassifyError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if domain.IsKind(err, domain.ErrModelUnavailable) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) && !retryableHTTPStatus(statusErr.StatusCode) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	if domain.IsKind(err, domain.ErrModelTimeout) || domain.IsKind(err, domain.ErrModelTransport) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func retryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func classifyForTest(retryable error) ErrorClassifier {
	return func(err error) ErrorClassification {
		return ErrorClassification{
			Retryable:     errors.Is(err, retryable),
			RecordFailure: true,
		}
	}
}

func TestExecuteRetriesTransientModelFailure(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})

	attempts := 0
	errTransport := errors.New("model transport failure")
	err := exec.Execute(context.Background(), "model_generate", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransport
		}
		return nil
	}, classifyForTest(errTransport))
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteStopsAtMaxAttempts(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})

	attempts := 0
	errTransport := errors.New("model transport failure")
	err := exec.Execute(context.Background(), "model_generate", func(context.Context) error {
		attempts++
		return errTransport
	}, classifyForTest(errTransport))
	if !errors.Is(err, errTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestExecuteDoesNotRetryNonRetryableFailure(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})

	attempts := 0
	errBadRequest := errors.New("model rejected prompt")
	err := exec.Execute(context.Background(), "model_generate", func(context.Context) error {
		attempts++
		return errBadRequest
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	})
	if !errors.Is(err, errBadRequest) {
		t.Fatalf("expected rejection error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteStopsRetryingOnCancel(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    5,
		RetryInitialBackoff: 50 * time.Millisecond,
		RetryMaxBackoff:     100 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	errTransport := errors.New("model transport failure")
	err := exec.Execute(ctx, "model_generate", func(context.Context) error {
		attempts++
		cancel()
		return errTransport
	}, classifyForTest(errTransport))
	if !errors.Is(err, errTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("cancellation must stop the retry loop, got %d attempts", attempts)
	}
}

func TestExecuteOpensCircuitAfterRepeatedFailures(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errTransport := errors.New("model transport failure")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "model_generate", func(context.Context) error {
			return errTransport
		}, classifier)
		if !errors.Is(err, errTransport) {
			t.Fatalf("expected transport error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "model_generate", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call the model")
		return nil
	}, classifier)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

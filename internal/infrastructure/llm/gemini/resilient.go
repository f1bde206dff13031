package gemini

import (
	"context"
	"time"

	"github.com/anishqd/lexiscan/internal/core/domain"
	"github.com/anishqd/lexiscan/internal/core/ports"
	"github.com/anishqd/lexiscan/internal/infrastructure/resilience"
)

// Resilient decorates a gateway with the retry/breaker executor. The inner
// gateway stays strictly single-call; repeats happen here, where they are
// an explicit, logged policy. Model calls have no side effects, so a
// repeat is always safe.
type Resilient struct {
	inner    ports.ModelGateway
	executor *resilience.Executor
	observer func(outcome string, duration time.Duration)
}

type ResilientOption func(*Resilient)

// WithCallObserver registers a callback invoked once per Generate with the
// overall outcome, retries included.
func WithCallObserver(observer func(outcome string, duration time.Duration)) ResilientOption {
	return func(r *Resilient) {
		r.observer = observer
	}
}

func NewResilient(inner ports.ModelGateway, executor *resilience.Executor, opts ...ResilientOption) *Resilient {
	r := &Resilient{inner: inner, executor: executor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resilient) Generate(ctx context.Context, req domain.ModelRequest) (string, error) {
	start := time.Now()
	var out string
	err := r.executor.Execute(ctx, "model_generate", func(callCtx context.Context) error {
		raw, callErr := r.inner.Generate(callCtx, req)
		if callErr != nil {
			return callErr
		}
		out = raw
		return nil
	}, ClassifyError)
	if err != nil && resilience.IsCircuitOpen(err) {
		err = domain.WrapError(domain.ErrTemporary, "model_generate", err)
	}
	if r.observer != nil {
		r.observer(callOutcome(err), time.Since(start))
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func callOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsKind(err, domain.ErrModelTimeout):
		return "timeout"
	case domain.IsKind(err, domain.ErrModelTransport):
		return "transport"
	case domain.IsKind(err, domain.ErrModelUnavailable):
		return "unavailable"
	case domain.IsKind(err, domain.ErrTemporary):
		return "circuit_open"
	default:
		return "error"
	}
}

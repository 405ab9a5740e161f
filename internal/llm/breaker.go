package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/metrics"
	"github.com/sony/gobreaker/v2"
)

// BreakerProvider stops calling a provider that keeps failing and fails
// fast with ErrCircuitOpen until the open timeout elapses.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[*Response]
}

// WithBreaker wraps p in a circuit breaker. A zero MinRequests returns p
// unchanged.
func WithBreaker(p Provider, cfg BreakerConfig) Provider {
	if cfg.MinRequests == 0 {
		return p
	}
	name := p.ModelID()
	metrics.LLMBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("model", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("llm circuit breaker state change")
			metrics.LLMBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	return &BreakerProvider{inner: p, cb: cb}
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := b.cb.Execute(func() (*Response, error) {
		return b.inner.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, b.inner.ModelID())
	}
	return resp, err
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}

// State is the breaker's current state.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

type summarizer interface {
	Summarize(ctx context.Context, title, year string) (string, error)
}

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient shields the summary provider behind a circuit breaker.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped summarizer
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped summarizer) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Summarize(ctx context.Context, title, year string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Summarize(ctx, title, year)
	})
	if err != nil {
		return "", fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	res, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}

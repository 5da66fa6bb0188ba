package cache

import (
	"context"
	"time"
)

type cache[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

type metricsCollector interface {
	ObserveLatency(operation string, duration time.Duration)
	IncrementCounter(operation string, labels ...string)
}

type MetricsDecorator[T any] struct {
	next      cache[T]
	collector metricsCollector
}

func NewMetricsDecorator[T any](next cache[T], collector metricsCollector) *MetricsDecorator[T] {
	return &MetricsDecorator[T]{next: next, collector: collector}
}

func (m *MetricsDecorator[T]) Set(ctx context.Context, key string, value T) error {
	start := time.Now()
	err := m.next.Set(ctx, key, value)
	m.collector.ObserveLatency("cache_set", time.Since(start))
	if err != nil {
		m.collector.IncrementCounter("cache_set", "error")
	} else {
		m.collector.IncrementCounter("cache_set", "ok")
	}
	return err
}

//nolint:ireturn
func (m *MetricsDecorator[T]) Get(ctx context.Context, key string) (T, error) {
	start := time.Now()
	value, err := m.next.Get(ctx, key)
	m.collector.ObserveLatency("cache_get", time.Since(start))
	if err != nil {
		m.collector.IncrementCounter("cache_get", "miss")
	} else {
		m.collector.IncrementCounter("cache_get", "hit")
	}
	return value, err
}

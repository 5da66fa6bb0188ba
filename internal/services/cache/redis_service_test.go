package cache_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redisv9.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRedisClient_SetGet(t *testing.T) {
	client := cache.NewRedisClient[models.MovieSummary](
		newTestClient(t), discardLogger(), time.Minute)
	ctx := context.Background()

	want := models.MovieSummary{
		Title:   "Inception",
		Year:    "2010",
		Genres:  "Action, Sci-Fi",
		Summary: "A thief steals secrets through dreams.",
	}

	require.NoError(t, client.Set(ctx, "summary:inception", want))

	got, err := client.Get(ctx, "summary:inception")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisClient_MissingKey(t *testing.T) {
	client := cache.NewRedisClient[string](newTestClient(t), discardLogger(), time.Minute)

	_, err := client.Get(context.Background(), "summary:unknown")
	assert.ErrorIs(t, err, redisv9.Nil)
}

func TestRedisClient_Expiration(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	client := cache.NewRedisClient[string](redisClient, discardLogger(), time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "summary:inception", "cached"))

	mr.FastForward(2 * time.Minute)

	_, err := client.Get(ctx, "summary:inception")
	assert.ErrorIs(t, err, redisv9.Nil)
}

type recordingCollector struct {
	latencies map[string]int
	counts    map[string]int
}

func newRecordingCollector() *recordingCollector {
	return &recordingCollector{latencies: map[string]int{}, counts: map[string]int{}}
}

func (c *recordingCollector) ObserveLatency(operation string, _ time.Duration) {
	c.latencies[operation]++
}

func (c *recordingCollector) IncrementCounter(operation string, labels ...string) {
	key := operation
	for _, l := range labels {
		key += ":" + l
	}
	c.counts[key]++
}

func TestMetricsDecorator(t *testing.T) {
	collector := newRecordingCollector()
	inner := cache.NewRedisClient[string](newTestClient(t), discardLogger(), time.Minute)
	decorated := cache.NewMetricsDecorator[string](inner, collector)
	ctx := context.Background()

	_, err := decorated.Get(ctx, "summary:inception")
	assert.Error(t, err)

	require.NoError(t, decorated.Set(ctx, "summary:inception", "cached"))

	_, err = decorated.Get(ctx, "summary:inception")
	require.NoError(t, err)

	assert.Equal(t, 1, collector.counts["cache_get:miss"])
	assert.Equal(t, 1, collector.counts["cache_get:hit"])
	assert.Equal(t, 1, collector.counts["cache_set:ok"])
	assert.Equal(t, 2, collector.latencies["cache_get"])
	assert.Equal(t, 1, collector.latencies["cache_set"])
}

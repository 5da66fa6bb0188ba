//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
)

func get(t *testing.T, path string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodGet, testServerURL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func(body io.ReadCloser) {
		assert.NoError(t, body.Close())
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGetMoviesFlow(t *testing.T) {
	code, body := get(t, "/api/getmovies")
	require.Equal(t, http.StatusOK, code)

	var movies []models.Movie
	require.NoError(t, json.Unmarshal(body, &movies))
	require.NotEmpty(t, movies)

	titles := make([]string, 0, len(movies))
	for _, m := range movies {
		titles = append(titles, m.Title)
	}
	assert.Contains(t, titles, "Inception")
	assert.Contains(t, titles, "The Matrix")
	assert.IsNonDecreasing(t, titles)
}

func TestGetMoviesByYearFlow(t *testing.T) {
	code, body := get(t, "/api/getmoviesbyyear/2010")
	require.Equal(t, http.StatusOK, code)

	var movies []models.Movie
	require.NoError(t, json.Unmarshal(body, &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, "2010", movies[0].Year)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, movies[0].Genres)
}

func TestGetMoviesByYearFlow_BadYear(t *testing.T) {
	code, body := get(t, "/api/getmoviesbyyear/abcd")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "/api/getmoviesbyyear/year")
}

func TestGetMovieSummaryFlow(t *testing.T) {
	code, body := get(t, "/api/getmoviesummary/Inception")
	require.Equal(t, http.StatusOK, code)

	var summary models.MovieSummary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, "Inception", summary.Title)
	assert.Equal(t, "2010", summary.Year)
	assert.Equal(t, "A mind-bending heist through dreams.", summary.Summary)

	// Second request is served from the cache and must match.
	code, body = get(t, "/api/getmoviesummary/Inception")
	require.Equal(t, http.StatusOK, code)

	var cached models.MovieSummary
	require.NoError(t, json.Unmarshal(body, &cached))
	assert.Equal(t, summary, cached)
}

func TestGetMovieSummaryFlow_UnknownTitle(t *testing.T) {
	code, body := get(t, "/api/getmoviesummary/NoSuchMovie")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"movie not in database"}`, string(body))
}

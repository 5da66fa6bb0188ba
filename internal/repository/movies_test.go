package repository_test

import (
	"context"
	"database/sql"
	"io"
	"log"
	"testing"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/repository"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *repository.MovieRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// An in-memory sqlite database exists per connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, goose.SetDialect("sqlite"))
	require.NoError(t, goose.Up(db, "../../migrations"))

	return repository.NewMovieRepository(db, log.New(io.Discard, "", 0))
}

func TestMovieRepository_List(t *testing.T) {
	repo := newTestRepository(t)

	movies, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 8)

	// Ordered by title.
	assert.Equal(t, "Dune", movies[0].Title)
	assert.Equal(t, []string{"Adventure", "Sci-Fi"}, movies[0].Genres)
}

func TestMovieRepository_ListByYear(t *testing.T) {
	repo := newTestRepository(t)

	movies, err := repo.ListByYear(context.Background(), "1994")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Pulp Fiction", movies[0].Title)
	assert.Equal(t, "The Shawshank Redemption", movies[1].Title)
}

func TestMovieRepository_ListByYear_NoMatches(t *testing.T) {
	repo := newTestRepository(t)

	movies, err := repo.ListByYear(context.Background(), "1894")
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestMovieRepository_GetByTitle(t *testing.T) {
	repo := newTestRepository(t)

	movie, err := repo.GetByTitle(context.Background(), "inception")
	require.NoError(t, err)
	assert.Equal(t, "Inception", movie.Title)
	assert.Equal(t, "2010", movie.Year)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, movie.Genres)
}

func TestMovieRepository_GetByTitle_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByTitle(context.Background(), "Unknown Movie")
	assert.ErrorIs(t, err, repository.ErrMovieNotFound)
}

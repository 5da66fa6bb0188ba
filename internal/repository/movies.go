package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
	_ "modernc.org/sqlite"
)

var ErrMovieNotFound = errors.New("movie not in database")

type MovieRepository struct {
	DB     *sql.DB
	logger *log.Logger
}

func NewMovieRepository(db *sql.DB, logger *log.Logger) *MovieRepository {
	return &MovieRepository{DB: db, logger: logger}
}

func (r *MovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, year, genres FROM movies ORDER BY title`)
	if err != nil {
		return nil, err
	}
	return r.scanMovies(rows)
}

func (r *MovieRepository) ListByYear(ctx context.Context, year string) ([]models.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, year, genres FROM movies WHERE year = ? ORDER BY title`, year)
	if err != nil {
		return nil, err
	}
	return r.scanMovies(rows)
}

// GetByTitle matches the title case-insensitively, the way the original
// catalog query did.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (models.Movie, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, title, year, genres FROM movies WHERE LOWER(title) = LOWER(?)`, title)

	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, ErrMovieNotFound
	}
	return movie, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (models.Movie, error) {
	var movie models.Movie
	var genres string

	if err := row.Scan(&movie.ID, &movie.Title, &movie.Year, &genres); err != nil {
		return models.Movie{}, err
	}
	if err := json.Unmarshal([]byte(genres), &movie.Genres); err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

func (r *MovieRepository) scanMovies(rows *sql.Rows) ([]models.Movie, error) {
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			r.logger.Println(err)
		}
	}(rows)

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

package movies

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
)

const catalogCacheKey = "movies:all"

type MovieRepositor interface {
	List(ctx context.Context) ([]models.Movie, error)
	ListByYear(ctx context.Context, year string) ([]models.Movie, error)
	GetByTitle(ctx context.Context, title string) (models.Movie, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, title, year string) (string, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

type Service struct {
	repo         MovieRepositor
	summarizer   Summarizer
	catalogCache cacheClient[[]models.Movie]
	summaryCache cacheClient[string]
	logger       *log.Logger
}

func NewService(
	repo MovieRepositor,
	summarizer Summarizer,
	catalogCache cacheClient[[]models.Movie],
	summaryCache cacheClient[string],
	logger *log.Logger,
) *Service {
	return &Service{
		repo:         repo,
		summarizer:   summarizer,
		catalogCache: catalogCache,
		summaryCache: summaryCache,
		logger:       logger,
	}
}

func (s *Service) GetMovies(ctx context.Context) ([]models.Movie, error) {
	if cached, err := s.catalogCache.Get(ctx, catalogCacheKey); err == nil {
		return cached, nil
	}
	return s.RefreshCatalog(ctx)
}

// RefreshCatalog reloads the catalog from the store and repopulates the
// cache. The cron warmer calls it on a schedule.
func (s *Service) RefreshCatalog(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.catalogCache.Set(ctx, catalogCacheKey, movies); err != nil {
		s.logger.Println("failed to cache catalog:", err)
	}
	return movies, nil
}

func (s *Service) GetMoviesByYear(ctx context.Context, year string) ([]models.Movie, error) {
	return s.repo.ListByYear(ctx, year)
}

func (s *Service) GetMovieSummary(ctx context.Context, title string) (models.MovieSummary, error) {
	movie, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return models.MovieSummary{}, err
	}

	result := models.MovieSummary{
		Title:  movie.Title,
		Year:   movie.Year,
		Genres: strings.Join(movie.Genres, ", "),
	}

	key := summaryCacheKey(movie.Title)
	if cached, err := s.summaryCache.Get(ctx, key); err == nil {
		result.Summary = cached
		return result, nil
	}

	text, err := s.summarizer.Summarize(ctx, movie.Title, movie.Year)
	if err != nil {
		return models.MovieSummary{}, err
	}
	if err := s.summaryCache.Set(ctx, key, text); err != nil {
		s.logger.Println("failed to cache summary:", err)
	}

	result.Summary = text
	return result, nil
}

func summaryCacheKey(title string) string {
	return fmt.Sprintf("summary:%s", strings.ToLower(title))
}

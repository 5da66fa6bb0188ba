package movies

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/repository"
)

const yearUsageHint = "please provide a year as part of the url " +
	"in this format: /api/getmoviesbyyear/year"

type MovieServicer interface {
	GetMovies(ctx context.Context) ([]models.Movie, error)
	GetMoviesByYear(ctx context.Context, year string) ([]models.Movie, error)
	GetMovieSummary(ctx context.Context, title string) (models.MovieSummary, error)
}

type Handler struct {
	Service MovieServicer
}

func NewHandler(svc MovieServicer) *Handler {
	return &Handler{Service: svc}
}

// GetMovies
// @Summary List the movie catalog
// @Description Returns every movie with title, year and genres
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Failure 500
// @Router /getmovies [get]
func (h *Handler) GetMovies(c *gin.Context) {
	movies, err := h.Service.GetMovies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movies)
}

// GetMoviesByYear
// @Summary List movies released in a year
// @Tags movies
// @Produce json
// @Param year path string true "Release year"
// @Success 200 {array} models.Movie
// @Failure 400
// @Failure 500
// @Router /getmoviesbyyear/{year} [get]
func (h *Handler) GetMoviesByYear(c *gin.Context) {
	year := c.Param("year")
	if !isDigits(year) {
		c.JSON(http.StatusBadRequest, gin.H{"error": yearUsageHint})
		return
	}

	movies, err := h.Service.GetMoviesByYear(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movies)
}

// GetMovieSummary
// @Summary Movie details with a generated plot summary
// @Tags movies
// @Produce json
// @Param title path string true "Movie title"
// @Success 200 {object} models.MovieSummary
// @Failure 404
// @Failure 500
// @Router /getmoviesummary/{title} [get]
func (h *Handler) GetMovieSummary(c *gin.Context) {
	title := c.Param("title")

	summary, err := h.Service.GetMovieSummary(c.Request.Context(), title)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not in database"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

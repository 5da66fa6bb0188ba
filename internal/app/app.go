package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/okutsenko-ucu/cloud-portfolio/docs"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/config"
	moviesHandler "github.com/okutsenko-ucu/cloud-portfolio/internal/handlers/movies"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/models"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/repository"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/cache"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/logger"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/metrics"
	moviesService "github.com/okutsenko-ucu/cloud-portfolio/internal/services/movies"
	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/summary"
)

const timeoutDuration = 5 * time.Second

type App struct {
	cfg config.ServerConfig
	log *log.Logger
}

type ServiceContainer struct {
	MovieService *moviesService.Service
	MovieRepo    *repository.MovieRepository

	Router *gin.Engine
	Srv    *http.Server
	Db     *sql.DB
	Redis  *redisv9.Client
	Cron   *cron.Cron

	fileLogger *zap.Logger
}

func New(cfg config.ServerConfig, logger *log.Logger) *App {
	return &App{
		cfg: cfg,
		log: logger,
	}
}

func (a *App) Init() ServiceContainer {
	a.log.Println("Initializing movies API on", a.cfg.Server.Address)

	db, err := CreateSqliteDb(a.cfg.DB.Dialect, a.cfg.DB.Source)
	if err != nil {
		a.log.Panic(err)
	}

	if err := InitSqliteDb(db, a.cfg.DB.Dialect, a.cfg.DB.MigrationsPath); err != nil {
		a.log.Panic(err)
	}

	router := gin.Default()

	apiServer := &http.Server{
		Addr:        a.cfg.Server.Address,
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	fileLogger, err := logger.NewFileLogger(a.cfg.LogsPath)
	if err != nil {
		a.log.Panicf("failed to create file logger: %v", err)
	}

	httpLogClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger),
	}

	redisClient := redisv9.NewClient(&redisv9.Options{
		Addr: a.cfg.Redis.Address(),
		DB:   a.cfg.Redis.Db,
	})

	collector := metrics.NewPromCollector(prometheus.DefaultRegisterer)
	liveTime := time.Duration(a.cfg.Redis.LiveTime) * time.Minute

	catalogCache := cache.NewMetricsDecorator[[]models.Movie](
		cache.NewRedisClient[[]models.Movie](redisClient, a.log, liveTime),
		collector,
	)
	summaryCache := cache.NewMetricsDecorator[string](
		cache.NewRedisClient[string](redisClient, a.log, liveTime),
		collector,
	)

	cohereClient := summary.NewCohereClient(
		a.cfg.Summary.APIKey,
		a.cfg.Summary.APIURL,
		a.cfg.Summary.Model,
		httpLogClient,
		a.log,
	)
	summarizer := summary.NewBreakerClient("CohereAPI", summary.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}, cohereClient)

	movieRepo := repository.NewMovieRepository(db, a.log)
	movieService := moviesService.NewService(movieRepo, summarizer, catalogCache, summaryCache, a.log)

	return ServiceContainer{
		MovieService: movieService,
		MovieRepo:    movieRepo,

		Router: router,
		Srv:    apiServer,
		Db:     db,
		Redis:  redisClient,
		Cron:   cron.New(),

		fileLogger: fileLogger,
	}
}

func (a *App) Start(srvContainer ServiceContainer) error {
	a.log.Println("Starting server on", a.cfg.Server.Address)

	movieHandler := moviesHandler.NewHandler(srvContainer.MovieService)

	api := srvContainer.Router.Group("/api")
	{
		api.GET("/getmovies", movieHandler.GetMovies)
		api.GET("/getmoviesbyyear/:year", movieHandler.GetMoviesByYear)
		api.GET("/getmoviesummary/:title", movieHandler.GetMovieSummary)
	}
	srvContainer.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	srvContainer.Router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	if err := a.startWarmer(srvContainer); err != nil {
		return err
	}

	if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// startWarmer schedules the catalog cache refresh and primes it once so the
// first request does not pay the store round trip.
func (a *App) startWarmer(srvContainer ServiceContainer) error {
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
		defer cancel()

		if _, err := srvContainer.MovieService.RefreshCatalog(ctx); err != nil {
			a.log.Println("catalog warm failed:", err)
		}
	}

	if _, err := srvContainer.Cron.AddFunc(a.cfg.Warmer.Schedule, warm); err != nil {
		return err
	}

	warm()
	srvContainer.Cron.Start()
	return nil
}

func (a *App) Stop(srvContainer ServiceContainer) error {
	a.log.Println("Stopping application…")

	cronCtx := srvContainer.Cron.Stop()
	<-cronCtx.Done()
	a.log.Println("Catalog warmer stopped")

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.log.Println("HTTP shutdown error:", err)
	} else {
		a.log.Println("HTTP server stopped")
	}

	if err := srvContainer.Redis.Close(); err != nil {
		a.log.Println("Redis close error:", err)
	}

	if err := srvContainer.Db.Close(); err != nil {
		a.log.Println("DB close error:", err)
	} else {
		a.log.Println("Database closed")
	}

	if err := srvContainer.fileLogger.Sync(); err != nil {
		a.log.Println("failed to sync file logger:", err)
	}

	a.log.Println("Shutdown complete")
	return nil
}

func CreateSqliteDb(dialect, name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?cache=shared&mode=rwc"
	db, err := sql.Open(dialect, connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitSqliteDb(db *sql.DB, dialect, migrationPath string) error {
	log.Println("Initializing migrations:", migrationPath)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	if err := goose.Up(db, migrationPath); err != nil {
		return err
	}

	return nil
}

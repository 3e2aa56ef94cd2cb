package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bookmark/internal/cache"
	"bookmark/internal/config"
	"bookmark/internal/database"
	"bookmark/internal/middlewares"
	"bookmark/internal/repositories"
	"bookmark/internal/services"
	"bookmark/internal/uistate"
)

type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	db         database.Service
	redis      *redis.Client
	limiter    *middlewares.RateLimiter
	state      *uistate.State

	bookmarkService services.BookmarkService
	categoryService services.CategoryService
	menuService     services.MenuService

	stopCleanup context.CancelFunc
}

// NewServer connects to MongoDB (and Redis when configured), ensures the
// indexes and wires the services behind the HTTP routes.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}

	var (
		redisClient *redis.Client
		slugCache   services.SlugCache
	)
	if cfg.RedisAddr != "" {
		opts := cache.DefaultConnectOptions(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisConnectTimeout)
		redisClient, err = cache.Connect(context.Background(), opts)
		if err != nil {
			log.Warn().Err(err).Msg("Slug cache disabled")
		} else {
			slugCache = cache.NewSlugCache(redisClient, cfg.SlugCacheTTL)
		}
	} else {
		log.Info().Msg("REDIS_ADDR not set, slug cache disabled")
	}

	s := newServer(cfg, db, slugCache)
	s.redis = redisClient
	return s, nil
}

func newServer(cfg *config.Config, db database.Service, slugCache services.SlugCache) *Server {
	bookmarkRepo := repositories.NewBookmarkRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	s := &Server{
		cfg:             cfg,
		db:              db,
		limiter:         middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		state:           uistate.New(),
		bookmarkService: services.NewBookmarkService(bookmarkRepo, categoryRepo, slugCache),
		categoryService: services.NewCategoryService(categoryRepo, bookmarkRepo, slugCache),
		menuService:     services.NewMenuService(categoryRepo),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopCleanup = cancel
	go s.limiter.Cleanup(ctx, time.Minute, 3*time.Minute)

	log.Info().Int("port", s.cfg.Port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	s.Close()

	log.Info().Msg("Server exiting")
	done <- true
}

// Close releases the database and cache connections.
func (s *Server) Close() {
	if s.stopCleanup != nil {
		s.stopCleanup()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing redis client")
		}
	}
	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Error disconnecting from MongoDB")
	}
}

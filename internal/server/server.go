package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"pgclosets-api/internal/config"
	custommiddleware "pgclosets-api/internal/middleware"
	"pgclosets-api/internal/repository"
	"pgclosets-api/internal/service"
	"pgclosets-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	quoteRepo := repository.NewQuoteRequestRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo, redisClient, cfg.Catalog.CacheTTL, logger)
	quoteService := service.NewQuoteService(quoteRepo)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	quoteHandler := transport.NewQuoteHandler(quoteService, logger)

	// Quote submissions are public and trigger staff notifications, so
	// they get a per-IP throttle.
	submitLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.Quotes.RateLimitPerHour,
		Window:            time.Hour,
		KeyPrefix:         "rate_limit:quotes",
	}, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	quoteHandler.RegisterRoutes(router, submitLimiter)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

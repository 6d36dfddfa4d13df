package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"localmarket/internal/cache"
	"localmarket/internal/config"
	custommiddleware "localmarket/internal/middleware"
	"localmarket/internal/repository"
	"localmarket/internal/service"
	"localmarket/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
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
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 120,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	historyRepo := repository.NewSearchHistoryRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	// Initialize services
	catalogCache := cache.NewCatalog(redisClient, logger)
	catalogService := service.NewCatalogService(productRepo, badgeRepo, reviewRepo, sellerRepo, historyRepo, taxonomyRepo, catalogCache, logger)
	reviewService := service.NewReviewService(reviewRepo, badgeRepo, catalogCache, logger)
	recommendationService := service.NewRecommendationService(historyRepo, catalogService, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, badgeRepo, logger)
	sellerService := service.NewSellerService(sellerRepo)
	orderService := service.NewOrderService(orderRepo)
	messageService := service.NewMessageService(messageRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, reviewService, recommendationService, logger)
	sellerHandler := transport.NewSellerHandler(sellerService, logger)
	favoriteHandler := transport.NewFavoriteHandler(favoriteService, logger)
	messageHandler := transport.NewMessageHandler(messageService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.Auth.JWTSecret, logger)
	requireSeller := custommiddleware.RequireSeller(func(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
		seller, err := sellerService.GetByUserID(ctx, userID)
		if err != nil {
			return uuid.Nil, err
		}
		return seller.ID, nil
	}, logger)

	// Register routes
	productHandler.RegisterRoutes(router, authMiddleware, requireSeller)
	sellerHandler.RegisterRoutes(router, authMiddleware)
	favoriteHandler.RegisterRoutes(router, authMiddleware)
	messageHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware, requireSeller)

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

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

package server

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/search"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	dbService   database.Service
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service, redisClient *redis.Client, searchClient *search.Client) *Server {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, dbService.Health())
	})

	// Serve stored uploads
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, refreshTokenRepo, cfg.JWT.Secret)
	userService := service.NewUserService(userRepo, roleRepo, logger)
	roleService := service.NewRoleService(roleRepo, userRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, reviewRepo, searchClient, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	userHandler := transport.NewUserHandler(userService, logger)
	roleHandler := transport.NewRoleHandler(roleService, logger)
	productHandler := transport.NewProductHandler(productService, searchClient, logger)
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	reviewHandler := transport.NewReviewHandler(reviewService, logger)
	uploadHandler := transport.NewUploadHandler(cfg.Upload.Dir, logger)
	pageHandler := transport.NewPageHandler(userService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware)
	userHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	roleHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	categoryHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	reviewHandler.RegisterRoutes(router, authMiddleware)
	uploadHandler.RegisterRoutes(router, authMiddleware)
	pageHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		dbService:   dbService,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

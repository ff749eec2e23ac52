package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/cache"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/config"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/handler"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/metrics"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/repository"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/service"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/database"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/jwt"
	pkglog "github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/middleware"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/pubsub"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "tourism-backend",
	})
	logger := pkglog.L()

	// Connect to MongoDB
	mongoClient, db, err := database.Connect(&cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer database.Disconnect(mongoClient)
	logger.Info().Str("database", cfg.MongoDB.Database).Msg("mongodb connected")

	// Ensure indexes
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, db); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	cancel()

	// Initialize repositories
	homestayRepo := repository.NewMongoHomestayRepository(db)
	guideRepo := repository.NewMongoGuideRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	bookingRepo := repository.NewMongoBookingRepository(db)

	// Initialize Redis cache
	searchCache, err := cache.NewRedisSearchCache(cfg.Redis, cfg.Cache.Prefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer searchCache.Close()
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")

	// Initialize event publisher
	publisher, err := pubsub.NewPublisher(cfg.PubSub)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create event publisher")
	}
	defer publisher.Close()
	logger.Info().Str("driver", cfg.PubSub.Driver).Msg("event publisher ready")

	// Initialize JWT validation
	tokens, err := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize jwt manager")
	}
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Initialize services
	searchService := service.NewSearchService(homestayRepo, guideRepo, productRepo, searchCache, cfg.Cache.TTL)
	bookingService := service.NewBookingService(bookingRepo, homestayRepo, guideRepo, publisher)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(searchService, bookingService, authMiddleware)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))
	r.Use(metrics.Middleware())

	// Health check and metrics
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("tourism-backend starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

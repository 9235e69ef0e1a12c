package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/config"
	"github.com/beast-watch/api-go/controllers"
	"github.com/beast-watch/api-go/middleware"
	"github.com/beast-watch/api-go/routes"
	"github.com/beast-watch/api-go/services"
	"github.com/beast-watch/api-go/storage"
	"github.com/beast-watch/api-go/utils"
	"github.com/beast-watch/api-go/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, reviewers, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}

	validator := validation.NewValidator(cfg.Validation)
	sightingService := services.NewSightingService(store, validator, services.WithLogger(logger.Named("sightings")))
	authService := services.NewAuthService(reviewers, cfg.JWT.Secret, cfg.JWT.TTL, services.WithAuthLogger(logger.Named("auth")))

	if cfg.Bootstrap.Email != "" {
		if _, err := authService.EnsureReviewer(ctx, cfg.Bootstrap.Email, cfg.Bootstrap.Password, "Reviewer"); err != nil {
			return fmt.Errorf("failed to seed bootstrap reviewer: %w", err)
		}
	}

	classifier := apperrors.NewClassifier(apperrors.ParseLocale(cfg.Locale), logger.Named("errors"))

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger.Named("http")))

	routes.SetupRoutes(r, routes.Handlers{
		Sightings:    controllers.NewSightingController(sightingService, classifier, controllers.DefaultReviewPolicy(), logger.Named("http")),
		Auth:         controllers.NewAuthController(authService, classifier, logger.Named("http")),
		RequireAuth:  middleware.AuthMiddleware(authService, classifier),
		OptionalAuth: middleware.OptionalAuthMiddleware(authService, logger.Named("http")),
	})

	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("store", string(cfg.StoreBackend)),
		zap.String("locale", cfg.Locale),
	)
	return r.Run(":" + cfg.Port)
}

// openStores builds the sighting store for the configured backend and the
// reviewer directory. Reviewers live in postgres whenever it is configured.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, storage.ReviewerDirectory, error) {
	var reviewers storage.ReviewerDirectory = storage.NewMemoryReviewerDirectory()
	if cfg.HasDatabase() {
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		reviewers = storage.NewGormReviewerDirectory(db)

		if cfg.StoreBackend == storage.BackendPostgres {
			return storage.NewGormStore(db, storage.WithGormLogger(logger.Named("storage"))), reviewers, nil
		}
	}

	switch cfg.StoreBackend {
	case storage.BackendDynamoDB:
		client, err := config.NewDynamoDBClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewDynamoStore(client, cfg.DynamoDB.MasterTable, cfg.DynamoDB.PublishedTable,
			storage.WithDynamoLogger(logger.Named("storage")))
		return store, reviewers, nil
	case storage.BackendMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return storage.NewMemoryStore(), reviewers, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

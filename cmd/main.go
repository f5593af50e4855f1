package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brightpath/brightpath-backend/internal/clients"
	"github.com/brightpath/brightpath-backend/internal/db"
	"github.com/brightpath/brightpath-backend/internal/handlers"
	"github.com/brightpath/brightpath-backend/internal/jobs"
	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/observability"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/server"
	"github.com/brightpath/brightpath-backend/internal/services"
	"github.com/brightpath/brightpath-backend/internal/utils"
)

const serviceName = "brightpath-backend"

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing (no-op unless OTEL_ENABLED)
	if shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	}); shutdown != nil {
		defer func() { _ = shutdown(ctx) }()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional; services degrade to DB without it)
	redisService, err := clients.NewRedisService(log)
	if err != nil {
		log.Warn("Redis init failed, continuing without cache", "error", err)
		redisService = nil
	}

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	courseRepo := repos.NewCourseRepo(thePG, log)
	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
	assessmentRepo := repos.NewAssessmentRepo(thePG, log)
	profileRepo := repos.NewProfileRepo(thePG, log)
	contentFeaturesRepo := repos.NewContentFeaturesRepo(thePG, log)
	similarityRepo := repos.NewSimilarityRepo(thePG, log)
	recommendationRepo := repos.NewRecommendationRepo(thePG, log)
	interactionRepo := repos.NewInteractionRepo(thePG, log)
	modelRepo := repos.NewModelRepo(thePG, log)

	// Store adapters for the scoring core
	contentStore := services.NewContentStore(contentFeaturesRepo)
	similarityStore := services.NewSimilarityStore(similarityRepo)
	interactionStore := services.NewInteractionStore(enrollmentRepo, assessmentRepo, courseRepo, userRepo)
	trendingStore := services.NewTrendingStore(enrollmentRepo, redisService, log)

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(userRepo, log)
	profileService := services.NewProfileService(profileRepo, enrollmentRepo, assessmentRepo, courseRepo, log)
	recommendationService := services.NewRecommendationService(
		profileService,
		recommendationRepo,
		interactionRepo,
		enrollmentRepo,
		modelRepo,
		contentStore,
		similarityStore,
		interactionStore,
		trendingStore,
		log,
	)
	interactionService := services.NewInteractionService(interactionRepo, recommendationRepo, log)
	analysisService := services.NewContentAnalysisService(courseRepo, contentFeaturesRepo, enrollmentRepo, similarityRepo, log)
	modelService := services.NewModelService(modelRepo, log)
	roleService := services.NewRoleService(userRepo, log)
	analyticsProxy := services.NewAnalyticsProxyService(log)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, log)
	profileHandler := handlers.NewProfileHandler(profileService, log)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, log)
	interactionHandler := handlers.NewInteractionHandler(interactionService, log)
	contentHandler := handlers.NewContentHandler(analysisService, log)
	modelHandler := handlers.NewModelHandler(modelService, recommendationService, log)
	roleHandler := handlers.NewRoleHandler(roleService, log)

	// Scheduled jobs
	jobRunner := &jobs.Runner{
		Profiles:        profileService,
		Analysis:        analysisService,
		Recommendations: recommendationService,
		Models:          modelRepo,
		RecommendRows:   recommendationRepo,
		ProfileRows:     profileRepo,
		Users:           userRepo,
		Log:             log,
	}
	go jobRunner.Start(ctx)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:           authHandler,
		ProfileHandler:        profileHandler,
		RecommendationHandler: recommendationHandler,
		InteractionHandler:    interactionHandler,
		ContentHandler:        contentHandler,
		ModelHandler:          modelHandler,
		RoleHandler:           roleHandler,
		AuthService:           authService,
		AnalyticsProxy:        analyticsProxy,
		Log:                   log,
		ServiceName:           serviceName,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}

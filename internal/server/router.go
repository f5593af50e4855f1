package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brightpath/brightpath-backend/internal/handlers"
	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/middleware"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/services"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	ProfileHandler        *handlers.ProfileHandler
	RecommendationHandler *handlers.RecommendationHandler
	InteractionHandler    *handlers.InteractionHandler
	ContentHandler        *handlers.ContentHandler
	ModelHandler          *handlers.ModelHandler
	RoleHandler           *handlers.RoleHandler

	AuthService    services.AuthService
	AnalyticsProxy *services.AnalyticsProxyService
	Log            *logger.Logger
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestLog(cfg.Log))
	router.Use(middleware.CORS(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	auth := router.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	// ===============
	// || Protected ||
	// ===============
	rec := router.Group("/ai-recommendations")
	rec.Use(middleware.Auth(cfg.AuthService))
	{
		rec.GET("/health", cfg.RecommendationHandler.Health)
		rec.GET("/personalized", cfg.RecommendationHandler.Personalized)
		rec.GET("/content-based", cfg.RecommendationHandler.ByStrategy(recommend.StrategyContentBased))
		rec.GET("/collaborative", cfg.RecommendationHandler.ByStrategy(recommend.StrategyCollaborative))
		rec.GET("/contextual", cfg.RecommendationHandler.ByStrategy(recommend.StrategyContextual))
		rec.GET("/trending", cfg.RecommendationHandler.ByStrategy(recommend.StrategyTrending))

		rec.GET("/profile", cfg.ProfileHandler.Get)
		rec.PUT("/profile", cfg.ProfileHandler.Update)
		rec.POST("/profile/interests", cfg.ProfileHandler.AddInterests)
		rec.PUT("/profile/career-path", cfg.ProfileHandler.SetCareerPath)

		rec.POST("/interactions", cfg.InteractionHandler.Record)
		rec.POST("/feedback", cfg.InteractionHandler.Feedback)

		rec.POST("/content/:id/analyze", cfg.ContentHandler.Analyze)
		rec.GET("/content/:id/similar", cfg.RecommendationHandler.SimilarContent)

		rec.GET("/models", cfg.ModelHandler.List)
		rec.POST("/models", cfg.ModelHandler.Create)
		rec.PUT("/models/:id/activate", middleware.RequireAdmin(), cfg.ModelHandler.Activate)
		rec.POST("/models/train", middleware.RequireAdmin(), cfg.ModelHandler.Train)

		rec.GET("/analytics", cfg.RecommendationHandler.Analytics)
	}

	analytics := router.Group("/analytics")
	analytics.Use(middleware.Auth(cfg.AuthService))
	analytics.Any("/*path", func(c *gin.Context) {
		cfg.AnalyticsProxy.Proxy(c, c.Param("path"))
	})

	roles := router.Group("/roles")
	roles.Use(middleware.Auth(cfg.AuthService))
	{
		roles.GET("/me", cfg.RoleHandler.Me)
		roles.GET("/permissions", cfg.RoleHandler.Permissions)
		roles.POST("/validate", cfg.RoleHandler.Validate)
		roles.GET("", middleware.RequireAdmin(), cfg.RoleHandler.List)
	}

	return router
}

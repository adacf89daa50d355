package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edupoint/scoring-api/api/swagger"
	"github.com/edupoint/scoring-api/internal/handler"
	"github.com/edupoint/scoring-api/internal/middleware"
	"github.com/edupoint/scoring-api/internal/repository"
	"github.com/edupoint/scoring-api/internal/service"
	"github.com/edupoint/scoring-api/pkg/cache"
	"github.com/edupoint/scoring-api/pkg/config"
	"github.com/edupoint/scoring-api/pkg/database"
	"github.com/edupoint/scoring-api/pkg/logger"
	corsmiddleware "github.com/edupoint/scoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edupoint/scoring-api/pkg/middleware/requestid"
)

// @title EduPoint Scoring API
// @version 1.0.0
// @description Academic scoring configuration and result computation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.DefaultTTL, logr, cfg.Cache.Enabled && redisClient != nil)

	gradingSystemRepo := repository.NewGradingSystemRepository(db)
	scoringConfigRepo := repository.NewScoringConfigRepository(db)
	examSessionRepo := repository.NewExamSessionRepository(db)
	subjectResultRepo := repository.NewSubjectResultRepository(db)
	sessionResultRepo := repository.NewSessionResultRepository(db)

	gradingSystemSvc := service.NewGradingSystemService(gradingSystemRepo, nil, logr)
	scoringConfigSvc := service.NewScoringConfigService(scoringConfigRepo, gradingSystemRepo, cacheSvc, cfg.Cache.DefaultConfigTTL, nil, logr)
	resultSvc := service.NewResultService(subjectResultRepo, sessionResultRepo, examSessionRepo, scoringConfigRepo, gradingSystemRepo, metricsSvc, nil, logr)

	gradingSystemHandler := handler.NewGradingSystemHandler(gradingSystemSvc)
	scoringConfigHandler := handler.NewScoringConfigHandler(scoringConfigSvc)
	resultHandler := handler.NewResultHandler(resultSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		systems := api.Group("/grading-systems")
		{
			systems.GET("", gradingSystemHandler.List)
			systems.POST("", gradingSystemHandler.Create)
			systems.GET("/:id", gradingSystemHandler.Get)
			systems.PUT("/:id", gradingSystemHandler.Update)
			systems.DELETE("/:id", gradingSystemHandler.Deactivate)
		}

		configs := api.Group("/scoring-configs")
		{
			configs.GET("", scoringConfigHandler.List)
			configs.POST("", scoringConfigHandler.Create)
			configs.POST("/validate", scoringConfigHandler.Validate)
			configs.GET("/default/:level", scoringConfigHandler.GetDefault)
			configs.GET("/:id", scoringConfigHandler.Get)
			configs.PUT("/:id", scoringConfigHandler.Update)
			configs.DELETE("/:id", scoringConfigHandler.Delete)
		}

		results := api.Group("/results")
		{
			results.POST("", resultHandler.EnterScores)
			results.POST("/rank", resultHandler.RankClass)
			results.GET("/:id", resultHandler.Get)
			results.POST("/:id/recompute", resultHandler.Recompute)
			results.PATCH("/:id/status", resultHandler.UpdateStatus)
		}

		sessionResults := api.Group("/session-results")
		{
			sessionResults.POST("/aggregate", resultHandler.AggregateSession)
			sessionResults.POST("/rank", resultHandler.RankSessionResults)
		}

		api.GET("/system/metrics", metricsHandler.Snapshot)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/teaching-program-api/api/swagger"
	"github.com/noah-isme/teaching-program-api/internal/handler"
	internalmiddleware "github.com/noah-isme/teaching-program-api/internal/middleware"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	"github.com/noah-isme/teaching-program-api/internal/repository"
	"github.com/noah-isme/teaching-program-api/internal/service"
	"github.com/noah-isme/teaching-program-api/pkg/cache"
	"github.com/noah-isme/teaching-program-api/pkg/config"
	"github.com/noah-isme/teaching-program-api/pkg/database"
	"github.com/noah-isme/teaching-program-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/teaching-program-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/teaching-program-api/pkg/middleware/requestid"
)

// @title Teaching Program Planner API
// @version 1.0.0
// @description Academic calendar, effective weeks and teaching-hour allocation for teachers.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	db, err := database.NewPostgres(startCtx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	cacheRepo := connectCache(startCtx, cfg, logr)
	defer cacheRepo.Close() //nolint:errcheck
	topicCache := service.NewCacheService(cacheRepo, metrics, cfg.Planner.TopicCacheTTL, logr, cfg.Planner.TopicCacheEnabled)

	router := buildRouter(cfg, logr, db, cacheRepo, topicCache, metrics)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}

// connectCache returns a repository backed by Redis, or a disconnected one when Redis is down
// so topic lookups still work uncached.
func connectCache(ctx context.Context, cfg *config.Config, logr *zap.Logger) *repository.CacheRepository {
	if !cfg.Planner.TopicCacheEnabled {
		return repository.NewCacheRepository(nil, logr)
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, topic cache disabled", zap.Error(err))
		return repository.NewCacheRepository(nil, logr)
	}
	return repository.NewCacheRepository(client, logr)
}

func buildRouter(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, cacheRepo *repository.CacheRepository, topicCache *service.CacheService, metrics *service.MetricsService) *gin.Engine {
	validate := validator.New()
	engine := planner.NewEngine(planner.Options{
		WeeksPerMonth:       cfg.Planner.WeeksPerMonth,
		BlockingOverlapDays: cfg.Planner.BlockingOverlapDays,
	})

	documents := repository.NewProgramDocumentRepository(db)
	holidays := repository.NewHolidayRepository(db)
	schedules := repository.NewTeachingScheduleRepository(db)
	sections := repository.NewClassSectionRepository(db)

	authService := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
	})
	programService := service.NewProgramService(documents, holidays, schedules, engine, topicCache, metrics, validate, logr)
	topicService := service.NewTopicService(documents, sections, schedules, topicCache, cfg.Planner.TopicCacheTTL, metrics, validate, logr)
	holidayService := service.NewHolidayService(holidays, validate, logr)
	scheduleService := service.NewTeachingScheduleService(schedules, validate, logr)
	sectionService := service.NewClassSectionService(sections, topicCache, validate, logr)

	programHandler := handler.NewProgramHandler(programService)
	topicHandler := handler.NewTopicHandler(topicService)
	holidayHandler := handler.NewHolidayHandler(holidayService)
	scheduleHandler := handler.NewTeachingScheduleHandler(scheduleService)
	sectionHandler := handler.NewClassSectionHandler(sectionService)
	metricsHandler := handler.NewMetricsHandler(metrics, map[string]handler.ReadinessProbe{
		"database": db.PingContext,
		"cache":    cacheRepo.Ping,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.WithResponseMeta())
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(authService))

	programs := api.Group("/programs")
	programs.GET("/calendar", programHandler.GetCalendar)
	programs.PUT("/calendar", programHandler.SaveCalendar)
	programs.POST("/calendar/sync-budget", programHandler.SyncBudget)
	programs.GET("/allocation", programHandler.GetAllocation)
	programs.DELETE("/allocation", programHandler.Reset)
	programs.PUT("/allocation/objectives", programHandler.SaveObjectives)
	programs.POST("/allocation/auto-distribute", programHandler.AutoDistribute)
	programs.PUT("/allocation/assignments", programHandler.SaveAssignments)
	programs.GET("/allocation/weeks", programHandler.WeekStatuses)
	programs.POST("/allocation/import-atp", programHandler.ImportATP)
	programs.GET("/atp", programHandler.GetATP)
	programs.PUT("/atp", programHandler.SaveATP)

	topics := api.Group("/topics")
	topics.GET("/current", topicHandler.Current)
	topics.GET("/today", topicHandler.Today)

	holidayRoutes := api.Group("/holidays")
	holidayRoutes.GET("", holidayHandler.List)
	holidayRoutes.POST("", holidayHandler.Create)
	holidayRoutes.PUT("/:id", holidayHandler.Update)
	holidayRoutes.DELETE("/:id", holidayHandler.Delete)

	scheduleRoutes := api.Group("/schedules")
	scheduleRoutes.GET("", scheduleHandler.List)
	scheduleRoutes.POST("", scheduleHandler.Create)
	scheduleRoutes.DELETE("/:id", scheduleHandler.Delete)

	classes := api.Group("/classes")
	classes.GET("", sectionHandler.List)
	classes.PUT("", sectionHandler.Replace)

	api.GET("/metrics/summary", internalmiddleware.RequireRoles(models.RoleAdmin), metricsHandler.Summary)

	return r
}

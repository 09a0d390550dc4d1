package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/elanthamilan/camu-course-compass-planner-sub000/api/swagger"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/catalog"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/handler"
	internalmiddleware "github.com/elanthamilan/camu-course-compass-planner-sub000/internal/middleware"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/service"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/config"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/logger"
	corsmiddleware "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/middleware/requestid"
)

// @title Course Compass Planner API
// @version 0.1.0
// @description Schedule generation, conflict detection, and degree audit for student course planning
// @BasePath /
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

	store, err := catalog.New()
	if err != nil {
		logr.Sugar().Fatalw("failed to load catalog", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	plannerSvc := service.NewPlannerService(store, metrics, validate, logr, service.PlannerConfig{
		NodeBudget:    cfg.Planner.NodeBudget,
		MaxCandidates: cfg.Planner.MaxCandidates,
		MaxResults:    cfg.Planner.MaxResults,
		SessionTTL:    cfg.Planner.SessionTTL,
	})
	auditSvc := service.NewAuditService(store, validate, logr)
	exportSvc := service.NewExportService(store, nil, nil, validate, logr)
	advisorSvc := service.NewAdvisorService(validate, logr)

	catalogHandler := handler.NewCatalogHandler(store)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	exportHandler := handler.NewExportHandler(exportSvc, cfg.Export.DownloadsEnabled)
	advisorHandler := handler.NewAdvisorHandler(advisorSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", catalogHandler.ListCourses)
		api.GET("/courses/:id", catalogHandler.GetCourse)
		api.GET("/programs", catalogHandler.ListPrograms)
		api.GET("/programs/:id", catalogHandler.GetProgram)
		api.GET("/students/:id", catalogHandler.GetStudent)

		api.POST("/schedules/generate", plannerHandler.Generate)
		api.POST("/schedules/conflicts", plannerHandler.CheckConflicts)
		api.GET("/schedules", plannerHandler.List)
		api.POST("/schedules", plannerHandler.Save)
		api.GET("/schedules/:id", plannerHandler.Get)
		api.PATCH("/schedules/:id", plannerHandler.Rename)
		api.DELETE("/schedules/:id", plannerHandler.Delete)
		api.POST("/schedules/:id/duplicate", plannerHandler.Duplicate)

		api.POST("/schedules/export", exportHandler.Export)
		api.POST("/schedules/import", exportHandler.Import)
		api.POST("/schedules/:id/download", exportHandler.Download)

		api.POST("/audit", auditHandler.Audit)
		api.POST("/audit/what-if", auditHandler.WhatIf)

		if cfg.Advisor.Enabled {
			api.POST("/advisor/chat", advisorHandler.Chat)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "courses", len(store.AllCourses()))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

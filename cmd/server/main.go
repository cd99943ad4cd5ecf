package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	executionapp "github.com/apitest/backend/internal/application/execution"
	specapp "github.com/apitest/backend/internal/application/spec"
	caseapp "github.com/apitest/backend/internal/application/testcase"
	"github.com/apitest/backend/internal/infrastructure/config"
	"github.com/apitest/backend/internal/infrastructure/logger"
	"github.com/apitest/backend/internal/infrastructure/persistence"
	"github.com/apitest/backend/internal/infrastructure/scheduler"
	"github.com/apitest/backend/internal/interfaces/http/handler"
	"github.com/apitest/backend/internal/interfaces/http/middleware"
	"github.com/apitest/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting API test platform",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	ifaceRepo := persistence.NewGormInterfaceRepository(db.DB)
	paramRepo := persistence.NewGormParameterRepository(db.DB)
	caseRepo := persistence.NewGormCaseRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	resultRepo := persistence.NewGormResultRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	depRepo := persistence.NewGormDependencyRepository(db.DB)

	// Application services
	projectService := specapp.NewProjectService(projectRepo)
	ifaceService := specapp.NewInterfaceService(projectRepo, ifaceRepo, paramRepo)
	importService := specapp.NewImportService(projectRepo, ifaceRepo, paramRepo, log)
	caseService := caseapp.NewCaseService(caseRepo, ifaceRepo, paramRepo, log)
	dependencyService := specapp.NewDependencyService(depRepo)

	invoker := executionapp.NewInvoker()
	aggregator := executionapp.NewAggregator(batchRepo, resultRepo, log)
	dispatcher := executionapp.NewDispatcher(batchRepo, resultRepo, caseRepo, ifaceRepo, invoker, aggregator, log)
	dispatcher.SetResolver(dependencyService)
	planService := executionapp.NewPlanService(planRepo, batchRepo, resultRepo, projectRepo, dispatcher, log)

	// Cron plan trigger
	var planTrigger *scheduler.PlanTrigger
	if cfg.Scheduler.Enabled {
		planTrigger = scheduler.NewPlanTrigger(scheduler.PlanTriggerConfig{
			CheckInterval: cfg.Scheduler.CheckInterval,
		}, planRepo, planService, log)
		if err := planTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start plan trigger", zap.Error(err))
		}
		log.Info("Plan trigger started", zap.Duration("check_interval", cfg.Scheduler.CheckInterval))
	}

	// Handlers
	projectHandler := handler.NewProjectHandler(projectService)
	ifaceHandler := handler.NewInterfaceHandler(ifaceService)
	importHandler := handler.NewImportHandler(importService)
	caseHandler := handler.NewCaseHandler(caseService)
	executionHandler := handler.NewExecutionHandler(planService)
	dependencyHandler := handler.NewDependencyHandler(dependencyService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)

	// Gin engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	specRoutes := router.NewDomainGroup("spec", "/spec")
	specRoutes.POST("/projects", projectHandler.Create)
	specRoutes.GET("/projects", projectHandler.List)
	specRoutes.GET("/projects/:id", projectHandler.GetByID)
	specRoutes.DELETE("/projects/:id", projectHandler.Delete)
	specRoutes.GET("/projects/:id/interfaces", ifaceHandler.ListByProject)
	specRoutes.POST("/projects/:id/import/excel", importHandler.ImportExcel)
	specRoutes.POST("/projects/:id/import/postman", importHandler.ImportPostman)
	specRoutes.POST("/interfaces", ifaceHandler.Create)
	specRoutes.GET("/interfaces/:id", ifaceHandler.GetByID)
	specRoutes.DELETE("/interfaces/:id", ifaceHandler.Delete)
	specRoutes.GET("/interfaces/:id/parameters", ifaceHandler.ListParameters)
	specRoutes.POST("/dependencies", dependencyHandler.Create)
	specRoutes.GET("/dependencies", dependencyHandler.ListBySource)
	specRoutes.DELETE("/dependencies/:id", dependencyHandler.Delete)

	caseRoutes := router.NewDomainGroup("testcase", "/cases")
	caseRoutes.POST("", caseHandler.Create)
	caseRoutes.POST("/synthesize", caseHandler.Synthesize)
	caseRoutes.GET("", caseHandler.ListByInterface)
	caseRoutes.GET("/:id", caseHandler.GetByID)
	caseRoutes.DELETE("/:id", caseHandler.Delete)

	executionRoutes := router.NewDomainGroup("execution", "/execution")
	executionRoutes.POST("/plans", executionHandler.CreatePlan)
	executionRoutes.GET("/plans", executionHandler.ListPlans)
	executionRoutes.GET("/plans/:id", executionHandler.GetPlan)
	executionRoutes.PUT("/plans/:id/cases", executionHandler.ReplaceCases)
	executionRoutes.DELETE("/plans/:id", executionHandler.DeletePlan)
	executionRoutes.POST("/plans/:id/execute", executionHandler.ExecutePlan)
	executionRoutes.POST("/batches", executionHandler.RunCases)
	executionRoutes.GET("/batches", executionHandler.ListBatches)
	executionRoutes.GET("/batches/:id", executionHandler.GetBatch)
	executionRoutes.GET("/batches/:id/report", executionHandler.GetBatchReport)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(specRoutes).
		Register(caseRoutes).
		Register(executionRoutes).
		Register(systemRoutes)
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if planTrigger != nil {
		if err := planTrigger.Stop(ctx); err != nil {
			log.Error("Plan trigger shutdown error", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

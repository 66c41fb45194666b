package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/schedulepro/schedule-pro-api/internal/catalog"
	internalhandler "github.com/schedulepro/schedule-pro-api/internal/handler"
	internalmiddleware "github.com/schedulepro/schedule-pro-api/internal/middleware"
	"github.com/schedulepro/schedule-pro-api/internal/normalizer"
	"github.com/schedulepro/schedule-pro-api/internal/service"
	"github.com/schedulepro/schedule-pro-api/pkg/config"
	"github.com/schedulepro/schedule-pro-api/pkg/export"
	"github.com/schedulepro/schedule-pro-api/pkg/logger"
	corsmiddleware "github.com/schedulepro/schedule-pro-api/pkg/middleware/cors"
	reqidmiddleware "github.com/schedulepro/schedule-pro-api/pkg/middleware/requestid"
)

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

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	store := catalog.New()
	norm := normalizer.New(logr)
	catalogSvc := service.NewCatalogService(store, norm, metricsSvc, logr)
	solverSvc := service.NewSolverService(store, validate, metricsSvc, logr, service.SolverServiceConfig{
		MaxResultsCap: cfg.Solver.MaxResultsCap,
	})

	if cfg.Catalog.Autoload {
		if _, err := os.Stat(cfg.Catalog.ScheduleDir); err == nil {
			if err := catalogSvc.LoadDirectory(cfg.Catalog.ScheduleDir); err != nil {
				logr.Sugar().Warnw("schedule autoload failed", "dir", cfg.Catalog.ScheduleDir, "error", err)
			}
		}
	}

	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc, store)
	catalogHandler := internalhandler.NewCatalogHandler(catalogSvc)
	solveHandler := internalhandler.NewSolveHandler(solverSvc)
	exportHandler := internalhandler.NewExportHandler(
		export.NewICSExporter(cfg.Export.ProductID, cfg.Export.CalendarName, cfg.Export.Timezone),
		export.NewCSVExporter(),
		validate,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/catalog/ingest", catalogHandler.Ingest)
	api.GET("/catalog", catalogHandler.List)
	api.GET("/catalog/courses", catalogHandler.Courses)
	api.POST("/solve", solveHandler.Solve)
	api.POST("/export/ics", exportHandler.ICS)
	api.POST("/export/csv", exportHandler.CSV)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"weekly-review/internal/config"
	"weekly-review/internal/handler"
	"weekly-review/internal/logger"
	"weekly-review/internal/middleware"
	"weekly-review/internal/model"
	"weekly-review/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	middleware.SetSecret(cfg.Auth.JWTSecret)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Week{}, &model.ReviewReport{}, &model.IntegrationReport{},
	); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	files := service.NewFileStore(cfg.Export.Dir)
	llm := service.NewLLMClient(cfg.LLM)
	reportSvc := service.NewReportService(db, files)
	userSvc := service.NewUserService(db)
	integrationSvc := service.NewIntegrationService(db, llm, files)

	authH := handler.NewAuthHandler(cfg.Auth)
	userH := handler.NewUserHandler(userSvc)
	weekH := handler.NewWeekHandler(reportSvc)
	reportH := handler.NewReportHandler(reportSvc, llm)
	downloadH := handler.NewDownloadHandler(reportSvc)
	integrationH := handler.NewIntegrationHandler(integrationSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", middleware.JWTAuth())

	api.GET("/users", userH.List)
	api.POST("/users", userH.Create)
	api.DELETE("/users/:id", userH.Delete)

	api.GET("/weeks", weekH.List)
	api.GET("/weeks/:weekId", weekH.Get)
	api.GET("/weeks/:weekId/download/:format", downloadH.Week)
	api.GET("/weeks/:weekId/summary.xlsx", downloadH.WeekSummaryXLSX)
	api.POST("/weeks/:weekId/integration", integrationH.Generate)
	api.GET("/weeks/:weekId/integration", integrationH.ListByWeek)
	api.DELETE("/integration/:id", integrationH.Delete)

	api.POST("/reports/save", reportH.Save)
	api.POST("/reports/generate-stream", reportH.GenerateStream)
	api.GET("/reports/detail/:id", reportH.Get)
	api.DELETE("/reports/delete/:id", reportH.Delete)
	api.PUT("/reports/lock/:id", reportH.Lock)
	api.PUT("/reports/unlock/:id", reportH.Unlock)
	api.PUT("/reports/ai-report/:id", reportH.UpdateAIReport)
	api.GET("/reports/download/:format/:id", downloadH.Report)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}

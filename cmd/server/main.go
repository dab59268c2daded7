package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradingdesk/internal/config"
	cronrunner "tradingdesk/internal/cron"
	"tradingdesk/internal/db"
	"tradingdesk/internal/handler"
	"tradingdesk/internal/logger"
	gormrepository "tradingdesk/internal/repository/gorm"
	"tradingdesk/internal/risk"
	"tradingdesk/internal/service"

	_ "tradingdesk/docs"
)

func main() {
	cfgPath := os.Getenv("TD_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TD_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	validator := &risk.Validator{Config: cfg.Risk}

	portfolioSvc := &service.PortfolioService{Repo: store, Logger: logger}
	rotationSvc := &service.RotationService{Repo: store, Logger: logger}
	operationSvc := &service.OperationService{Repo: store, Logger: logger, Validator: validator}
	drawdownSvc := &service.DrawdownService{Repo: store, Logger: logger}
	performanceSvc := &service.PerformanceService{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	portfolioHandler := &handler.PortfolioHandler{Service: portfolioSvc, Logger: logger}
	portfolioHandler.Register(engine)
	operationHandler := &handler.OperationHandler{Service: operationSvc, Logger: logger}
	operationHandler.Register(engine)
	rotationHandler := &handler.RotationHandler{Service: rotationSvc, Logger: logger}
	rotationHandler.Register(engine)
	drawdownHandler := &handler.DrawdownHandler{Service: drawdownSvc, Logger: logger}
	drawdownHandler.Register(engine)
	configHandler := &handler.SystemConfigHandler{Repo: store, Logger: logger}
	configHandler.Register(engine)
	performanceHandler := &handler.PerformanceHandler{Service: performanceSvc, Logger: logger}
	performanceHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err := cronRunner.Add("performance-rebuild", cfg.Cron.PerformanceRebuild, func(ctx context.Context) error {
			n, err := performanceSvc.Rebuild(ctx, time.Time{}, time.Time{})
			if err != nil {
				return err
			}
			logger.Info("performance rebuild ok", zap.Int("rows", n))
			return nil
		})
		if err != nil {
			logger.Warn("cron register performance rebuild failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

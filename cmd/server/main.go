// Package main runs the seminar platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seminarhub/backend/config"
	"github.com/seminarhub/backend/internal/attendance"
	"github.com/seminarhub/backend/internal/auth"
	"github.com/seminarhub/backend/internal/certificates"
	"github.com/seminarhub/backend/internal/emaillogs"
	"github.com/seminarhub/backend/internal/middleware"
	"github.com/seminarhub/backend/internal/registrations"
	"github.com/seminarhub/backend/internal/seminars"
	"github.com/seminarhub/backend/internal/store/postgres"
	"github.com/seminarhub/backend/internal/worker"
	"github.com/seminarhub/backend/pkg/database"
	"github.com/seminarhub/backend/pkg/queue"
	"github.com/seminarhub/backend/pkg/redis"
	"github.com/seminarhub/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	st := postgres.New(pool)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	emailQueue := queue.NewQueue(rdb.Client, logger)

	authHandler := auth.NewHandler(st, jwtService, logger)

	seminarCache := seminars.NewCache(rdb.Client, 5*time.Minute, logger)
	seminarSvc := seminars.NewService(st, seminarCache, logger)
	seminarHandler := seminars.NewHandler(seminarSvc, logger)

	registrationSvc := registrations.NewService(st, emailQueue, logger)
	registrationHandler := registrations.NewHandler(registrationSvc, logger)

	attendanceSvc := attendance.NewService(st, logger)
	attendanceHandler := attendance.NewHandler(attendanceSvc, logger)

	certificateSvc := certificates.NewService(st, emailQueue, logger)
	certificateHandler := certificates.NewHandler(certificateSvc, logger)

	emailLogsHandler := emaillogs.NewHandler(st, logger)

	// In-process email worker; cmd/worker runs the same loop standalone.
	emailProcessor := worker.NewEmailProcessor(st, emailQueue, worker.NewSender(cfg.SMTP), logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		adminOnly := middleware.RequireRole("admin")

		// Users (admin manages accounts and roles; speaker assignment source)
		api.GET("/users", adminOnly, authHandler.List)
		api.POST("/users", adminOnly, authHandler.CreateUser)
		api.PATCH("/users/:id", adminOnly, authHandler.Update)
		api.DELETE("/users/:id", adminOnly, authHandler.Delete)
		api.GET("/users/:id/registrations", registrationHandler.ListByUser)

		// Seminars
		api.GET("/seminars", seminarHandler.List)
		api.GET("/seminars/:id", seminarHandler.GetByID)
		api.POST("/seminars", adminOnly, seminarHandler.Create)
		api.PUT("/seminars/:id", adminOnly, seminarHandler.Update)
		api.DELETE("/seminars/:id", adminOnly, seminarHandler.Delete)
		api.GET("/seminars/:id/registrations", adminOnly, registrationHandler.ListBySeminar)
		api.GET("/seminars/:id/attendance", adminOnly, attendanceHandler.ListBySeminar)
		api.GET("/seminars/:id/emails", adminOnly, emailLogsHandler.ListBySeminar)

		// Registrations
		api.POST("/registrations", middleware.RequireRole("admin", "participant"), registrationHandler.Create)
		api.GET("/registrations", adminOnly, registrationHandler.List)
		api.PATCH("/registrations/:id/status", adminOnly, registrationHandler.UpdateStatus)
		api.POST("/registrations/:id/cancel", middleware.RequireRole("admin", "participant"), registrationHandler.Cancel)

		// Attendance
		api.PUT("/registrations/:id/attendance", adminOnly, attendanceHandler.Record)
		api.GET("/registrations/:id/attendance", attendanceHandler.GetByRegistration)

		// Certificates
		api.POST("/registrations/:id/certificate", adminOnly, certificateHandler.Issue)
		api.GET("/registrations/:id/certificate", certificateHandler.GetByRegistration)
		api.GET("/certificates", adminOnly, certificateHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go emailProcessor.Run(workerCtx)
	logger.Info("email worker started")

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

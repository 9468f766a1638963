package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/hms-api/api/swagger"
	"github.com/noah-isme/hms-api/internal/handler"
	"github.com/noah-isme/hms-api/internal/middleware"
	"github.com/noah-isme/hms-api/internal/repository"
	"github.com/noah-isme/hms-api/internal/service"
	"github.com/noah-isme/hms-api/pkg/cache"
	"github.com/noah-isme/hms-api/pkg/config"
	"github.com/noah-isme/hms-api/pkg/database"
	"github.com/noah-isme/hms-api/pkg/jobs"
	"github.com/noah-isme/hms-api/pkg/logger"
	"github.com/noah-isme/hms-api/pkg/middleware/cors"
	"github.com/noah-isme/hms-api/pkg/middleware/requestid"
)

// @title Hostel Management API
// @version 1.0
// @description REST API for hostel administration: students, rooms, attendance, fees, complaints, leaves and announcements.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := database.NewMongo(cfg.Mongo)
	if err != nil {
		log.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}()

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, db); err != nil {
		cancel()
		log.Fatal("index creation failed", zap.Error(err))
	}
	cancel()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	users := repository.NewUserRepository(db)
	students := repository.NewStudentRepository(db)
	rooms := repository.NewRoomRepository(db)
	roomRequests := repository.NewRoomRequestRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	fees := repository.NewFeeRepository(db)
	complaints := repository.NewComplaintRepository(db)
	leaves := repository.NewLeaveRepository(db)
	announcements := repository.NewAnnouncementRepository(db)
	notifications := repository.NewNotificationRepository(db)
	settings := repository.NewSettingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	validate := validator.New()

	notificationSvc := service.NewNotificationService(notifications, users, log)
	notificationSvc.Start(ctx, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		Logger:     log,
	})
	defer notificationSvc.Stop()

	authSvc := service.NewAuthService(users, cfg.JWT, validate, log)
	occupancySvc := service.NewOccupancyService(rooms, students, roomRequests, notificationSvc, validate, log)
	studentSvc := service.NewStudentService(students, rooms, users, occupancySvc, validate, log)
	attendanceSvc := service.NewAttendanceService(attendance, students, log)
	feeSvc := service.NewFeeService(fees, students, notificationSvc, validate, log)
	complaintSvc := service.NewComplaintService(complaints, notificationSvc, validate, log)
	leaveSvc := service.NewLeaveService(leaves, students, notificationSvc, validate, log)
	announcementSvc := service.NewAnnouncementService(announcements, notificationSvc, validate, log)
	messMenuSvc := service.NewMessMenuService(settings, notificationSvc, validate, log)
	exportSvc := service.NewExportService(students, fees, attendance, log)
	dashboardSvc := service.NewDashboardService(&service.RepositoryCounters{
		Students:      students,
		Rooms:         rooms,
		Fees:          fees,
		Complaints:    complaints,
		Leaves:        leaves,
		Requests:      roomRequests,
		Attendance:    attendance,
		Announcements: announcements,
	}, cacheRepo, cfg.Dashboard.CacheTTL, log)

	bootstrapCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	if err := authSvc.EnsureDefaultAdmin(bootstrapCtx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		cancel()
		log.Fatal("bootstrap admin failed", zap.Error(err))
	}
	if err := messMenuSvc.EnsureDefault(bootstrapCtx); err != nil {
		log.Warn("default mess menu setup failed", zap.Error(err))
	}
	cancel()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	metrics := middleware.NewHTTPMetrics()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(log))
	router.Use(cors.New(cfg.CORS.AllowedOrigins))
	router.Use(metrics.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		pingCtx, pingCancel := context.WithTimeout(c, 2*time.Second)
		defer pingCancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", metrics.Handler())
	if cfg.Env != config.EnvProduction {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Students:      handler.NewStudentHandler(studentSvc),
		Rooms:         handler.NewRoomHandler(occupancySvc),
		RoomRequests:  handler.NewRoomRequestHandler(occupancySvc, studentSvc),
		Attendance:    handler.NewAttendanceHandler(attendanceSvc, studentSvc),
		Fees:          handler.NewFeeHandler(feeSvc, studentSvc),
		Complaints:    handler.NewComplaintHandler(complaintSvc, studentSvc),
		Leaves:        handler.NewLeaveHandler(leaveSvc, studentSvc),
		Announcements: handler.NewAnnouncementHandler(announcementSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		MessMenu:      handler.NewMessMenuHandler(messMenuSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Reports:       handler.NewReportHandler(exportSvc),
	}
	handler.RegisterRoutes(router, cfg.APIPrefix, authSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

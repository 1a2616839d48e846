package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/acadtrack/tracker-api/api/swagger"
	"github.com/acadtrack/tracker-api/internal/handler"
	"github.com/acadtrack/tracker-api/internal/repository"
	"github.com/acadtrack/tracker-api/internal/service"
	"github.com/acadtrack/tracker-api/pkg/cache"
	"github.com/acadtrack/tracker-api/pkg/config"
	"github.com/acadtrack/tracker-api/pkg/database"
	"github.com/acadtrack/tracker-api/pkg/logger"
)

// @title Academic Tracker API
// @version 1.0.0
// @description Role-based backend for student attendance and marks
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db).WithMetrics(metricsSvc)
	courseRepo := repository.NewCourseRepository(db).WithMetrics(metricsSvc)
	attendanceRepo := repository.NewAttendanceRepository(db).WithMetrics(metricsSvc)
	marksRepo := repository.NewMarksRepository(db).WithMetrics(metricsSvc)
	sessionRepo := repository.NewSessionRepository(redisClient)

	authSvc := service.NewAuthService(userRepo, sessionRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, logr)
	courseSvc := service.NewCourseService(courseRepo, userRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, userRepo, courseRepo, validate, logr)
	marksSvc := service.NewMarksService(marksRepo, userRepo, courseRepo, validate, logr)
	exportSvc := service.NewExportService(attendanceRepo, marksRepo, courseRepo, logr)

	router := handler.NewRouter(handler.RouterDeps{
		Config:  cfg,
		Logger:  logr,
		DB:      db,
		Redis:   redisClient,
		Auth:    authSvc,
		Metrics: metricsSvc,

		AuthHandler:       handler.NewAuthHandler(authSvc, int(cfg.JWT.Expiration.Seconds())),
		UserHandler:       handler.NewUserHandler(userSvc),
		CourseHandler:     handler.NewCourseHandler(courseSvc),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceSvc, exportSvc),
		MarksHandler:      handler.NewMarksHandler(marksSvc, exportSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/acadtrack/tracker-api/internal/authz"
	"github.com/acadtrack/tracker-api/internal/middleware"
	"github.com/acadtrack/tracker-api/internal/service"
	"github.com/acadtrack/tracker-api/pkg/config"
	"github.com/acadtrack/tracker-api/pkg/logger"
	corsmiddleware "github.com/acadtrack/tracker-api/pkg/middleware/cors"
	reqidmiddleware "github.com/acadtrack/tracker-api/pkg/middleware/requestid"

	"go.uber.org/zap"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *sqlx.DB
	Redis   *redis.Client
	Auth    *service.AuthService
	Metrics *service.MetricsService

	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	CourseHandler     *CourseHandler
	AttendanceHandler *AttendanceHandler
	MarksHandler      *MarksHandler
}

// NewRouter builds the gin engine with middleware, infrastructure endpoints
// and the versioned API groups.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
				return
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.Config.APIPrefix)

	authed := middleware.JWT(deps.Auth, deps.Metrics)
	require := func(op authz.Operation) gin.HandlerFunc {
		return middleware.Require(op, deps.Metrics)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.POST("/logout", authed, deps.AuthHandler.Logout)
		auth.GET("/me", authed, deps.AuthHandler.Me)
	}

	users := api.Group("/users", authed)
	{
		users.GET("", require(authz.OpListUsers), deps.UserHandler.List)
		users.GET("/:id", require(authz.OpGetUser), deps.UserHandler.Get)
		users.DELETE("/:id", require(authz.OpDeleteUser), deps.UserHandler.Delete)
	}

	courses := api.Group("/courses", authed)
	{
		courses.GET("", require(authz.OpListCourses), deps.CourseHandler.List)
		courses.GET("/:id", require(authz.OpGetCourse), deps.CourseHandler.Get)
		courses.POST("", require(authz.OpCreateCourse), deps.CourseHandler.Create)
		courses.DELETE("/:id", require(authz.OpDeleteCourse), deps.CourseHandler.Delete)
	}

	attendance := api.Group("/attendance", authed)
	{
		attendance.POST("", require(authz.OpMarkAttendance), deps.AttendanceHandler.Mark)
		attendance.GET("/student/:studentId", require(authz.OpReadAttendanceByStudent), deps.AttendanceHandler.ListByStudent)
		attendance.GET("/course/:courseId", require(authz.OpReadAttendanceByCourse), deps.AttendanceHandler.ListByCourse)
		attendance.GET("/course/:courseId/export", require(authz.OpExportAttendance), deps.AttendanceHandler.Export)
		attendance.GET("/date/:date", require(authz.OpReadAttendanceByDate), deps.AttendanceHandler.ListByDate)
	}

	marks := api.Group("/marks", authed)
	{
		marks.POST("", require(authz.OpAddMarks), deps.MarksHandler.Add)
		marks.GET("/student/:studentId", require(authz.OpReadMarksByStudent), deps.MarksHandler.ListByStudent)
		marks.GET("/course/:courseId", require(authz.OpReadMarksByCourse), deps.MarksHandler.ListByCourse)
		marks.GET("/course/:courseId/export", require(authz.OpExportMarks), deps.MarksHandler.Export)
	}

	return r
}

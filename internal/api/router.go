package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffdesk/attendance-system/internal/api/handler"
	"github.com/staffdesk/attendance-system/internal/api/middleware"
	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
	"github.com/staffdesk/attendance-system/internal/core/service"
	mongodb "github.com/staffdesk/attendance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdesk/attendance-system/internal/infrastructure/db/redis"
	"github.com/staffdesk/attendance-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hr"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	var throttle ports.SignInThrottle
	if cfg.LoginMaxAttempts > 0 {
		throttle = redisdb.NewSignInThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginLockout)
	}
	authService := service.NewAuthService(userRepo, tokenService, throttle, log)
	userService := service.NewUserService(userRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, cfg.AllowConcurrentSessions, log)
	reportService := service.NewReportService(userRepo, attendanceRepo, log)

	guard := service.NewGuard(tokenService, userRepo)
	auth := middleware.Auth(guard)
	admin := middleware.RequireRole(domain.RoleAdmin)
	intern := middleware.RequireRole(domain.RoleIntern)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	internshipHandler := handler.NewInternshipHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)

	// --- Auth routes (public) ---
	e.POST("/api/auth/signup", authHandler.SignUp)
	e.POST("/api/auth/signin", authHandler.SignIn)

	// --- Profile (any authenticated role) ---
	e.GET("/api/user/profile", userHandler.Profile, auth)
	e.PUT("/api/user/profile", userHandler.UpdateProfile, auth)

	// --- Attendance (any authenticated role) ---
	attendance := e.Group("/api/attendance", auth)
	attendance.POST("/check-in", attendanceHandler.CheckIn)
	attendance.POST("/check-out", attendanceHandler.CheckOut)
	attendance.GET("/my-attendance", attendanceHandler.History)

	// --- Internship window (interns only) ---
	internship := e.Group("/api/internship", auth, intern)
	internship.POST("", internshipHandler.SetPeriod)
	internship.GET("", internshipHandler.GetPeriod)

	// --- Admin user management ---
	adminUsers := e.Group("/api/admin/users", auth)
	adminUsers.GET("", userHandler.ListUsers, admin)
	adminUsers.POST("", userHandler.CreateUser, admin)
	adminUsers.GET("/:userId", userHandler.GetUser, admin)
	adminUsers.PUT("/:userId", userHandler.UpdateUser, middleware.RequireSelfOrRole("userId", domain.RoleAdmin))
	adminUsers.DELETE("/:userId", userHandler.DeleteUser, admin)
	adminUsers.PUT("/:userId/password", userHandler.ResetPassword, admin)
	e.GET("/api/admin/roles", userHandler.ListRoles, auth, admin)

	// --- Reports and exports (admin only) ---
	reports := e.Group("/api/reports", auth, admin)
	reports.GET("/stats", reportHandler.Stats)
	reports.GET("/users", reportHandler.Users)
	reports.GET("/registrations", reportHandler.Registrations)
	reports.GET("/attendance", reportHandler.Attendance)

	export := e.Group("/api/export", auth, admin)
	export.GET("/users/csv", reportHandler.ExportUsersCSV)
	export.GET("/attendance/csv", reportHandler.ExportAttendanceCSV)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

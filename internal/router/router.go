package router

import (
	"time"

	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/handler"
	"github.com/enkellaering/admin-backend/internal/logger"
	"github.com/enkellaering/admin-backend/internal/middleware"
	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Teacher *handler.TeacherHandler
	Student *handler.StudentHandler
	Revenue *handler.RevenueHandler
	Setting *handler.SettingHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// publicLimiter throttles the unauthenticated routes.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	publicLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(logger.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	teacherAuth := middleware.RequireTeacherJWT(authService)
	singleSession := middleware.CheckSingleSession(authService)

	auth := router.Group("/api/v1/auth/teacher")
	{
		auth.POST("/login", publicLimiter.Middleware(), handlers.Auth.TeacherLogin)
		auth.POST("/logout", teacherAuth, singleSession, handlers.Auth.TeacherLogout)
		auth.GET("/me", teacherAuth, singleSession, middleware.NoStore(), handlers.Auth.GetTeacherProfile)
	}

	// ─── 2. Signup Group (Public, Rate Limited) ────────────────────────
	signup := router.Group("/api/v1/signup")
	signup.Use(publicLimiter.Middleware())
	{
		signup.POST("/teacher", handlers.Teacher.SignupTeacher)
	}

	// ─── 3. Teacher Group (JWT + Single Session) ───────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(teacherAuth, singleSession)
	{
		teacherAPI.DELETE("/classes/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Teacher.DeleteClass,
		)
	}

	// ─── 4. Admin Group (JWT + Single Session + RBAC) ──────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(teacherAuth, singleSession, middleware.NoStore())
	{
		adminAPI.GET("/teacher",
			middleware.RequirePermission(model.PermissionTeachersRead),
			handlers.Teacher.GetAdminTeacher,
		)

		// Revenue
		revenueGroup := adminAPI.Group("/revenue")
		revenueGroup.Use(middleware.RequirePermission(model.PermissionRevenueRead))
		{
			revenueGroup.GET("", handlers.Revenue.GetMonthlyRevenue)
			revenueGroup.POST("/refresh", handlers.Revenue.RefreshRevenue)
			revenueGroup.GET("/history", handlers.Revenue.GetHistory)
			revenueGroup.POST("/snapshots", handlers.Revenue.CreateSnapshot)
		}

		// New-student queue
		adminAPI.POST("/new-students/:id/hide",
			middleware.RequirePermission(model.PermissionStudentsHide),
			handlers.Student.HideNewStudent,
		)

		// App Settings Routes
		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", middleware.RequirePermission(model.PermissionSettingsRead), handlers.Setting.GetAllSettings)
			settingsGroup.PUT("", middleware.RequirePermission(model.PermissionSettingsWrite), handlers.Setting.UpdateSettings)
		}
	}

	return router
}

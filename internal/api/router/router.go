package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/api/handler"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/api/middleware"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
// blacklist / limiter 由 Redis 或进程内存储实现，limiter 为 nil 时不限流
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist middleware.TokenChecker,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，按 IP 限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(limiter, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 考试目录（公开）
		v1.GET("/exams", h.Catalog.ListExams)
		v1.GET("/exams/:id", h.Catalog.GetExam)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 个人资料
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.PUT("/me", h.User.UpdateCurrentUser)
			}

			// 学习提醒
			authorized.GET("/reminders", h.Reminder.Get)
			authorized.PUT("/reminders", h.Reminder.Update)

			// 学习计划
			plans := authorized.Group("/plans")
			{
				plans.POST("/preview", h.StudyPlan.Preview)
				plans.POST("", h.StudyPlan.Create)
				plans.GET("", h.StudyPlan.List)
				plans.GET("/:id", h.StudyPlan.Get)
				plans.DELETE("/:id", h.StudyPlan.Delete)

				// 进度
				plans.GET("/:id/progress", h.Progress.Summary)
				plans.PUT("/:id/progress", h.Progress.Toggle)

				// 导出
				plans.GET("/:id/export/ics", h.Export.ExportICS)
				plans.GET("/:id/export/xlsx", h.Export.ExportXLSX)
			}
		}
	}

	return r
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/api/handler"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/api/middleware"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/api/router"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/database"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/kvstore"
	applogger "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/logger"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("planner_timezone", cfg.Planner.Timezone),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 加载考试目录
	cat, err := catalog.Default(logger)
	if err != nil {
		logger.Fatal("加载考试目录失败", zap.Error(err))
	}

	// 5. 连接 Redis（可选：失败时退回进程内存储，黑名单与限流仅对单实例生效）
	var (
		store   kvstore.Store
		limiter middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，使用进程内存储", zap.Error(err))
		store = kvstore.NewMemory()
		limiter = kvstore.NewMemoryLimiter()
	} else {
		store = rdb
		limiter = rdb
	}

	// 6. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, cat, jwtMgr, store, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, kvstore.NewBlacklist(store), limiter, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

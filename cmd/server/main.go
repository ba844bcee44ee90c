package main

import (
	"github.com/blues/cps/internal/config"
	"github.com/blues/cps/internal/database"
	"github.com/blues/cps/internal/engine"
	"github.com/blues/cps/internal/logger"
	"github.com/blues/cps/internal/router"
	"github.com/blues/cps/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化排程引擎
	eng := engine.New(cfg.Calendar.ToCalendar())

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, eng, cfg)

	// 启动定时任务
	if cfg.Task.Enabled {
		task.Start(db, eng, cfg)
	}

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

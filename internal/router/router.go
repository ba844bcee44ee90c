package router

import (
	"github.com/blues/cps/internal/config"
	"github.com/blues/cps/internal/engine"
	"github.com/blues/cps/internal/handler"
	"github.com/blues/cps/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, eng *engine.Engine, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "critical-path-scheduling",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 计划相关路由
		scheduleHandler := handler.NewScheduleHandler(db, eng, cfg.Buffers)
		progressHandler := handler.NewProgressRecordHandler(logic.NewProgressRecordLogic(db))
		schedules := v1.Group("/schedules")
		{
			schedules.POST("", scheduleHandler.CreateSchedule)
			schedules.GET("", scheduleHandler.GetSchedules)
			schedules.GET("/stats", scheduleHandler.GetAllScheduleStats)
			schedules.GET("/:id", scheduleHandler.GetSchedule)
			schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)
			schedules.POST("/:id/progress", scheduleHandler.UpdateProgress)
			schedules.POST("/:id/optimize", scheduleHandler.OptimizeSchedule)
			schedules.GET("/:id/analysis", scheduleHandler.AnalyzeSchedule)
			schedules.GET("/:id/progress-records", progressHandler.GetScheduleProgressRecords)
			schedules.GET("/:id/progress-stats", progressHandler.GetProgressStats)
		}

	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cps/internal/config"
	"github.com/blues/cps/internal/engine"
	"github.com/blues/cps/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	scheduleLogic *logic.ScheduleLogic
	buffers       config.BufferConfig
}

func NewScheduleHandler(db *gorm.DB, eng *engine.Engine, buffers config.BufferConfig) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleLogic: logic.NewScheduleLogic(db, eng),
		buffers:       buffers,
	}
}

// CreateSchedule 创建进度计划
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 调用logic层排程
	schedule, diags, err := h.scheduleLogic.CreateSchedule(req.ToCreateRequest())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "计划创建成功",
		"schedule":    schedule,
		"diagnostics": diags,
	})
}

// GetSchedules 获取计划列表
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	// 调用logic层获取计划列表
	records, err := h.scheduleLogic.GetSchedules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedules": ToScheduleSummaryResponseList(records),
		"total":     len(records),
	})
}

// GetSchedule 获取计划完整快照
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	scheduleId := c.Param("id")

	// 调用logic层获取计划快照
	schedule, err := h.scheduleLogic.GetSchedule(scheduleId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// UpdateProgress 上报活动进度
func (h *ScheduleHandler) UpdateProgress(c *gin.Context) {
	scheduleId := c.Param("id")

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 调用logic层更新进度
	schedule, diags, err := h.scheduleLogic.UpdateProgress(scheduleId, req.Updates)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "进度更新成功",
		"schedule":    schedule,
		"diagnostics": diags,
	})
}

// OptimizeSchedule 优化计划
func (h *ScheduleHandler) OptimizeSchedule(c *gin.Context) {
	scheduleId := c.Param("id")

	var req OptimizeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 调用logic层优化计划
	schedule, diags, err := h.scheduleLogic.OptimizeSchedule(scheduleId, req.ToObjectives(h.buffers))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "计划优化成功",
		"schedule":    schedule,
		"diagnostics": diags,
	})
}

// AnalyzeSchedule 获取计划分析报告
func (h *ScheduleHandler) AnalyzeSchedule(c *gin.Context) {
	scheduleId := c.Param("id")

	// 调用logic层生成分析报告
	analysis, err := h.scheduleLogic.AnalyzeSchedule(scheduleId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// DeleteSchedule 归档计划
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleId := c.Param("id")

	// 调用logic层归档计划
	if err := h.scheduleLogic.DeleteSchedule(scheduleId); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "计划已归档"})
}

// GetAllScheduleStats 获取所有计划统计信息
func (h *ScheduleHandler) GetAllScheduleStats(c *gin.Context) {
	// 调用logic层获取统计信息
	stats, err := h.scheduleLogic.GetAllScheduleStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// statusForError 配置类错误归为请求错误，其余按服务端错误处理
func statusForError(err error) int {
	var cfgErr *engine.ConfigError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

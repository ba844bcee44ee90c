package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cps/internal/logic"
	"github.com/gin-gonic/gin"
)

// ProgressRecordHandler 进度记录处理器
type ProgressRecordHandler struct {
	progressLogic *logic.ProgressRecordLogic
}

// NewProgressRecordHandler 创建进度记录处理器
func NewProgressRecordHandler(progressLogic *logic.ProgressRecordLogic) *ProgressRecordHandler {
	return &ProgressRecordHandler{
		progressLogic: progressLogic,
	}
}

// GetScheduleProgressRecords 获取计划的进度上报记录
func (h *ProgressRecordHandler) GetScheduleProgressRecords(c *gin.Context) {
	scheduleId := c.Param("id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	// 调用logic层获取进度记录
	records, total, err := h.progressLogic.GetScheduleProgressRecords(scheduleId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取进度记录成功", GetScheduleProgressRecordsResponse{
		Records:    ToProgressRecordResponseList(records),
		Pagination: NewPagination(page, pageSize, total),
	})
}

// GetProgressStats 获取计划的进度上报统计
func (h *ProgressRecordHandler) GetProgressStats(c *gin.Context) {
	scheduleId := c.Param("id")

	// 调用logic层获取统计信息
	stats, err := h.progressLogic.GetProgressStats(scheduleId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取进度统计成功", GetProgressStatsResponse{Stats: stats})
}

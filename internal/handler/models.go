package handler

import (
	"time"

	"github.com/blues/cps/internal/config"
	"github.com/blues/cps/internal/engine"
	"github.com/blues/cps/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 请求模型

// CreateScheduleRequest 创建计划请求
type CreateScheduleRequest struct {
	ProjectName        string                     `json:"project_name" binding:"required"`
	StartDate          time.Time                  `json:"start_date" binding:"required"`
	WorkItems          []model.WorkItem           `json:"work_items" binding:"required"`
	Constraints        []model.ActivityConstraint `json:"constraints"`
	WeatherConstraints []model.WeatherConstraint  `json:"weather_constraints"`
	Risks              []model.RiskMitigation     `json:"risks"`
}

// ToCreateRequest 转成引擎请求
func (r CreateScheduleRequest) ToCreateRequest() engine.CreateRequest {
	return engine.CreateRequest{
		ProjectName:        r.ProjectName,
		StartDate:          r.StartDate,
		WorkItems:          r.WorkItems,
		Constraints:        r.Constraints,
		WeatherConstraints: r.WeatherConstraints,
		Risks:              r.Risks,
	}
}

// UpdateProgressRequest 进度上报请求
type UpdateProgressRequest struct {
	Updates []model.ProgressUpdate `json:"updates" binding:"required"`
}

// OptimizeScheduleRequest 优化计划请求。缓冲参数缺省时使用服务配置的默认值
type OptimizeScheduleRequest struct {
	PrioritizeFinish  bool     `json:"prioritize_finish"`
	PrioritizeCost    bool     `json:"prioritize_cost"`
	AllowOvertime     bool     `json:"allow_overtime"`
	AllowLeveling     bool     `json:"allow_leveling"`
	WeatherBufferDays *int     `json:"weather_buffer_days"`
	QualityBuffer     *float64 `json:"quality_buffer"`
	RiskBuffer        *float64 `json:"risk_buffer"`
}

// ToObjectives 转成优化目标，缺省缓冲用配置默认值补齐
func (r OptimizeScheduleRequest) ToObjectives(defaults config.BufferConfig) engine.Objectives {
	obj := engine.Objectives{
		PrioritizeFinish:  r.PrioritizeFinish,
		PrioritizeCost:    r.PrioritizeCost,
		AllowOvertime:     r.AllowOvertime,
		AllowLeveling:     r.AllowLeveling,
		WeatherBufferDays: defaults.WeatherDays,
		QualityBuffer:     defaults.Quality,
		RiskBuffer:        defaults.Risk,
	}
	if r.WeatherBufferDays != nil {
		obj.WeatherBufferDays = *r.WeatherBufferDays
	}
	if r.QualityBuffer != nil {
		obj.QualityBuffer = *r.QualityBuffer
	}
	if r.RiskBuffer != nil {
		obj.RiskBuffer = *r.RiskBuffer
	}
	return obj
}

// 计划相关响应模型

// ScheduleSummaryResponse 计划摘要响应模型
type ScheduleSummaryResponse struct {
	ScheduleId        string    `json:"scheduleId"`
	ProjectName       string    `json:"projectName"`
	Status            string    `json:"status"`
	StartDate         time.Time `json:"startDate"`
	BaselineFinish    time.Time `json:"baselineFinish"`
	ForecastFinish    time.Time `json:"forecastFinish"`
	TotalDurationDays int       `json:"totalDurationDays"`
	ActivityCount     int       `json:"activityCount"`
	CriticalCount     int       `json:"criticalCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// GetSchedulesResponse 获取计划列表响应
type GetSchedulesResponse struct {
	Schedules []ScheduleSummaryResponse `json:"schedules"`
}

// 进度记录相关响应模型

// ProgressRecordResponse 进度记录响应模型
type ProgressRecordResponse struct {
	ID           uint       `json:"id"`
	ScheduleId   string     `json:"scheduleId"`
	ActivityId   string     `json:"activityId"`
	Completion   float64    `json:"completion"`
	ActualStart  *time.Time `json:"actualStart,omitempty"`
	ActualFinish *time.Time `json:"actualFinish,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// GetScheduleProgressRecordsResponse 获取计划进度记录响应
type GetScheduleProgressRecordsResponse struct {
	Records    []ProgressRecordResponse `json:"records"`
	Pagination Pagination               `json:"pagination"`
}

// GetProgressStatsResponse 获取进度统计响应
type GetProgressStatsResponse struct {
	Stats map[string]interface{} `json:"stats"`
}

// 转换函数

// ToScheduleSummaryResponse 将数据库模型转换为响应模型
func ToScheduleSummaryResponse(record *model.ScheduleModel) ScheduleSummaryResponse {
	return ScheduleSummaryResponse{
		ScheduleId:        record.ScheduleId,
		ProjectName:       record.ProjectName,
		Status:            record.Status,
		StartDate:         record.StartDate,
		BaselineFinish:    record.BaselineFinish,
		ForecastFinish:    record.ForecastFinish,
		TotalDurationDays: record.TotalDurationDays,
		ActivityCount:     record.ActivityCount,
		CriticalCount:     record.CriticalCount,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}

// ToScheduleSummaryResponseList 将数据库模型列表转换为响应模型列表
func ToScheduleSummaryResponseList(records []model.ScheduleModel) []ScheduleSummaryResponse {
	result := make([]ScheduleSummaryResponse, len(records))
	for i, record := range records {
		result[i] = ToScheduleSummaryResponse(&record)
	}
	return result
}

// ToProgressRecordResponse 将进度记录数据库模型转换为响应模型
func ToProgressRecordResponse(record *model.ProgressRecordModel) ProgressRecordResponse {
	return ProgressRecordResponse{
		ID:           uint(record.Id),
		ScheduleId:   record.ScheduleId,
		ActivityId:   record.ActivityId,
		Completion:   record.Completion,
		ActualStart:  record.ActualStart,
		ActualFinish: record.ActualFinish,
		CreatedAt:    record.CreatedAt,
	}
}

// ToProgressRecordResponseList 将进度记录数据库模型列表转换为响应模型列表
func ToProgressRecordResponseList(records []model.ProgressRecordModel) []ProgressRecordResponse {
	result := make([]ProgressRecordResponse, len(records))
	for i, record := range records {
		result[i] = ToProgressRecordResponse(&record)
	}
	return result
}

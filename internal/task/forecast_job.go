package task

import (
	"encoding/json"
	"time"

	"github.com/blues/cps/internal/config"
	"github.com/blues/cps/internal/engine"
	"github.com/blues/cps/internal/logger"
	"github.com/blues/cps/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ForecastRefreshJob 预测完工刷新任务：对施工中的计划重算预测完工、
// 阶段进度与里程碑状态，让时间推移产生的偏差及时落库
type ForecastRefreshJob struct {
	db     *gorm.DB
	config *config.Config
	engine *engine.Engine
}

// NewForecastRefreshJob 创建预测完工刷新任务
func NewForecastRefreshJob(db *gorm.DB, cfg *config.Config, eng *engine.Engine) *ForecastRefreshJob {
	return &ForecastRefreshJob{
		db:     db,
		config: cfg,
		engine: eng,
	}
}

// GetName 获取任务名称
func (j *ForecastRefreshJob) GetName() string {
	return "schedule_forecast_refresher"
}

// GetSchedule 获取调度配置
func (j *ForecastRefreshJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ForecastRefreshJob) Execute() {
	logger.Info("Starting schedule forecast refresh task")

	now := time.Now()

	// 查找施工中的计划
	var records []model.ScheduleModel
	err := j.db.Where("status = ?", model.ScheduleInProgress).Find(&records).Error
	if err != nil {
		logger.Error("Failed to fetch in-progress schedules: %v", err)
		return
	}

	refreshedCount := 0

	for i := range records {
		record := &records[i]

		var schedule model.Schedule
		if err := json.Unmarshal([]byte(record.Data), &schedule); err != nil {
			logger.Error("Failed to decode snapshot for schedule %s: %v", record.ScheduleId, err)
			continue
		}

		// 空更新批次：不写进度，只重算时间推移后的派生状态
		refreshed, _, err := j.engine.UpdateProgress(&schedule, nil, now)
		if err != nil {
			logger.Error("Failed to refresh schedule %s: %v", record.ScheduleId, err)
			continue
		}

		data, err := json.Marshal(refreshed)
		if err != nil {
			logger.Error("Failed to encode snapshot for schedule %s: %v", record.ScheduleId, err)
			continue
		}
		if string(data) == record.Data {
			continue
		}

		refreshed.UpdatedAt = now
		data, err = json.Marshal(refreshed)
		if err != nil {
			logger.Error("Failed to encode snapshot for schedule %s: %v", record.ScheduleId, err)
			continue
		}

		record.Status = string(refreshed.Status)
		record.ForecastFinish = refreshed.ForecastFinish
		record.Data = string(data)
		if err := j.db.Save(record).Error; err != nil {
			logger.Error("Failed to save schedule %s: %v", record.ScheduleId, err)
			continue
		}

		logger.Info("Refreshed schedule %s: forecast finish %s",
			record.ScheduleId, refreshed.ForecastFinish.Format("2006-01-02"))
		refreshedCount++
	}

	logger.Info("Schedule forecast refresh completed. Refreshed %d schedules", refreshedCount)
}

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

// MilestoneStatusJob 里程碑状态任务：日期越过里程碑目标而进度没跟上时，
// 把里程碑翻成受威胁或已错过。已发布但未开工的计划也在扫描范围内
type MilestoneStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewMilestoneStatusJob 创建里程碑状态任务
func NewMilestoneStatusJob(db *gorm.DB, cfg *config.Config) *MilestoneStatusJob {
	return &MilestoneStatusJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *MilestoneStatusJob) GetName() string {
	return "milestone_status_updater"
}

// GetSchedule 获取调度配置
func (j *MilestoneStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *MilestoneStatusJob) Execute() {
	logger.Info("Starting milestone status update task")

	now := time.Now()

	// 查找已发布和施工中的计划
	var records []model.ScheduleModel
	err := j.db.Where("status IN ?", []model.ScheduleStatus{
		model.SchedulePublished,
		model.ScheduleInProgress,
	}).Find(&records).Error

	if err != nil {
		logger.Error("Failed to fetch schedules: %v", err)
		return
	}

	updatedCount := 0

	for i := range records {
		record := &records[i]

		var schedule model.Schedule
		if err := json.Unmarshal([]byte(record.Data), &schedule); err != nil {
			logger.Error("Failed to decode snapshot for schedule %s: %v", record.ScheduleId, err)
			continue
		}

		before := make(map[string]model.MilestoneStatus, len(schedule.Milestones))
		for _, m := range schedule.Milestones {
			before[m.Id] = m.Status
		}

		engine.RefreshMilestones(&schedule, now)

		changed := false
		for _, m := range schedule.Milestones {
			if before[m.Id] != m.Status {
				logger.Info("Milestone %s (%s) on schedule %s changed from %s to %s",
					m.Id, m.Name, record.ScheduleId, before[m.Id], m.Status)
				changed = true
			}
		}
		if !changed {
			continue
		}

		schedule.UpdatedAt = now
		data, err := json.Marshal(&schedule)
		if err != nil {
			logger.Error("Failed to encode snapshot for schedule %s: %v", record.ScheduleId, err)
			continue
		}

		record.Data = string(data)
		if err := j.db.Save(record).Error; err != nil {
			logger.Error("Failed to save schedule %s: %v", record.ScheduleId, err)
			continue
		}

		updatedCount++
	}

	logger.Info("Milestone status update completed. Updated %d schedules", updatedCount)
}

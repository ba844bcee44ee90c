package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blues/cps/internal/engine"
	"github.com/blues/cps/internal/model"
	"gorm.io/gorm"
)

// ScheduleLogic 进度计划业务逻辑
type ScheduleLogic struct {
	db     *gorm.DB
	engine *engine.Engine
}

// NewScheduleLogic 创建进度计划业务逻辑
func NewScheduleLogic(db *gorm.DB, eng *engine.Engine) *ScheduleLogic {
	return &ScheduleLogic{db: db, engine: eng}
}

// CreateSchedule 从工作项排程出新计划并持久化
func (s *ScheduleLogic) CreateSchedule(req engine.CreateRequest) (*model.Schedule, []model.Diagnostic, error) {
	if req.ProjectName == "" {
		return nil, nil, errors.New("项目名称不能为空")
	}

	schedule, diags, err := s.engine.CreateSchedule(req)
	if err != nil {
		return nil, diags, err
	}

	record, err := toScheduleRecord(schedule)
	if err != nil {
		return nil, diags, err
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, diags, fmt.Errorf("保存计划失败: %w", err)
	}

	return schedule, diags, nil
}

// GetSchedules 获取计划列表
func (s *ScheduleLogic) GetSchedules() ([]model.ScheduleModel, error) {
	var records []model.ScheduleModel

	if err := s.db.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("获取计划列表失败: %w", err)
	}

	return records, nil
}

// GetSchedule 获取计划完整快照
func (s *ScheduleLogic) GetSchedule(scheduleId string) (*model.Schedule, error) {
	record, err := s.findRecord(scheduleId)
	if err != nil {
		return nil, err
	}
	return fromScheduleRecord(record)
}

// UpdateProgress 写入一批进度上报：引擎重算预测完工后，
// 快照与审计记录在同一事务里落库。
func (s *ScheduleLogic) UpdateProgress(scheduleId string, updates []model.ProgressUpdate) (*model.Schedule, []model.Diagnostic, error) {
	if len(updates) == 0 {
		return nil, nil, errors.New("进度更新不能为空")
	}

	record, err := s.findRecord(scheduleId)
	if err != nil {
		return nil, nil, err
	}
	schedule, err := fromScheduleRecord(record)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	updated, diags, err := s.engine.UpdateProgress(schedule, updates, now)
	if err != nil {
		return nil, diags, err
	}
	updated.UpdatedAt = now

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, diags, fmt.Errorf("序列化计划快照失败: %w", err)
	}

	// 开始事务
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	syncScheduleRecord(record, updated, data)
	if err := tx.Save(record).Error; err != nil {
		tx.Rollback()
		return nil, diags, fmt.Errorf("保存计划失败: %w", err)
	}

	// 审计留痕：只记快照里真实存在的活动
	for _, u := range updates {
		if updated.ActivityById(u.ActivityId) == nil {
			continue
		}
		entry := &model.ProgressRecordModel{
			ScheduleId:   scheduleId,
			ActivityId:   u.ActivityId,
			Completion:   u.Completion,
			ActualStart:  u.ActualStart,
			ActualFinish: u.ActualFinish,
		}
		if err := tx.Create(entry).Error; err != nil {
			tx.Rollback()
			return nil, diags, fmt.Errorf("保存进度记录失败: %w", err)
		}
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, diags, err
	}

	return updated, diags, nil
}

// OptimizeSchedule 对计划执行一轮优化并持久化优化结果
func (s *ScheduleLogic) OptimizeSchedule(scheduleId string, objectives engine.Objectives) (*model.Schedule, []model.Diagnostic, error) {
	record, err := s.findRecord(scheduleId)
	if err != nil {
		return nil, nil, err
	}
	schedule, err := fromScheduleRecord(record)
	if err != nil {
		return nil, nil, err
	}

	optimized, diags, err := s.engine.OptimizeSchedule(schedule, objectives)
	if err != nil {
		return nil, diags, err
	}
	optimized.UpdatedAt = time.Now()

	data, err := json.Marshal(optimized)
	if err != nil {
		return nil, diags, fmt.Errorf("序列化计划快照失败: %w", err)
	}
	syncScheduleRecord(record, optimized, data)
	if err := s.db.Save(record).Error; err != nil {
		return nil, diags, fmt.Errorf("保存计划失败: %w", err)
	}

	return optimized, diags, nil
}

// AnalyzeSchedule 生成计划分析报告
func (s *ScheduleLogic) AnalyzeSchedule(scheduleId string) (*engine.Analysis, error) {
	schedule, err := s.GetSchedule(scheduleId)
	if err != nil {
		return nil, err
	}
	return s.engine.AnalyzeSchedule(schedule), nil
}

// DeleteSchedule 归档计划，进度记录保留用于审计
func (s *ScheduleLogic) DeleteSchedule(scheduleId string) error {
	record, err := s.findRecord(scheduleId)
	if err != nil {
		return err
	}
	schedule, err := fromScheduleRecord(record)
	if err != nil {
		return err
	}

	schedule.Status = model.ScheduleArchived
	schedule.UpdatedAt = time.Now()
	data, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("序列化计划快照失败: %w", err)
	}

	syncScheduleRecord(record, schedule, data)
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("归档计划失败: %w", err)
	}
	return nil
}

// GetAllScheduleStats 获取所有计划的统计信息
func (s *ScheduleLogic) GetAllScheduleStats() (map[string]interface{}, error) {
	// 统计计划总数
	var totalSchedules int64
	s.db.Model(&model.ScheduleModel{}).Count(&totalSchedules)

	// 统计各状态计划数量
	var draftSchedules int64
	s.db.Model(&model.ScheduleModel{}).
		Where("status = ?", model.ScheduleDraft).
		Count(&draftSchedules)

	var publishedSchedules int64
	s.db.Model(&model.ScheduleModel{}).
		Where("status = ?", model.SchedulePublished).
		Count(&publishedSchedules)

	var inProgressSchedules int64
	s.db.Model(&model.ScheduleModel{}).
		Where("status = ?", model.ScheduleInProgress).
		Count(&inProgressSchedules)

	var completedSchedules int64
	s.db.Model(&model.ScheduleModel{}).
		Where("status = ?", model.ScheduleCompleted).
		Count(&completedSchedules)

	var archivedSchedules int64
	s.db.Model(&model.ScheduleModel{}).
		Where("status = ?", model.ScheduleArchived).
		Count(&archivedSchedules)

	// 统计总活动数与平均工期
	var totalActivities int64
	s.db.Model(&model.ScheduleModel{}).
		Select("COALESCE(SUM(activity_count), 0)").
		Scan(&totalActivities)

	var avgDuration float64
	s.db.Model(&model.ScheduleModel{}).
		Select("COALESCE(AVG(total_duration_days), 0)").
		Scan(&avgDuration)

	return map[string]interface{}{
		"totalSchedules":      totalSchedules,
		"draftSchedules":      draftSchedules,
		"publishedSchedules":  publishedSchedules,
		"inProgressSchedules": inProgressSchedules,
		"completedSchedules":  completedSchedules,
		"archivedSchedules":   archivedSchedules,
		"totalActivities":     totalActivities,
		"avgDurationDays":     avgDuration,
	}, nil
}

// findRecord 按计划ID查找持久化记录
func (s *ScheduleLogic) findRecord(scheduleId string) (*model.ScheduleModel, error) {
	var record model.ScheduleModel
	if err := s.db.Where("schedule_id = ?", scheduleId).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("计划不存在")
		}
		return nil, fmt.Errorf("获取计划失败: %w", err)
	}
	return &record, nil
}

// toScheduleRecord 把计划快照转成持久化记录
func toScheduleRecord(schedule *model.Schedule) (*model.ScheduleModel, error) {
	data, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("序列化计划快照失败: %w", err)
	}

	record := &model.ScheduleModel{ScheduleId: schedule.Id}
	syncScheduleRecord(record, schedule, data)
	return record, nil
}

// syncScheduleRecord 用快照刷新持久化记录的冗余列
func syncScheduleRecord(record *model.ScheduleModel, schedule *model.Schedule, data []byte) {
	record.ProjectName = schedule.ProjectName
	record.Status = string(schedule.Status)
	record.StartDate = schedule.StartDate
	record.BaselineFinish = schedule.BaselineFinish
	record.ForecastFinish = schedule.ForecastFinish
	record.TotalDurationDays = schedule.TotalDurationDays
	record.ActivityCount = len(schedule.Activities)
	record.CriticalCount = len(schedule.CriticalPath)
	record.Data = string(data)
}

// fromScheduleRecord 从持久化记录还原计划快照
func fromScheduleRecord(record *model.ScheduleModel) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := json.Unmarshal([]byte(record.Data), &schedule); err != nil {
		return nil, fmt.Errorf("解析计划快照失败: %w", err)
	}
	return &schedule, nil
}

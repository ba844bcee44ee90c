package logic

import (
	"fmt"

	"github.com/blues/cps/internal/model"
	"gorm.io/gorm"
)

// ProgressRecordLogic 进度记录业务逻辑
type ProgressRecordLogic struct {
	db *gorm.DB
}

// NewProgressRecordLogic 创建进度记录业务逻辑
func NewProgressRecordLogic(db *gorm.DB) *ProgressRecordLogic {
	return &ProgressRecordLogic{db: db}
}

// GetScheduleProgressRecords 获取计划的进度上报记录
func (p *ProgressRecordLogic) GetScheduleProgressRecords(scheduleId string, page, pageSize int) ([]model.ProgressRecordModel, int64, error) {
	var records []model.ProgressRecordModel
	var total int64

	// 获取总数
	if err := p.db.Model(&model.ProgressRecordModel{}).Where("schedule_id = ?", scheduleId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := p.db.Where("schedule_id = ?", scheduleId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetProgressStats 获取计划的进度上报统计
func (p *ProgressRecordLogic) GetProgressStats(scheduleId string) (map[string]interface{}, error) {
	var stats struct {
		TotalReports     int64   `json:"total_reports"`
		ReportedCount    int64   `json:"reported_count"`
		CompletedReports int64   `json:"completed_reports"`
		AvgCompletion    float64 `json:"avg_completion"`
	}

	// 总上报条数
	if err := p.db.Model(&model.ProgressRecordModel{}).Where("schedule_id = ?", scheduleId).Count(&stats.TotalReports).Error; err != nil {
		return nil, fmt.Errorf("获取进度上报总数失败: %w", err)
	}

	// 上报过的活动数（去重）
	if err := p.db.Model(&model.ProgressRecordModel{}).
		Where("schedule_id = ?", scheduleId).
		Distinct("activity_id").
		Count(&stats.ReportedCount).Error; err != nil {
		return nil, fmt.Errorf("获取上报活动数失败: %w", err)
	}

	// 完工上报条数
	if err := p.db.Model(&model.ProgressRecordModel{}).
		Where("schedule_id = ? AND completion >= ?", scheduleId, 100).
		Count(&stats.CompletedReports).Error; err != nil {
		return nil, fmt.Errorf("获取完工上报数失败: %w", err)
	}

	// 平均完成百分比
	if err := p.db.Model(&model.ProgressRecordModel{}).
		Where("schedule_id = ?", scheduleId).
		Select("COALESCE(AVG(completion), 0)").
		Scan(&stats.AvgCompletion).Error; err != nil {
		return nil, fmt.Errorf("获取平均完成度失败: %w", err)
	}

	return map[string]interface{}{
		"schedule_id":       scheduleId,
		"total_reports":     stats.TotalReports,
		"reported_count":    stats.ReportedCount,
		"completed_reports": stats.CompletedReports,
		"avg_completion":    stats.AvgCompletion,
	}, nil
}

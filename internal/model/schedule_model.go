package model

import (
	"time"

	"gorm.io/gorm"
)

// ScheduleModel 进度计划持久化记录（快照以JSON存入data列）
type ScheduleModel struct {
	Id        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ScheduleId  string `json:"schedule_id" gorm:"uniqueIndex;not null"` // 计划UUID
	ProjectName string `json:"project_name" gorm:"not null"`
	Status      string `json:"status" gorm:"default:'draft'"`           // draft, published, in_progress, completed, archived

	StartDate         time.Time `json:"start_date" gorm:"not null"`
	BaselineFinish    time.Time `json:"baseline_finish"`
	ForecastFinish    time.Time `json:"forecast_finish"`
	TotalDurationDays int       `json:"total_duration_days"`
	ActivityCount     int       `json:"activity_count"`
	CriticalCount     int       `json:"critical_count"` // 关键活动数量

	Data string `json:"data" gorm:"type:text"` // 完整快照JSON
}

// TableName 自定义表名
func (ScheduleModel) TableName() string {
	return "schedule"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// ProgressRecordModel 进度上报记录（审计留痕）
type ProgressRecordModel struct {
	Id        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ScheduleId   string     `json:"schedule_id" gorm:"index;not null"`
	ActivityId   string     `json:"activity_id" gorm:"not null"`
	Completion   float64    `json:"completion"` // 上报的完成百分比
	ActualStart  *time.Time `json:"actual_start"`
	ActualFinish *time.Time `json:"actual_finish"`
}

// TableName 自定义表名
func (ProgressRecordModel) TableName() string {
	return "progress_record"
}

// ProgressUpdate 单条进度更新（API输入）
type ProgressUpdate struct {
	ActivityId   string     `json:"activity_id" binding:"required"`
	Completion   float64    `json:"completion"`
	ActualStart  *time.Time `json:"actual_start,omitempty"`
	ActualFinish *time.Time `json:"actual_finish,omitempty"`
}

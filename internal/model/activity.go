package model

import (
	"time"
)

// Activity 施工活动（进度网络中的节点）
type Activity struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PhaseId     string `json:"phase_id"` // 所属阶段ID（每个活动恰好属于一个阶段）

	DurationDays int       `json:"duration_days"` // 工期（天），缓冲/压缩会修改
	StartDate    time.Time `json:"start_date"`    // 名义开始日期
	EndDate      time.Time `json:"end_date"`      // 名义结束日期

	Predecessors []PredecessorLink    `json:"predecessors,omitempty"` // 前置依赖
	SuccessorIds []string             `json:"successor_ids,omitempty"`
	Demands      []ResourceDemand     `json:"demands,omitempty"`      // 资源需求
	Constraints  []ActivityConstraint `json:"constraints,omitempty"`  // 时间约束

	Status     ActivityStatus `json:"status"`
	Completion float64        `json:"completion"` // 完成百分比 0-100

	// CPM 时间参数
	EarlyStart  time.Time `json:"early_start"`
	EarlyFinish time.Time `json:"early_finish"`
	LateStart   time.Time `json:"late_start"`
	LateFinish  time.Time `json:"late_finish"`
	FloatDays   int       `json:"float_days"` // 总时差（天，非负）
	Critical    bool      `json:"critical"`   // 是否位于关键路径（时差为0）

	WeatherSensitive   bool       `json:"weather_sensitive"`             // 是否受天气影响
	QualityCheckpoints []string   `json:"quality_checkpoints,omitempty"` // 质量检查点
	ActualStart        *time.Time `json:"actual_start,omitempty"`
	ActualFinish       *time.Time `json:"actual_finish,omitempty"`
}

// ActivityStatus 活动状态
type ActivityStatus string

const (
	ActivityNotStarted ActivityStatus = "not_started" // 未开始
	ActivityInProgress ActivityStatus = "in_progress" // 进行中
	ActivityCompleted  ActivityStatus = "completed"   // 已完成
	ActivityDelayed    ActivityStatus = "delayed"     // 延期
	ActivityOnHold     ActivityStatus = "on_hold"     // 暂停
)

// DependencyKind 依赖关系类型（四种标准搭接关系）
type DependencyKind string

const (
	FinishStart  DependencyKind = "FS" // 完成-开始
	StartStart   DependencyKind = "SS" // 开始-开始
	FinishFinish DependencyKind = "FF" // 完成-完成
	StartFinish  DependencyKind = "SF" // 开始-完成
)

// ValidDependencyKind 校验依赖关系类型是否合法
func ValidDependencyKind(k DependencyKind) bool {
	switch k {
	case FinishStart, StartStart, FinishFinish, StartFinish:
		return true
	}
	return false
}

// PredecessorLink 前置依赖边
type PredecessorLink struct {
	ActivityId string         `json:"activity_id"` // 前置活动ID
	Kind       DependencyKind `json:"kind"`
	LagDays    int            `json:"lag_days"`    // 搭接天数（正为滞后，负为提前）
}

// ConstraintKind 活动约束类型
type ConstraintKind string

const (
	ConstraintNotEarlierThan ConstraintKind = "not_earlier_than" // 不早于某日开始
)

// ActivityConstraint 活动时间约束
type ActivityConstraint struct {
	Kind   ConstraintKind `json:"kind"`
	Date   time.Time      `json:"date"`
	Reason string         `json:"reason,omitempty"` // 约束来源说明
}

// Clone 深拷贝活动
func (a *Activity) Clone() *Activity {
	cp := *a
	cp.Predecessors = append([]PredecessorLink(nil), a.Predecessors...)
	cp.SuccessorIds = append([]string(nil), a.SuccessorIds...)
	cp.Demands = append([]ResourceDemand(nil), a.Demands...)
	cp.Constraints = append([]ActivityConstraint(nil), a.Constraints...)
	cp.QualityCheckpoints = append([]string(nil), a.QualityCheckpoints...)
	if a.ActualStart != nil {
		t := *a.ActualStart
		cp.ActualStart = &t
	}
	if a.ActualFinish != nil {
		t := *a.ActualFinish
		cp.ActualFinish = &t
	}
	return &cp
}

// NotEarlierThan 返回活动全部"不早于"约束中最晚的日期；没有约束时返回零值
func (a *Activity) NotEarlierThan() time.Time {
	var latest time.Time
	for _, c := range a.Constraints {
		if c.Kind == ConstraintNotEarlierThan && c.Date.After(latest) {
			latest = c.Date
		}
	}
	return latest
}

// Started 活动是否已实际开工：有进度、有实际开始日期，或状态已流转。
// 延期活动凭进度痕迹仍算已开工
func (a *Activity) Started() bool {
	if a.Completion > 0 || a.ActualStart != nil {
		return true
	}
	return a.Status == ActivityInProgress || a.Status == ActivityCompleted
}

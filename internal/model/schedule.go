package model

import (
	"time"
)

// Schedule 进度计划（一次排程的完整快照）
type Schedule struct {
	Id          string         `json:"id"`
	ProjectName string         `json:"project_name"`
	Status      ScheduleStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	StartDate         time.Time `json:"start_date"`
	BaselineFinish    time.Time `json:"baseline_finish"`     // 基准完工日期
	ForecastFinish    time.Time `json:"forecast_finish"`     // 预测完工日期（进度更新后重算）
	TotalDurationDays int       `json:"total_duration_days"` // 总工期（天）
	BufferDays        int       `json:"buffer_days"`         // 已施加的整体缓冲天数

	Phases     []*Phase     `json:"phases"`
	Activities []*Activity  `json:"activities"`
	Milestones []*Milestone `json:"milestones,omitempty"`

	CriticalPath []string `json:"critical_path,omitempty"` // 关键路径活动ID（按拓扑顺序）

	WeatherConstraints []WeatherConstraint `json:"weather_constraints,omitempty"`
	Risks              []RiskMitigation    `json:"risks,omitempty"`
}

// ScheduleStatus 进度计划状态
type ScheduleStatus string

const (
	ScheduleDraft      ScheduleStatus = "draft"       // 草稿
	SchedulePublished  ScheduleStatus = "published"   // 已发布
	ScheduleInProgress ScheduleStatus = "in_progress" // 施工中
	ScheduleCompleted  ScheduleStatus = "completed"   // 已完工
	ScheduleArchived   ScheduleStatus = "archived"    // 已归档
)

// ActivityById 按ID查找活动
func (s *Schedule) ActivityById(id string) *Activity {
	for _, a := range s.Activities {
		if a.Id == id {
			return a
		}
	}
	return nil
}

// PhaseById 按ID查找阶段
func (s *Schedule) PhaseById(id string) *Phase {
	for _, p := range s.Phases {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// PhaseByCategory 按类别查找阶段
func (s *Schedule) PhaseByCategory(cat PhaseCategory) *Phase {
	for _, p := range s.Phases {
		if p.Category == cat {
			return p
		}
	}
	return nil
}

// PhaseActivities 返回某阶段拥有的全部活动
func (s *Schedule) PhaseActivities(phaseId string) []*Activity {
	var acts []*Activity
	for _, a := range s.Activities {
		if a.PhaseId == phaseId {
			acts = append(acts, a)
		}
	}
	return acts
}

// Clone 深拷贝进度计划（流水线各阶段在快照上工作，不修改输入）
func (s *Schedule) Clone() *Schedule {
	cp := *s
	cp.Phases = make([]*Phase, len(s.Phases))
	for i, p := range s.Phases {
		cp.Phases[i] = p.Clone()
	}
	cp.Activities = make([]*Activity, len(s.Activities))
	for i, a := range s.Activities {
		cp.Activities[i] = a.Clone()
	}
	cp.Milestones = make([]*Milestone, len(s.Milestones))
	for i, m := range s.Milestones {
		cp.Milestones[i] = m.Clone()
	}
	cp.CriticalPath = append([]string(nil), s.CriticalPath...)
	cp.WeatherConstraints = append([]WeatherConstraint(nil), s.WeatherConstraints...)
	cp.Risks = append([]RiskMitigation(nil), s.Risks...)
	return &cp
}

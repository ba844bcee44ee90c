package model

import (
	"time"
)

// Milestone 里程碑（由里程碑阶段的结束日期派生）
type Milestone struct {
	Id           string          `json:"id"`
	Name         string          `json:"name"`
	PhaseId      string          `json:"phase_id"`               // 派生来源阶段ID
	TargetDate   time.Time       `json:"target_date"`
	AchievedDate *time.Time      `json:"achieved_date,omitempty"`
	Status       MilestoneStatus `json:"status"`
	ActivityIds  []string        `json:"activity_ids,omitempty"` // 依赖的活动ID
	Tier         MilestoneTier   `json:"tier"`                   // 重要性级别
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneUpcoming MilestoneStatus = "upcoming" // 未到期
	MilestoneAchieved MilestoneStatus = "achieved" // 已达成
	MilestoneMissed   MilestoneStatus = "missed"   // 已错过
	MilestoneAtRisk   MilestoneStatus = "at_risk"  // 有风险
)

// MilestoneTier 里程碑重要性级别
type MilestoneTier string

const (
	TierCritical MilestoneTier = "critical" // 关键里程碑
	TierMajor    MilestoneTier = "major"    // 重要里程碑
	TierMinor    MilestoneTier = "minor"    // 一般里程碑
)

// Clone 深拷贝里程碑
func (m *Milestone) Clone() *Milestone {
	cp := *m
	cp.ActivityIds = append([]string(nil), m.ActivityIds...)
	if m.AchievedDate != nil {
		t := *m.AchievedDate
		cp.AchievedDate = &t
	}
	return &cp
}

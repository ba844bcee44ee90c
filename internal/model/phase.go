package model

import (
	"time"
)

// Phase 施工阶段
type Phase struct {
	Id            string        `json:"id"`
	Name          string        `json:"name"`
	Category      PhaseCategory `json:"category"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	DurationDays  int           `json:"duration_days"`
	Sequence      int           `json:"sequence"`                // 阶段顺序号（从1开始）
	Prerequisites []string      `json:"prerequisites,omitempty"` // 前置阶段ID
	ActivityIds   []string      `json:"activity_ids,omitempty"`  // 所属活动ID
	IsMilestone   bool          `json:"is_milestone"`            // 是否为里程碑阶段
	Status        PhaseStatus   `json:"status"`
	Completion    float64       `json:"completion"`              // 完成百分比 0-100
}

// PhaseCategory 阶段类别（固定的九个施工阶段）
type PhaseCategory string

const (
	PhasePlanning      PhaseCategory = "planning"      // 前期策划
	PhaseSitework      PhaseCategory = "sitework"      // 场地工程
	PhaseFoundation    PhaseCategory = "foundation"    // 基础工程
	PhaseStructure     PhaseCategory = "structure"     // 主体结构
	PhaseEnvelope      PhaseCategory = "envelope"      // 围护结构
	PhaseMEP           PhaseCategory = "mep"           // 机电安装
	PhaseFinishes      PhaseCategory = "finishes"      // 装饰装修
	PhaseCommissioning PhaseCategory = "commissioning" // 调试验收
	PhaseCloseout      PhaseCategory = "closeout"      // 竣工收尾
)

// PhaseCategories 按施工顺序排列的全部阶段类别
var PhaseCategories = []PhaseCategory{
	PhasePlanning,
	PhaseSitework,
	PhaseFoundation,
	PhaseStructure,
	PhaseEnvelope,
	PhaseMEP,
	PhaseFinishes,
	PhaseCommissioning,
	PhaseCloseout,
}

// PhaseStatus 阶段状态
type PhaseStatus string

const (
	PhaseNotStarted PhaseStatus = "not_started" // 未开始
	PhaseInProgress PhaseStatus = "in_progress" // 进行中
	PhaseCompleted  PhaseStatus = "completed"   // 已完成
	PhaseDelayed    PhaseStatus = "delayed"     // 延期
	PhaseOnHold     PhaseStatus = "on_hold"     // 暂停
)

// Clone 深拷贝阶段
func (p *Phase) Clone() *Phase {
	cp := *p
	cp.Prerequisites = append([]string(nil), p.Prerequisites...)
	cp.ActivityIds = append([]string(nil), p.ActivityIds...)
	return &cp
}

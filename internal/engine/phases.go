package engine

import (
	"fmt"
	"time"

	"github.com/blues/cps/internal/model"
)

// PhaseTemplate 阶段模板，定义标准施工阶段的名义参数
type PhaseTemplate struct {
	Category    model.PhaseCategory
	Name        string
	NominalDays int
	IsMilestone bool
	Tier        model.MilestoneTier
}

// defaultPhaseTemplates 九个标准施工阶段，按施工顺序排列
var defaultPhaseTemplates = []PhaseTemplate{
	{Category: model.PhasePlanning, Name: "Planning & Permits", NominalDays: 15},
	{Category: model.PhaseSitework, Name: "Sitework & Excavation", NominalDays: 10},
	{Category: model.PhaseFoundation, Name: "Foundation", NominalDays: 15, IsMilestone: true, Tier: model.TierCritical},
	{Category: model.PhaseStructure, Name: "Structural Framing", NominalDays: 30, IsMilestone: true, Tier: model.TierCritical},
	{Category: model.PhaseEnvelope, Name: "Building Envelope", NominalDays: 20, IsMilestone: true, Tier: model.TierMajor},
	{Category: model.PhaseMEP, Name: "MEP Systems", NominalDays: 25},
	{Category: model.PhaseFinishes, Name: "Interior Finishes", NominalDays: 20, IsMilestone: true, Tier: model.TierMajor},
	{Category: model.PhaseCommissioning, Name: "Commissioning", NominalDays: 10, IsMilestone: true, Tier: model.TierMajor},
	{Category: model.PhaseCloseout, Name: "Project Closeout", NominalDays: 5, IsMilestone: true, Tier: model.TierCritical},
}

// DefaultPhaseTemplates 返回标准阶段模板副本
func DefaultPhaseTemplates() []PhaseTemplate {
	out := make([]PhaseTemplate, len(defaultPhaseTemplates))
	copy(out, defaultPhaseTemplates)
	return out
}

// GeneratePhases 从模板生成阶段骨架，按顺序首尾相接排布日期
func GeneratePhases(templates []PhaseTemplate, start time.Time) []*model.Phase {
	start = model.NormalizeDate(start)
	phases := make([]*model.Phase, 0, len(templates))
	cursor := start
	for i, tpl := range templates {
		phase := &model.Phase{
			Id:           fmt.Sprintf("PH-%02d", i+1),
			Name:         tpl.Name,
			Category:     tpl.Category,
			StartDate:    cursor,
			EndDate:      model.AddDays(cursor, tpl.NominalDays),
			DurationDays: tpl.NominalDays,
			Sequence:     i + 1,
			IsMilestone:  tpl.IsMilestone,
			Status:       model.PhaseNotStarted,
		}
		// 前序阶段：严格线性的阶段链
		if i > 0 {
			phase.Prerequisites = []string{phases[i-1].Id}
		}
		phases = append(phases, phase)
		cursor = phase.EndDate
	}
	return phases
}

// milestoneTierOf 查询阶段类别对应的里程碑级别
func milestoneTierOf(templates []PhaseTemplate, category model.PhaseCategory) model.MilestoneTier {
	for _, tpl := range templates {
		if tpl.Category == category {
			return tpl.Tier
		}
	}
	return model.TierMinor
}

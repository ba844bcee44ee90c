package engine

import (
	"fmt"
	"strings"

	"github.com/blues/cps/internal/model"
)

// classifierKeywords 关键词分类表，按九阶段顺序扫描，先命中先得
var classifierKeywords = []struct {
	category model.PhaseCategory
	words    []string
}{
	{model.PhasePlanning, []string{"planning", "permit", "design", "survey", "engineering"}},
	{model.PhaseSitework, []string{"sitework", "site work", "excavat", "grading", "clearing", "earthwork", "demolition"}},
	{model.PhaseFoundation, []string{"foundation", "footing", "slab", "pier", "pile"}},
	{model.PhaseStructure, []string{"structural", "framing", "steel", "column", "beam", "truss", "deck"}},
	{model.PhaseEnvelope, []string{"envelope", "roof", "siding", "cladding", "window", "glazing", "insulation", "waterproof"}},
	{model.PhaseMEP, []string{"mep", "mechanical", "electrical", "plumbing", "hvac", "rough", "duct", "conduit"}},
	{model.PhaseFinishes, []string{"finish", "trim", "paint", "drywall", "flooring", "tile", "cabinet", "millwork"}},
	{model.PhaseCommissioning, []string{"commissioning", "testing", "inspection", "startup", "balancing"}},
	{model.PhaseCloseout, []string{"closeout", "punch", "cleanup", "handover", "final"}},
}

// qualityCheckpoints 各阶段的标准质量检查点
var qualityCheckpoints = map[model.PhaseCategory][]string{
	model.PhaseFoundation: {"rebar inspection", "pour sign-off"},
	model.PhaseStructure:  {"framing inspection"},
	model.PhaseEnvelope:   {"water intrusion test"},
	model.PhaseMEP:        {"rough-in inspection"},
	model.PhaseFinishes:   {"punch walk"},
}

// weatherSensitiveCategories 受天气影响的阶段（室外作业）
var weatherSensitiveCategories = map[model.PhaseCategory]bool{
	model.PhaseSitework:   true,
	model.PhaseFoundation: true,
	model.PhaseStructure:  true,
	model.PhaseEnvelope:   true,
}

// classifyWorkItem 根据名称与类别关键词将工作项归入阶段类别，默认归入 mep
func classifyWorkItem(item model.WorkItem) model.PhaseCategory {
	text := strings.ToLower(item.Name + " " + item.Category)
	for _, entry := range classifierKeywords {
		for _, word := range entry.words {
			if strings.Contains(text, word) {
				return entry.category
			}
		}
	}
	return model.PhaseMEP
}

// BuildActivities 将造价工作项逐一转换为活动节点并挂入所属阶段
func BuildActivities(items []model.WorkItem, phases []*model.Phase, constraints []model.ActivityConstraint, diags *Diagnostics) ([]*model.Activity, error) {
	byCategory := make(map[model.PhaseCategory]*model.Phase, len(phases))
	for _, phase := range phases {
		byCategory[phase.Category] = phase
	}

	activities := make([]*model.Activity, 0, len(items))
	for i, item := range items {
		duration := item.DurationDays
		if duration <= 0 {
			diags.Warn(model.DiagZeroDuration, item.Name, "work item %q has duration %d days", item.Name, item.DurationDays)
			if duration < 0 {
				duration = 0
			}
		}

		category := classifyWorkItem(item)
		phase, ok := byCategory[category]
		if !ok {
			return nil, newConfigError(ConfigErrorMissingPhase,
				fmt.Sprintf("work item classified into phase category %q which has no phase", category), item.Name)
		}

		activity := &model.Activity{
			Id:                 fmt.Sprintf("ACT-%04d", i+1),
			Name:               item.Name,
			Description:        item.Category,
			PhaseId:            phase.Id,
			DurationDays:       duration,
			StartDate:          phase.StartDate,
			EndDate:            model.AddDays(phase.StartDate, duration),
			Status:             model.ActivityNotStarted,
			WeatherSensitive:   weatherSensitiveCategories[category],
			QualityCheckpoints: append([]string(nil), qualityCheckpoints[category]...),
		}

		// 全局约束附加到每个活动，非绑定的约束在 CPM 中自然失效
		for _, c := range constraints {
			activity.Constraints = append(activity.Constraints, model.ActivityConstraint{
				Kind:   c.Kind,
				Date:   model.NormalizeDate(c.Date),
				Reason: c.Reason,
			})
		}

		activity.Demands = buildDemands(activity.Id, item, diags)
		phase.ActivityIds = append(phase.ActivityIds, activity.Id)
		activities = append(activities, activity)
	}
	return activities, nil
}

// buildDemands 把三类成本行转换为资源需求
func buildDemands(activityId string, item model.WorkItem, diags *Diagnostics) []model.ResourceDemand {
	demands := make([]model.ResourceDemand, 0, len(item.LaborLines)+len(item.MaterialLines)+len(item.EquipmentLines))
	for _, line := range item.LaborLines {
		if strings.TrimSpace(line.Trade) == "" {
			diags.Warn(model.DiagUnknownResource, activityId, "labor line on %q has empty trade, skipped", item.Name)
			continue
		}
		// 工日换算：8 小时折合一个班组日
		demands = append(demands, model.ResourceDemand{
			Kind:       model.ResourceLabor,
			ResourceId: line.Trade,
			Quantity:   line.Hours / 8,
			Unit:       "crew-days",
			Cost:       line.TotalCost,
		})
	}
	for _, line := range item.MaterialLines {
		if strings.TrimSpace(line.Id) == "" {
			diags.Warn(model.DiagUnknownResource, activityId, "material line on %q has empty id, skipped", item.Name)
			continue
		}
		unit := line.Unit
		if unit == "" {
			unit = "unit"
		}
		demands = append(demands, model.ResourceDemand{
			Kind:       model.ResourceMaterial,
			ResourceId: line.Id,
			Quantity:   line.Quantity,
			Unit:       unit,
			Cost:       line.TotalCost,
		})
	}
	for _, line := range item.EquipmentLines {
		if strings.TrimSpace(line.Id) == "" {
			diags.Warn(model.DiagUnknownResource, activityId, "equipment line on %q has empty id, skipped", item.Name)
			continue
		}
		demands = append(demands, model.ResourceDemand{
			Kind:       model.ResourceEquipment,
			ResourceId: line.Id,
			Quantity:   float64(line.DurationDays),
			Unit:       "days",
			Cost:       line.TotalCost,
			// 吊装设备视为瓶颈资源
			Critical: strings.Contains(strings.ToLower(line.Id), "lift"),
		})
	}
	return demands
}

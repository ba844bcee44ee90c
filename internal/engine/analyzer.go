package engine

import (
	"fmt"
	"sort"

	"github.com/blues/cps/internal/model"
)

// Analysis 计划分析结果
type Analysis struct {
	CriticalPathLength int            `json:"critical_path_length"`
	CriticalActivities []string       `json:"critical_activities"`
	TotalFloatDays     int            `json:"total_float_days"`
	WorkingDays        int            `json:"working_days"`
	Bottlenecks        []string       `json:"bottlenecks"`
	Recommendations    []string       `json:"recommendations"`
	RiskAssessment     RiskAssessment `json:"risk_assessment"`
}

// RiskAssessment 风险评估，级别取 low / medium / high
type RiskAssessment struct {
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// AnalyzeSchedule 输出计划的关键路径长度、总时差、瓶颈资源、改进建议与风险评估
func (e *Engine) AnalyzeSchedule(schedule *model.Schedule) *Analysis {
	analysis := &Analysis{RiskAssessment: RiskAssessment{Level: "low"}}
	if schedule == nil || len(schedule.Activities) == 0 {
		return analysis
	}

	criticalCount := 0
	weatherCritical := 0
	for _, act := range schedule.Activities {
		analysis.TotalFloatDays += act.FloatDays
		if act.Critical {
			criticalCount++
			analysis.CriticalActivities = append(analysis.CriticalActivities, act.Id)
			if act.WeatherSensitive {
				weatherCritical++
			}
		}
	}
	analysis.CriticalPathLength = model.DaysBetween(schedule.StartDate, schedule.BaselineFinish)
	analysis.WorkingDays = e.calendar.WorkingDaysBetween(schedule.StartDate, schedule.BaselineFinish)
	analysis.Bottlenecks = findBottlenecks(schedule.Activities)

	criticalRatio := float64(criticalCount) / float64(len(schedule.Activities))
	shutdowns := e.calendar.ShutdownsOverlapping(schedule.StartDate, schedule.ForecastFinish)

	// 改进建议
	if criticalRatio > 0.6 {
		analysis.Recommendations = append(analysis.Recommendations,
			"more than 60% of activities are critical, consider fast-tracking or adding crews to create float")
	}
	if weatherCritical > 0 {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("%d weather-sensitive activities sit on the critical path, front-load them or carry weather buffers", weatherCritical))
	}
	for _, b := range analysis.Bottlenecks {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("resource %s is a bottleneck, consider a second unit or resequencing the demanding activities", b))
	}
	if !e.calendar.Overtime.Authorized {
		analysis.Recommendations = append(analysis.Recommendations,
			"overtime is not authorized, authorizing it would let the optimizer compress critical durations by about 10%")
	}
	for _, window := range shutdowns {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("shutdown window %s to %s overlaps the schedule, plan hand-offs around it",
				window.From.Format("2006-01-02"), window.To.Format("2006-01-02")))
	}
	for _, risk := range schedule.Risks {
		if risk.ImpactDays > 0 && risk.ContingencyDays == 0 {
			analysis.Recommendations = append(analysis.Recommendations,
				fmt.Sprintf("risk %s carries %d impact days with no contingency reserved", risk.RiskId, risk.ImpactDays))
		}
	}

	// 风险打分：命中一项计一分
	score := 0
	addFactor := func(format string, args ...interface{}) {
		score++
		analysis.RiskAssessment.Factors = append(analysis.RiskAssessment.Factors, fmt.Sprintf(format, args...))
	}
	if criticalRatio >= 0.5 {
		addFactor("%d of %d activities are on the critical path", criticalCount, len(schedule.Activities))
	}
	if weatherCritical >= 3 {
		addFactor("%d weather-sensitive activities are critical", weatherCritical)
	}
	if len(analysis.Bottlenecks) > 0 {
		addFactor("%d bottleneck resources detected", len(analysis.Bottlenecks))
	}
	if len(shutdowns) > 0 {
		addFactor("%d shutdown windows overlap the schedule", len(shutdowns))
	}
	highRisks := 0
	for _, risk := range schedule.Risks {
		if risk.Probability >= 0.5 {
			highRisks++
		}
	}
	if highRisks > 0 {
		addFactor("%d declared risks have probability of 50%% or more", highRisks)
	}
	switch {
	case score >= 3:
		analysis.RiskAssessment.Level = "high"
	case score == 2:
		analysis.RiskAssessment.Level = "medium"
	}
	return analysis
}

// findBottlenecks 找瓶颈资源：被标记为瓶颈且有两个以上活动争用的资源
func findBottlenecks(activities []*model.Activity) []string {
	users := make(map[string]int)
	flagged := make(map[string]bool)
	for _, act := range activities {
		seen := make(map[string]bool)
		for _, demand := range act.Demands {
			if demand.ResourceId == "" {
				continue
			}
			key := string(demand.Kind) + "/" + demand.ResourceId
			if !seen[key] {
				seen[key] = true
				users[key]++
			}
			if demand.Critical {
				flagged[key] = true
			}
		}
	}
	bottlenecks := make([]string, 0)
	for key := range flagged {
		if users[key] >= 2 {
			bottlenecks = append(bottlenecks, key)
		}
	}
	sort.Strings(bottlenecks)
	return bottlenecks
}

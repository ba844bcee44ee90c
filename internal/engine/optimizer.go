package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/blues/cps/internal/model"
)

// Objectives 优化目标配置，质量与风险缓冲为占总工期的比例（0-1）
type Objectives struct {
	PrioritizeFinish  bool    `json:"prioritize_finish"`
	PrioritizeCost    bool    `json:"prioritize_cost"`
	AllowOvertime     bool    `json:"allow_overtime"`
	AllowLeveling     bool    `json:"allow_leveling"`
	WeatherBufferDays int     `json:"weather_buffer_days"`
	QualityBuffer     float64 `json:"quality_buffer"`
	RiskBuffer        float64 `json:"risk_buffer"`
}

// OptimizeSchedule 对既有计划执行一轮优化：按目标配置依次做资源平衡、
// 工期压缩与加班提速，然后重跑 CPM 刷新时差与关键路径，最后追加整体缓冲。
// 原计划不动，返回优化后的新快照。相同输入重复调用结果一致。
func (e *Engine) OptimizeSchedule(schedule *model.Schedule, objectives Objectives) (*model.Schedule, []model.Diagnostic, error) {
	if schedule == nil {
		return nil, nil, errors.New("计划不能为空")
	}
	if len(schedule.Activities) == 0 {
		return nil, nil, newConfigError(ConfigErrorEmptyInput, "schedule has no activities", schedule.Id)
	}

	next := schedule.Clone()
	diags := &Diagnostics{}

	if objectives.AllowLeveling {
		LevelResources(next.Activities, diags)
	}

	// 压缩手段目前只有加班提速一种，赶工与快速跟进留作扩展。
	// 加班需要日历授权；当只重成本不重工期时不动用加班（工时有成本上浮系数）
	if objectives.AllowOvertime && e.calendar.Overtime.Authorized &&
		(objectives.PrioritizeFinish || !objectives.PrioritizeCost) {
		applyOvertime(compressionCandidates(next.Activities))
	}

	critical, err := RunCPM(next.Activities, next.StartDate)
	if err != nil {
		return nil, diags.Items(), err
	}
	next.CriticalPath = critical

	SyncPhases(next)

	finish := latestEarlyFinish(next.Activities)
	next.BaselineFinish = finish
	next.ForecastFinish = finish
	next.TotalDurationDays = model.DaysBetween(next.StartDate, finish)
	next.BufferDays = 0
	ApplyScheduleBuffer(next, objectives.WeatherBufferDays, objectives.QualityBuffer, objectives.RiskBuffer)

	return next, diags.Items(), nil
}

// compressionCandidates 压缩候选：尚可压缩的关键活动，工期长者优先
func compressionCandidates(activities []*model.Activity) []*model.Activity {
	candidates := make([]*model.Activity, 0)
	for _, act := range activities {
		if act.Critical && act.DurationDays > 1 {
			candidates = append(candidates, act)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DurationDays != candidates[j].DurationDays {
			return candidates[i].DurationDays > candidates[j].DurationDays
		}
		return candidates[i].Id < candidates[j].Id
	})
	return candidates
}

// applyOvertime 加班提速：候选活动工期压缩一成（向上取整），至少保留一天
func applyOvertime(candidates []*model.Activity) int {
	compressed := 0
	for _, act := range candidates {
		cut := (act.DurationDays + 9) / 10
		next := act.DurationDays - cut
		if next < 1 {
			next = 1
		}
		if next == act.DurationDays {
			continue
		}
		act.DurationDays = next
		act.EndDate = model.AddDays(act.StartDate, next)
		compressed++
	}
	return compressed
}

// latestEarlyFinish 全部活动中最晚的最早完成时刻
func latestEarlyFinish(activities []*model.Activity) time.Time {
	if len(activities) == 0 {
		return time.Time{}
	}
	finish := activities[0].EarlyFinish
	for _, act := range activities[1:] {
		if act.EarlyFinish.After(finish) {
			finish = act.EarlyFinish
		}
	}
	return finish
}

package engine

import (
	"fmt"
	"time"

	"github.com/blues/cps/internal/model"
)

// DeriveMilestones 从里程碑阶段派生里程碑：目标日期取阶段结束日，
// 依赖活动取阶段名下全部活动
func DeriveMilestones(schedule *model.Schedule, templates []PhaseTemplate) {
	milestones := make([]*model.Milestone, 0)
	seq := 1
	for _, phase := range schedule.Phases {
		if !phase.IsMilestone {
			continue
		}
		milestones = append(milestones, &model.Milestone{
			Id:          fmt.Sprintf("MS-%02d", seq),
			Name:        phase.Name + " Complete",
			PhaseId:     phase.Id,
			TargetDate:  phase.EndDate,
			Status:      model.MilestoneUpcoming,
			ActivityIds: append([]string(nil), phase.ActivityIds...),
			Tier:        milestoneTierOf(templates, phase.Category),
		})
		seq++
	}
	schedule.Milestones = milestones
}

// ApplyProgress 写入一批进度上报并级联刷新预测完工、阶段与里程碑状态。
// 未知活动 id 记诊断后跳过，不影响同批其余上报。
func ApplyProgress(schedule *model.Schedule, updates []model.ProgressUpdate, now time.Time, diags *Diagnostics) {
	now = model.NormalizeDate(now)
	for _, update := range updates {
		act := schedule.ActivityById(update.ActivityId)
		if act == nil {
			diags.Warn(model.DiagUnknownActivity, update.ActivityId,
				"progress update references unknown activity %s, skipped", update.ActivityId)
			continue
		}
		completion := update.Completion
		if completion < 0 {
			completion = 0
		}
		if completion > 100 {
			completion = 100
		}
		act.Completion = completion
		if update.ActualStart != nil {
			t := model.NormalizeDate(*update.ActualStart)
			act.ActualStart = &t
		}
		if update.ActualFinish != nil {
			t := model.NormalizeDate(*update.ActualFinish)
			act.ActualFinish = &t
		}
		switch {
		case completion >= 100:
			act.Status = model.ActivityCompleted
		case completion > 0:
			act.Status = model.ActivityInProgress
		}
	}

	markOverdueActivities(schedule, now)
	RecomputeForecast(schedule)
	SyncPhaseProgress(schedule, now)
	RefreshMilestones(schedule, now)

	allCompleted := len(schedule.Activities) > 0
	anyStarted := false
	for _, act := range schedule.Activities {
		if act.Status != model.ActivityCompleted {
			allCompleted = false
		}
		if act.Started() {
			anyStarted = true
		}
	}
	switch {
	case allCompleted:
		schedule.Status = model.ScheduleCompleted
	case anyStarted && (schedule.Status == model.ScheduleDraft || schedule.Status == model.SchedulePublished):
		schedule.Status = model.ScheduleInProgress
	}
}

// markOverdueActivities 把计划结束日已过而未完成的活动标记为延期。
// 挂起活动由外部控制，不参与自动流转
func markOverdueActivities(schedule *model.Schedule, now time.Time) {
	for _, act := range schedule.Activities {
		if act.Status == model.ActivityCompleted || act.Status == model.ActivityOnHold {
			continue
		}
		if now.After(act.EndDate) {
			act.Status = model.ActivityDelayed
		}
	}
}

// RecomputeForecast 重算预测完工：基线完工加整体缓冲，再累加已完活动
// 相对计划结束日的正向延误
func RecomputeForecast(schedule *model.Schedule) {
	delay := 0
	for _, act := range schedule.Activities {
		if act.Status != model.ActivityCompleted || act.ActualFinish == nil {
			continue
		}
		if d := model.DaysBetween(act.EndDate, *act.ActualFinish); d > 0 {
			delay += d
		}
	}
	schedule.ForecastFinish = model.AddDays(schedule.BaselineFinish, schedule.BufferDays+delay)
}

// SyncPhaseProgress 按名下活动刷新各阶段的完成率与状态。
// 挂起阶段由外部控制，不参与自动流转。
func SyncPhaseProgress(schedule *model.Schedule, now time.Time) {
	for _, phase := range schedule.Phases {
		if phase.Status == model.PhaseOnHold {
			continue
		}
		acts := schedule.PhaseActivities(phase.Id)
		if len(acts) == 0 {
			continue
		}
		completed := 0
		started := false
		for _, act := range acts {
			if act.Status == model.ActivityCompleted {
				completed++
			}
			if act.Started() {
				started = true
			}
		}
		phase.Completion = float64(completed) / float64(len(acts)) * 100
		switch {
		case completed == len(acts):
			phase.Status = model.PhaseCompleted
		case now.After(phase.EndDate):
			phase.Status = model.PhaseDelayed
		case started:
			phase.Status = model.PhaseInProgress
		default:
			phase.Status = model.PhaseNotStarted
		}
	}
}

// RefreshMilestones 刷新里程碑状态：依赖活动全部完成即达成并盖章日期，
// 达成后不再回退；已开工但目标日期已过为受险；目标日期已过且无一开工为失守
func RefreshMilestones(schedule *model.Schedule, now time.Time) {
	now = model.NormalizeDate(now)
	for _, ms := range schedule.Milestones {
		if ms.Status == model.MilestoneAchieved {
			continue
		}
		allDone := len(ms.ActivityIds) > 0
		anyStarted := false
		known := 0
		for _, id := range ms.ActivityIds {
			act := schedule.ActivityById(id)
			if act == nil {
				continue
			}
			known++
			if act.Status != model.ActivityCompleted {
				allDone = false
			}
			if act.Started() {
				anyStarted = true
			}
		}
		if known == 0 {
			continue
		}
		overdue := now.After(ms.TargetDate)
		switch {
		case allDone:
			ms.Status = model.MilestoneAchieved
			stamp := now
			ms.AchievedDate = &stamp
		case anyStarted && overdue:
			ms.Status = model.MilestoneAtRisk
		case overdue:
			ms.Status = model.MilestoneMissed
		}
	}
}

// SyncPhases 让阶段日期跟随名下活动的实际排程，空阶段保留模板日期；
// 未达成里程碑的目标日期随所属阶段联动
func SyncPhases(schedule *model.Schedule) {
	for _, phase := range schedule.Phases {
		acts := schedule.PhaseActivities(phase.Id)
		if len(acts) == 0 {
			continue
		}
		start := acts[0].StartDate
		end := acts[0].EndDate
		for _, act := range acts[1:] {
			if act.StartDate.Before(start) {
				start = act.StartDate
			}
			if act.EndDate.After(end) {
				end = act.EndDate
			}
		}
		phase.StartDate = start
		phase.EndDate = end
		phase.DurationDays = model.DaysBetween(start, end)
	}
	for _, ms := range schedule.Milestones {
		if ms.Status == model.MilestoneAchieved {
			continue
		}
		if phase := schedule.PhaseById(ms.PhaseId); phase != nil {
			ms.TargetDate = phase.EndDate
		}
	}
}

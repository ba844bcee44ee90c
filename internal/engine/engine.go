package engine

import (
	"errors"
	"time"

	"github.com/blues/cps/internal/model"
	"github.com/google/uuid"
)

// Engine 关键路径排程引擎。日历、阶段模板与依赖规则在构建时确定，
// 排程过程中只读，同一实例可并发服务多个请求。
type Engine struct {
	calendar  model.ResourceCalendar
	templates []PhaseTemplate
	rules     []DependencyRule
}

// New 用给定日历与默认阶段模板、依赖规则创建引擎
func New(calendar model.ResourceCalendar) *Engine {
	return &Engine{
		calendar:  calendar,
		templates: DefaultPhaseTemplates(),
		rules:     DefaultDependencyRules(),
	}
}

// Calendar 返回引擎使用的资源日历
func (e *Engine) Calendar() model.ResourceCalendar {
	return e.calendar
}

// CreateRequest 建计划请求
type CreateRequest struct {
	ProjectName        string
	StartDate          time.Time
	WorkItems          []model.WorkItem
	Constraints        []model.ActivityConstraint
	WeatherConstraints []model.WeatherConstraint
	Risks              []model.RiskMitigation
}

// CreateSchedule 从造价工作项建出完整计划：生成阶段骨架、构建活动节点、
// 按规则表连边、跑 CPM 定时序、资源平衡、天气缓冲，再跑一遍 CPM 固化排程，
// 最后同步阶段日期并派生里程碑。返回新计划与非致命诊断列表。
func (e *Engine) CreateSchedule(req CreateRequest) (*model.Schedule, []model.Diagnostic, error) {
	if len(req.WorkItems) == 0 {
		return nil, nil, newConfigError(ConfigErrorEmptyInput, "no work items supplied")
	}
	if req.StartDate.IsZero() {
		return nil, nil, newConfigError(ConfigErrorEmptyInput, "start date is required")
	}

	start := model.NormalizeDate(req.StartDate)
	diags := &Diagnostics{}

	phases := GeneratePhases(e.templates, start)
	activities, err := BuildActivities(req.WorkItems, phases, req.Constraints, diags)
	if err != nil {
		return nil, diags.Items(), err
	}
	if err := ResolveDependencies(activities, e.rules); err != nil {
		return nil, diags.Items(), err
	}
	if _, err := RunCPM(activities, start); err != nil {
		return nil, diags.Items(), err
	}

	LevelResources(activities, diags)
	ApplyWeatherBuffers(activities, req.WeatherConstraints)

	// 平衡与缓冲改动了时序和工期，重跑 CPM 固化最终排程
	critical, err := RunCPM(activities, start)
	if err != nil {
		return nil, diags.Items(), err
	}

	now := time.Now()
	schedule := &model.Schedule{
		Id:                 uuid.NewString(),
		ProjectName:        req.ProjectName,
		Status:             model.SchedulePublished,
		CreatedAt:          now,
		UpdatedAt:          now,
		StartDate:          start,
		Phases:             phases,
		Activities:         activities,
		CriticalPath:       critical,
		WeatherConstraints: req.WeatherConstraints,
		Risks:              req.Risks,
	}
	SyncPhases(schedule)
	DeriveMilestones(schedule, e.templates)

	finish := latestEarlyFinish(activities)
	schedule.BaselineFinish = finish
	schedule.ForecastFinish = finish
	schedule.TotalDurationDays = model.DaysBetween(start, finish)
	return schedule, diags.Items(), nil
}

// UpdateProgress 在计划副本上写入一批进度上报并返回副本，原计划不动
func (e *Engine) UpdateProgress(schedule *model.Schedule, updates []model.ProgressUpdate, now time.Time) (*model.Schedule, []model.Diagnostic, error) {
	if schedule == nil {
		return nil, nil, errors.New("计划不能为空")
	}
	next := schedule.Clone()
	diags := &Diagnostics{}
	ApplyProgress(next, updates, now, diags)
	return next, diags.Items(), nil
}

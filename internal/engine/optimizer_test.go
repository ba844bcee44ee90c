package engine

import (
	"testing"
	"time"

	"github.com/blues/cps/internal/model"
)

func overtimeCalendar() model.ResourceCalendar {
	cal := model.DefaultCalendar()
	cal.Overtime.Authorized = true
	return cal
}

func TestOptimizeSchedule_OvertimeCompressesCriticalChain(t *testing.T) {
	eng := New(overtimeCalendar())
	start := date(2024, time.June, 3)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Compress Me", StartDate: start, WorkItems: sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	optimized, diags, err := eng.OptimizeSchedule(schedule, Objectives{
		PrioritizeFinish:  true,
		AllowOvertime:     true,
		AllowLeveling:     true,
		WeatherBufferDays: 2,
		QualityBuffer:     0.05,
	})
	if err != nil {
		t.Fatalf("OptimizeSchedule failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	// every critical activity dropped 10% rounded up:
	// 8->7, 12->10, 20->18, 15->13, 10->9, 12->10, 4->3 => chain 76 days
	if want := model.AddDays(start, 76); !optimized.BaselineFinish.Equal(want) {
		t.Errorf("optimized baseline = %v, want %v", optimized.BaselineFinish, want)
	}
	// buffer: 2 weather + ceil(76 * 0.05) = 4 quality
	if optimized.BufferDays != 6 {
		t.Errorf("optimized bufferDays = %d, want 6", optimized.BufferDays)
	}
	if optimized.TotalDurationDays != 82 {
		t.Errorf("optimized total duration = %d, want 82", optimized.TotalDurationDays)
	}
	if want := model.AddDays(start, 82); !optimized.ForecastFinish.Equal(want) {
		t.Errorf("optimized forecast = %v, want %v", optimized.ForecastFinish, want)
	}

	// source schedule is untouched
	if schedule.TotalDurationDays != 87 {
		t.Errorf("input schedule mutated: total duration now %d", schedule.TotalDurationDays)
	}
	if got := schedule.ActivityById("ACT-0002").DurationDays; got != 8 {
		t.Errorf("input schedule mutated: excavation duration now %d", got)
	}

	// milestones track the compressed phase dates
	for _, ms := range optimized.Milestones {
		phase := optimized.PhaseById(ms.PhaseId)
		if !ms.TargetDate.Equal(phase.EndDate) {
			t.Errorf("milestone %s target %v out of sync with phase end %v", ms.Id, ms.TargetDate, phase.EndDate)
		}
	}
}

func TestOptimizeSchedule_CostPrioritySkipsOvertime(t *testing.T) {
	eng := New(overtimeCalendar())
	start := date(2024, time.June, 3)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Frugal", StartDate: start, WorkItems: sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	optimized, _, err := eng.OptimizeSchedule(schedule, Objectives{
		PrioritizeCost: true,
		AllowOvertime:  true,
	})
	if err != nil {
		t.Fatalf("OptimizeSchedule failed: %v", err)
	}
	if !optimized.BaselineFinish.Equal(schedule.BaselineFinish) {
		t.Errorf("cost-priority run moved baseline from %v to %v", schedule.BaselineFinish, optimized.BaselineFinish)
	}
	for _, act := range optimized.Activities {
		original := schedule.ActivityById(act.Id)
		if act.DurationDays != original.DurationDays {
			t.Errorf("%s compressed under cost priority: %d -> %d", act.Id, original.DurationDays, act.DurationDays)
		}
	}
}

func TestOptimizeSchedule_UnauthorizedOvertimeIsIgnored(t *testing.T) {
	// default calendar does not authorize overtime
	eng := New(model.DefaultCalendar())
	start := date(2024, time.June, 3)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "No Overtime", StartDate: start, WorkItems: sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	optimized, _, err := eng.OptimizeSchedule(schedule, Objectives{PrioritizeFinish: true, AllowOvertime: true})
	if err != nil {
		t.Fatalf("OptimizeSchedule failed: %v", err)
	}
	if !optimized.BaselineFinish.Equal(schedule.BaselineFinish) {
		t.Errorf("overtime applied without calendar authorization: baseline %v -> %v",
			schedule.BaselineFinish, optimized.BaselineFinish)
	}
}

func TestOptimizeSchedule_Idempotent(t *testing.T) {
	eng := New(overtimeCalendar())
	start := date(2024, time.June, 3)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Stable", StartDate: start, WorkItems: sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	objectives := Objectives{AllowLeveling: true, WeatherBufferDays: 1, QualityBuffer: 0.02}
	first, _, err := eng.OptimizeSchedule(schedule, objectives)
	if err != nil {
		t.Fatalf("first optimize failed: %v", err)
	}
	second, _, err := eng.OptimizeSchedule(schedule, objectives)
	if err != nil {
		t.Fatalf("second optimize failed: %v", err)
	}

	if !first.BaselineFinish.Equal(second.BaselineFinish) || first.TotalDurationDays != second.TotalDurationDays {
		t.Errorf("same objectives produced different results: %v/%d vs %v/%d",
			first.BaselineFinish, first.TotalDurationDays, second.BaselineFinish, second.TotalDurationDays)
	}
	for i, act := range first.Activities {
		other := second.Activities[i]
		if !act.EarlyStart.Equal(other.EarlyStart) || act.DurationDays != other.DurationDays {
			t.Errorf("activity %s differs between identical optimize calls", act.Id)
		}
	}
}

func TestOptimizeSchedule_NilAndEmpty(t *testing.T) {
	eng := New(model.DefaultCalendar())
	if _, _, err := eng.OptimizeSchedule(nil, Objectives{}); err == nil {
		t.Error("expected error for nil schedule")
	}
	if _, _, err := eng.OptimizeSchedule(&model.Schedule{Id: "empty"}, Objectives{}); err == nil {
		t.Error("expected error for schedule without activities")
	}
}

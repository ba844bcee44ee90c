package engine

import (
	"testing"
	"time"

	"github.com/blues/cps/internal/model"
)

// sampleWorkItems covers every construction phase and wires the full default
// rule chain: excavation -> foundation -> structural -> envelope -> rough-in
// -> finishes -> punch.
func sampleWorkItems() []model.WorkItem {
	return []model.WorkItem{
		{Name: "Building Permit Review", DurationDays: 10},
		{Name: "Site Excavation", DurationDays: 8,
			LaborLines:     []model.LaborLine{{Trade: "earthworks-crew", Hours: 320, TotalCost: 19200}},
			EquipmentLines: []model.EquipmentLine{{Id: "excavator-01", DurationDays: 8, TotalCost: 6400}}},
		{Name: "Foundation Pour", DurationDays: 12,
			LaborLines:     []model.LaborLine{{Trade: "concrete-crew", Hours: 480, TotalCost: 28800}},
			MaterialLines:  []model.MaterialLine{{Id: "ready-mix", Quantity: 120, Unit: "m3", TotalCost: 27000}},
			EquipmentLines: []model.EquipmentLine{{Id: "boom-lift", DurationDays: 4, TotalCost: 2400}}},
		{Name: "Structural Steel Erection", DurationDays: 20,
			LaborLines:     []model.LaborLine{{Trade: "ironworkers", Hours: 800, TotalCost: 64000}},
			EquipmentLines: []model.EquipmentLine{{Id: "boom-lift", DurationDays: 15, TotalCost: 9000}}},
		{Name: "Envelope Cladding", DurationDays: 15,
			LaborLines: []model.LaborLine{{Trade: "glazing-crew", Hours: 600, TotalCost: 42000}}},
		{Name: "Electrical Rough-In", DurationDays: 10,
			LaborLines: []model.LaborLine{{Trade: "electricians", Hours: 400, TotalCost: 32000}}},
		{Name: "Plumbing Rough-In", DurationDays: 8,
			LaborLines: []model.LaborLine{{Trade: "plumbers", Hours: 320, TotalCost: 24000}}},
		{Name: "Finish Carpentry", DurationDays: 12,
			LaborLines: []model.LaborLine{{Trade: "carpenters", Hours: 480, TotalCost: 31200}}},
		{Name: "Air Balancing", DurationDays: 5},
		{Name: "Punch List", DurationDays: 4},
	}
}

func TestCreateSchedule_EndToEnd(t *testing.T) {
	eng := New(model.DefaultCalendar())
	start := date(2024, time.June, 3)

	schedule, diags, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Riverside Warehouse",
		StartDate:   start,
		WorkItems:   sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if schedule.Id == "" {
		t.Error("schedule id is empty")
	}
	if schedule.Status != model.SchedulePublished {
		t.Errorf("schedule status = %s, want %s", schedule.Status, model.SchedulePublished)
	}
	if len(schedule.Phases) != 9 {
		t.Errorf("schedule has %d phases, want 9", len(schedule.Phases))
	}
	if len(schedule.Activities) != 10 {
		t.Errorf("schedule has %d activities, want 10", len(schedule.Activities))
	}

	wantCritical := []string{"ACT-0002", "ACT-0003", "ACT-0004", "ACT-0005", "ACT-0006", "ACT-0008", "ACT-0010"}
	if len(schedule.CriticalPath) != len(wantCritical) {
		t.Fatalf("critical path = %v, want %v", schedule.CriticalPath, wantCritical)
	}
	for i, id := range wantCritical {
		if schedule.CriticalPath[i] != id {
			t.Fatalf("critical path = %v, want %v", schedule.CriticalPath, wantCritical)
		}
	}

	// 8 + 12 + 20 + 2 + 15 + 1 + 10 + 3 + 12 + 4 along the critical chain
	if schedule.TotalDurationDays != 87 {
		t.Errorf("total duration = %d days, want 87", schedule.TotalDurationDays)
	}
	if want := model.AddDays(start, 87); !schedule.BaselineFinish.Equal(want) {
		t.Errorf("baseline finish = %v, want %v", schedule.BaselineFinish, want)
	}
	if !schedule.ForecastFinish.Equal(schedule.BaselineFinish) {
		t.Errorf("fresh schedule forecast %v should equal baseline %v", schedule.ForecastFinish, schedule.BaselineFinish)
	}
	if schedule.BufferDays != 0 {
		t.Errorf("fresh schedule bufferDays = %d, want 0", schedule.BufferDays)
	}

	for _, act := range schedule.Activities {
		if got := model.DaysBetween(act.EarlyStart, act.EarlyFinish); got != act.DurationDays {
			t.Errorf("%s early window = %d days, want %d", act.Id, got, act.DurationDays)
		}
		if act.FloatDays < 0 {
			t.Errorf("%s has negative float", act.Id)
		}
		if act.PhaseId == "" {
			t.Errorf("%s has no phase", act.Id)
		}
	}

	// plumbing can slip two days before it pushes finish carpentry
	plumbing := schedule.ActivityById("ACT-0007")
	if plumbing.Critical || plumbing.FloatDays != 2 {
		t.Errorf("plumbing float = %d critical=%v, want 2 days non-critical", plumbing.FloatDays, plumbing.Critical)
	}

	if len(schedule.Milestones) != 6 {
		t.Fatalf("schedule has %d milestones, want 6", len(schedule.Milestones))
	}
	for _, ms := range schedule.Milestones {
		phase := schedule.PhaseById(ms.PhaseId)
		if phase == nil {
			t.Fatalf("milestone %s references unknown phase %s", ms.Id, ms.PhaseId)
		}
		if !ms.TargetDate.Equal(phase.EndDate) {
			t.Errorf("milestone %s target = %v, want phase end %v", ms.Id, ms.TargetDate, phase.EndDate)
		}
		if ms.Status != model.MilestoneUpcoming {
			t.Errorf("milestone %s status = %s, want upcoming", ms.Id, ms.Status)
		}
	}

	// phase dates follow their activities once the network is timed
	foundation := schedule.PhaseByCategory(model.PhaseFoundation)
	pour := schedule.ActivityById("ACT-0003")
	if !foundation.StartDate.Equal(pour.EarlyStart) || !foundation.EndDate.Equal(pour.EarlyFinish) {
		t.Errorf("foundation phase [%v, %v) not synced to its activity [%v, %v)",
			foundation.StartDate, foundation.EndDate, pour.EarlyStart, pour.EarlyFinish)
	}
}

func TestCreateSchedule_Deterministic(t *testing.T) {
	eng := New(model.DefaultCalendar())
	req := CreateRequest{ProjectName: "Repeat", StartDate: date(2024, time.June, 3), WorkItems: sampleWorkItems()}

	first, _, err := eng.CreateSchedule(req)
	if err != nil {
		t.Fatalf("first CreateSchedule failed: %v", err)
	}
	second, _, err := eng.CreateSchedule(req)
	if err != nil {
		t.Fatalf("second CreateSchedule failed: %v", err)
	}

	if len(first.CriticalPath) != len(second.CriticalPath) {
		t.Fatalf("critical paths differ: %v vs %v", first.CriticalPath, second.CriticalPath)
	}
	for i := range first.CriticalPath {
		if first.CriticalPath[i] != second.CriticalPath[i] {
			t.Fatalf("critical paths differ: %v vs %v", first.CriticalPath, second.CriticalPath)
		}
	}
	for i, act := range first.Activities {
		other := second.Activities[i]
		if act.Id != other.Id || !act.EarlyStart.Equal(other.EarlyStart) || !act.EarlyFinish.Equal(other.EarlyFinish) ||
			act.FloatDays != other.FloatDays {
			t.Errorf("activity %s timing differs between identical builds", act.Id)
		}
	}
}

func TestCreateSchedule_InputValidation(t *testing.T) {
	eng := New(model.DefaultCalendar())

	_, _, err := eng.CreateSchedule(CreateRequest{ProjectName: "Empty", StartDate: date(2024, time.June, 3)})
	if err == nil {
		t.Fatal("expected error for empty work items")
	}
	cfg, ok := err.(*ConfigError)
	if !ok || cfg.Kind != ConfigErrorEmptyInput {
		t.Errorf("empty items error = %v, want ConfigError/%s", err, ConfigErrorEmptyInput)
	}

	_, _, err = eng.CreateSchedule(CreateRequest{ProjectName: "NoDate", WorkItems: sampleWorkItems()})
	if err == nil {
		t.Fatal("expected error for zero start date")
	}
}

func TestCreateSchedule_WeatherBuffersExtendOutdoorWork(t *testing.T) {
	eng := New(model.DefaultCalendar())
	start := date(2024, time.June, 3)
	req := CreateRequest{
		ProjectName: "Rainy Site",
		StartDate:   start,
		WorkItems:   sampleWorkItems(),
		WeatherConstraints: []model.WeatherConstraint{
			{Kind: model.WeatherRain, Threshold: 25, BufferDays: 2},
		},
	}

	schedule, _, err := eng.CreateSchedule(req)
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	// excavation, foundation, steel and cladding each stretch by two days
	excavation := schedule.ActivityById("ACT-0002")
	if excavation.DurationDays != 10 {
		t.Errorf("excavation duration = %d, want 10 (8 + 2)", excavation.DurationDays)
	}
	electrical := schedule.ActivityById("ACT-0006")
	if electrical.DurationDays != 10 {
		t.Errorf("indoor electrical duration = %d, want unchanged 10", electrical.DurationDays)
	}
	if schedule.TotalDurationDays != 95 {
		t.Errorf("total duration = %d, want 95 (87 + 4 buffered chain activities x 2)", schedule.TotalDurationDays)
	}
}

package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/blues/cps/internal/model"
)

func TestAnalyzeSchedule_CoreMetrics(t *testing.T) {
	eng := New(model.DefaultCalendar())
	start := date(2024, time.June, 3)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Metrics", StartDate: start, WorkItems: sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	analysis := eng.AnalyzeSchedule(schedule)

	if analysis.CriticalPathLength != 87 {
		t.Errorf("critical path length = %d, want 87", analysis.CriticalPathLength)
	}
	if len(analysis.CriticalActivities) != len(schedule.CriticalPath) {
		t.Errorf("critical activities = %v, want %v", analysis.CriticalActivities, schedule.CriticalPath)
	}
	// permit 0? permit has float, plumbing 2, balancing floats free
	if analysis.TotalFloatDays <= 0 {
		t.Errorf("total float = %d, want positive", analysis.TotalFloatDays)
	}
	if analysis.WorkingDays <= 0 || analysis.WorkingDays >= 87 {
		t.Errorf("working days = %d, want within (0, 87) for a five day week", analysis.WorkingDays)
	}

	// the boom lift serves both the foundation pour and the steel erection
	if len(analysis.Bottlenecks) != 1 || analysis.Bottlenecks[0] != "equipment/boom-lift" {
		t.Errorf("bottlenecks = %v, want [equipment/boom-lift]", analysis.Bottlenecks)
	}

	foundLift := false
	for _, rec := range analysis.Recommendations {
		if strings.Contains(rec, "boom-lift") {
			foundLift = true
		}
	}
	if !foundLift {
		t.Errorf("recommendations %v should mention the bottleneck resource", analysis.Recommendations)
	}
}

func TestAnalyzeSchedule_RiskLevels(t *testing.T) {
	eng := New(model.DefaultCalendar())
	start := date(2024, time.June, 3)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Risky", StartDate: start, WorkItems: sampleWorkItems(),
		Risks: []model.RiskMitigation{
			{RiskId: "RSK-01", Probability: 0.7, ImpactDays: 10, Mitigation: "pre-order steel"},
		},
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	analysis := eng.AnalyzeSchedule(schedule)

	// 7 of 10 critical, boom lift bottleneck, one high-probability risk => high
	if analysis.RiskAssessment.Level != "high" {
		t.Errorf("risk level = %s, want high (factors: %v)", analysis.RiskAssessment.Level, analysis.RiskAssessment.Factors)
	}
	if len(analysis.RiskAssessment.Factors) < 3 {
		t.Errorf("risk factors = %v, want at least 3", analysis.RiskAssessment.Factors)
	}

	// an impact-bearing risk with no contingency earns a recommendation
	found := false
	for _, rec := range analysis.Recommendations {
		if strings.Contains(rec, "RSK-01") {
			found = true
		}
	}
	if !found {
		t.Errorf("recommendations %v should flag RSK-01", analysis.Recommendations)
	}
}

func TestAnalyzeSchedule_ShutdownOverlap(t *testing.T) {
	cal := model.DefaultCalendar()
	cal.Shutdowns = []model.DateRange{
		{From: date(2024, time.July, 1), To: date(2024, time.July, 8)},
	}
	eng := New(cal)
	schedule, _, err := eng.CreateSchedule(CreateRequest{
		ProjectName: "Shutdown", StartDate: date(2024, time.June, 3), WorkItems: sampleWorkItems(),
	})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	analysis := eng.AnalyzeSchedule(schedule)

	found := false
	for _, rec := range analysis.Recommendations {
		if strings.Contains(rec, "shutdown") {
			found = true
		}
	}
	if !found {
		t.Errorf("recommendations %v should mention the overlapping shutdown", analysis.Recommendations)
	}
}

func TestAnalyzeSchedule_EmptySchedule(t *testing.T) {
	eng := New(model.DefaultCalendar())
	analysis := eng.AnalyzeSchedule(&model.Schedule{})
	if analysis.RiskAssessment.Level != "low" {
		t.Errorf("empty schedule risk = %s, want low", analysis.RiskAssessment.Level)
	}
	if analysis.CriticalPathLength != 0 || len(analysis.Bottlenecks) != 0 {
		t.Errorf("empty schedule should produce zeroed analysis, got %+v", analysis)
	}
}

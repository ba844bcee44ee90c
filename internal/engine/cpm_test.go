package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/blues/cps/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func chainActivities() []*model.Activity {
	a := &model.Activity{Id: "ACT-A", Name: "Foundation Pour", DurationDays: 5}
	b := &model.Activity{Id: "ACT-B", Name: "Structural Frame", DurationDays: 3,
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.FinishStart, LagDays: 0}}}
	c := &model.Activity{Id: "ACT-C", Name: "Envelope Cladding", DurationDays: 2,
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-B", Kind: model.FinishStart, LagDays: 2}}}
	a.SuccessorIds = []string{"ACT-B"}
	b.SuccessorIds = []string{"ACT-C"}
	return []*model.Activity{a, b, c}
}

func TestRunCPM_ThreeActivityChain(t *testing.T) {
	acts := chainActivities()
	start := date(2024, time.January, 1)

	critical, err := RunCPM(acts, start)
	if err != nil {
		t.Fatalf("RunCPM failed: %v", err)
	}

	want := []struct {
		id    string
		early time.Time
		done  time.Time
	}{
		{"ACT-A", date(2024, time.January, 1), date(2024, time.January, 6)},
		{"ACT-B", date(2024, time.January, 6), date(2024, time.January, 9)},
		{"ACT-C", date(2024, time.January, 11), date(2024, time.January, 13)},
	}
	for i, w := range want {
		act := acts[i]
		if !act.EarlyStart.Equal(w.early) {
			t.Errorf("%s earlyStart = %v, want %v", w.id, act.EarlyStart, w.early)
		}
		if !act.EarlyFinish.Equal(w.done) {
			t.Errorf("%s earlyFinish = %v, want %v", w.id, act.EarlyFinish, w.done)
		}
		if act.FloatDays != 0 {
			t.Errorf("%s float = %d, want 0", w.id, act.FloatDays)
		}
		if !act.Critical {
			t.Errorf("%s should be critical", w.id)
		}
	}
	if len(critical) != 3 {
		t.Fatalf("critical path has %d activities, want 3", len(critical))
	}
	if critical[0] != "ACT-A" || critical[1] != "ACT-B" || critical[2] != "ACT-C" {
		t.Errorf("critical path order = %v, want [ACT-A ACT-B ACT-C]", critical)
	}
}

func TestRunCPM_DiamondFloat(t *testing.T) {
	a := &model.Activity{Id: "ACT-A", DurationDays: 2, SuccessorIds: []string{"ACT-B", "ACT-C"}}
	b := &model.Activity{Id: "ACT-B", DurationDays: 4, SuccessorIds: []string{"ACT-D"},
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.FinishStart}}}
	c := &model.Activity{Id: "ACT-C", DurationDays: 1, SuccessorIds: []string{"ACT-D"},
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.FinishStart}}}
	d := &model.Activity{Id: "ACT-D", DurationDays: 2,
		Predecessors: []model.PredecessorLink{
			{ActivityId: "ACT-B", Kind: model.FinishStart},
			{ActivityId: "ACT-C", Kind: model.FinishStart},
		}}
	acts := []*model.Activity{a, b, c, d}

	if _, err := RunCPM(acts, date(2024, time.March, 4)); err != nil {
		t.Fatalf("RunCPM failed: %v", err)
	}

	for _, act := range acts {
		if act.FloatDays < 0 {
			t.Errorf("%s has negative float %d", act.Id, act.FloatDays)
		}
		if act.Critical != (act.FloatDays == 0) {
			t.Errorf("%s critical=%v but float=%d", act.Id, act.Critical, act.FloatDays)
		}
	}
	// the short branch can slip by the duration difference
	if c.FloatDays != 3 {
		t.Errorf("ACT-C float = %d, want 3", c.FloatDays)
	}
	for _, id := range []string{"ACT-A", "ACT-B", "ACT-D"} {
		act := acts[0]
		for _, cand := range acts {
			if cand.Id == id {
				act = cand
			}
		}
		if !act.Critical {
			t.Errorf("%s should be critical", id)
		}
	}
}

func TestRunCPM_MonotonicPasses(t *testing.T) {
	acts := chainActivities()
	acts = append(acts, &model.Activity{Id: "ACT-D", Name: "Standalone Survey", DurationDays: 1})

	if _, err := RunCPM(acts, date(2024, time.January, 1)); err != nil {
		t.Fatalf("RunCPM failed: %v", err)
	}
	for _, act := range acts {
		if act.EarlyStart.After(act.EarlyFinish) {
			t.Errorf("%s earlyStart after earlyFinish", act.Id)
		}
		if act.LateStart.After(act.LateFinish) {
			t.Errorf("%s lateStart after lateFinish", act.Id)
		}
		if got := model.DaysBetween(act.EarlyStart, act.EarlyFinish); got != act.DurationDays {
			t.Errorf("%s earlyFinish-earlyStart = %d days, want %d", act.Id, got, act.DurationDays)
		}
		if got := model.DaysBetween(act.LateStart, act.LateFinish); got != act.DurationDays {
			t.Errorf("%s lateFinish-lateStart = %d days, want %d", act.Id, got, act.DurationDays)
		}
	}
}

func TestRunCPM_PredecessorRespect(t *testing.T) {
	acts := chainActivities()
	byId := make(map[string]*model.Activity)
	for _, act := range acts {
		byId[act.Id] = act
	}

	if _, err := RunCPM(acts, date(2024, time.January, 1)); err != nil {
		t.Fatalf("RunCPM failed: %v", err)
	}
	for _, act := range acts {
		for _, link := range act.Predecessors {
			pred := byId[link.ActivityId]
			floor := model.AddDays(pred.EarlyFinish, link.LagDays)
			if act.EarlyStart.Before(floor) {
				t.Errorf("%s starts %v before predecessor %s finish+lag %v",
					act.Id, act.EarlyStart, pred.Id, floor)
			}
		}
	}
}

func TestRunCPM_AllRelationshipKinds(t *testing.T) {
	start := date(2024, time.January, 1)
	a := &model.Activity{Id: "ACT-A", DurationDays: 5, SuccessorIds: []string{"ACT-B", "ACT-C", "ACT-D"}}
	// start-start: B can begin two days after A begins
	b := &model.Activity{Id: "ACT-B", DurationDays: 3,
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.StartStart, LagDays: 2}}}
	// finish-finish: C cannot finish before A finishes
	c := &model.Activity{Id: "ACT-C", DurationDays: 2,
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.FinishFinish, LagDays: 0}}}
	// start-finish: D cannot finish until four days after A starts
	d := &model.Activity{Id: "ACT-D", DurationDays: 3,
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.StartFinish, LagDays: 4}}}

	acts := []*model.Activity{a, b, c, d}
	if _, err := RunCPM(acts, start); err != nil {
		t.Fatalf("RunCPM failed: %v", err)
	}

	if want := date(2024, time.January, 3); !b.EarlyStart.Equal(want) {
		t.Errorf("SS edge: ACT-B earlyStart = %v, want %v", b.EarlyStart, want)
	}
	if want := date(2024, time.January, 6); !c.EarlyFinish.Equal(want) {
		t.Errorf("FF edge: ACT-C earlyFinish = %v, want %v", c.EarlyFinish, want)
	}
	if want := date(2024, time.January, 5); !d.EarlyFinish.Equal(want) {
		t.Errorf("SF edge: ACT-D earlyFinish = %v, want %v", d.EarlyFinish, want)
	}
}

func TestRunCPM_Idempotent(t *testing.T) {
	acts := chainActivities()
	start := date(2024, time.January, 1)

	if _, err := RunCPM(acts, start); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	type timing struct {
		es, ef, ls, lf time.Time
		float          int
		critical       bool
	}
	first := make(map[string]timing)
	for _, act := range acts {
		first[act.Id] = timing{act.EarlyStart, act.EarlyFinish, act.LateStart, act.LateFinish, act.FloatDays, act.Critical}
	}

	if _, err := RunCPM(acts, start); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	for _, act := range acts {
		prev := first[act.Id]
		if !act.EarlyStart.Equal(prev.es) || !act.EarlyFinish.Equal(prev.ef) ||
			!act.LateStart.Equal(prev.ls) || !act.LateFinish.Equal(prev.lf) ||
			act.FloatDays != prev.float || act.Critical != prev.critical {
			t.Errorf("%s timing changed between identical runs", act.Id)
		}
	}
}

func TestRunCPM_NotEarlierThanConstraint(t *testing.T) {
	start := date(2024, time.January, 1)
	hold := date(2024, time.January, 11)
	act := &model.Activity{Id: "ACT-A", DurationDays: 4,
		Constraints: []model.ActivityConstraint{{Kind: model.ConstraintNotEarlierThan, Date: hold, Reason: "site access"}}}

	if _, err := RunCPM([]*model.Activity{act}, start); err != nil {
		t.Fatalf("RunCPM failed: %v", err)
	}
	if !act.EarlyStart.Equal(hold) {
		t.Errorf("earlyStart = %v, want constraint date %v", act.EarlyStart, hold)
	}
}

func TestRunCPM_CycleRejected(t *testing.T) {
	a := &model.Activity{Id: "ACT-A", DurationDays: 2, SuccessorIds: []string{"ACT-B"},
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-B", Kind: model.FinishStart}}}
	b := &model.Activity{Id: "ACT-B", DurationDays: 2, SuccessorIds: []string{"ACT-A"},
		Predecessors: []model.PredecessorLink{{ActivityId: "ACT-A", Kind: model.FinishStart}}}

	_, err := RunCPM([]*model.Activity{a, b}, date(2024, time.January, 1))
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfg.Kind != ConfigErrorCycle {
		t.Errorf("error kind = %s, want %s", cfg.Kind, ConfigErrorCycle)
	}
}

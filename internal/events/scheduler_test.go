package events

import (
	"testing"

	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/config"
	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/sim"
)

func newRun(t *testing.T) *sim.Sim {
	t.Helper()
	return sim.New("event-test", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), nil)
}

func TestPollWaitsForOneMinute(t *testing.T) {
	s := newRun(t)
	sc := NewScheduler([]catalog.EventDef{{ID: "audit", ProbabilityPerMin: 1}}, s)

	// Less than one in-game minute elapsed: no rolls at all
	s.Update(1000)
	if fired := sc.Poll(); fired != nil {
		t.Errorf("Poll before one minute fired %v", fired)
	}

	s.Update(2000) // past the minute mark now
	fired := sc.Poll()
	if len(fired) != 1 || fired[0].ID != "audit" {
		t.Fatalf("Poll after one minute fired %v, want [audit]", fired)
	}

	// The check interval resets: an immediate re-poll rolls nothing
	if fired := sc.Poll(); fired != nil {
		t.Errorf("Immediate re-poll fired %v", fired)
	}
}

func TestEventFiresAtMostOncePerRun(t *testing.T) {
	s := newRun(t)
	sc := NewScheduler([]catalog.EventDef{{ID: "audit", ProbabilityPerMin: 1}}, s)

	s.Update(3000)
	if fired := sc.Poll(); len(fired) != 1 {
		t.Fatalf("First poll fired %v, want one event", fired)
	}

	s.Update(3000)
	if fired := sc.Poll(); len(fired) != 0 {
		t.Errorf("Second poll re-fired %v", fired)
	}
	if got := len(s.State().Stats.Events); got != 1 {
		t.Errorf("Stats recorded %d events, want 1", got)
	}
}

func TestPollNoOpUnlessRunning(t *testing.T) {
	s := newRun(t)
	sc := NewScheduler([]catalog.EventDef{{ID: "audit", ProbabilityPerMin: 1}}, s)

	s.Update(3000)
	s.Pause()
	if fired := sc.Poll(); fired != nil {
		t.Errorf("Poll fired %v while paused", fired)
	}
}

func TestEventTimingReplays(t *testing.T) {
	run := func() []string {
		s := sim.New("replay", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), nil)
		sc := NewScheduler(catalog.MustDefault().Events, s)
		for i := 0; i < 2000 && s.State().Status == sim.StatusRunning; i++ {
			s.Update(100)
			sc.Poll()
		}
		return s.State().Stats.Events
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("Event counts diverged: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Event order diverged at %d: %v vs %v", i, first, second)
		}
	}
}

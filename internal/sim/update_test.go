package sim

import (
	"math"
	"reflect"
	"testing"

	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/config"
	"github.com/overtime-games/overtime/internal/meta"
)

type recordingNotifier struct {
	runs   []RunStats
	events []string
}

func (r *recordingNotifier) RunEnded(stats RunStats)  { r.runs = append(r.runs, stats) }
func (r *recordingNotifier) EventTriggered(id string) { r.events = append(r.events, id) }

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	return New("test-run", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), nil)
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNewSeedsFromRunID(t *testing.T) {
	s := New("a", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), nil)
	if s.State().Seed != 97 {
		t.Errorf("Seed for run ID \"a\" = %d, want 97", s.State().Seed)
	}
	if s.State().Status != StatusRunning {
		t.Errorf("New run status = %v, want running", s.State().Status)
	}
}

func TestUpdateNoOpUnlessRunning(t *testing.T) {
	s := newTestSim(t)
	s.Pause()
	before := *s.State()
	s.Update(1000)
	if s.State().ElapsedMS != before.ElapsedMS {
		t.Error("Update advanced the clock while paused")
	}
	if s.State().Vitals != before.Vitals {
		t.Error("Update mutated vitals while paused")
	}

	s.Resume()
	s.EndRun()
	before = *s.State()
	s.Update(1000)
	if s.State().ElapsedMS != before.ElapsedMS {
		t.Error("Update advanced the clock after run end")
	}
}

func TestWorkdayClock(t *testing.T) {
	s := newTestSim(t)
	// TimeScale 24: 2.5 real seconds = 1 in-game minute
	s.Update(2500)
	if !almostEqual(s.State().ElapsedMin, 1.0, 1e-9) {
		t.Errorf("ElapsedMin after 2.5s = %v, want 1.0", s.State().ElapsedMin)
	}
}

func TestEnergyDrain(t *testing.T) {
	s := newTestSim(t)
	s.Update(1000)
	if !almostEqual(s.State().Vitals.Energy, 0.996, 1e-9) {
		t.Errorf("Energy after 1s = %v, want 0.996", s.State().Vitals.Energy)
	}
	if !almostEqual(s.State().Stats.MinEnergy, 0.996, 1e-9) {
		t.Errorf("MinEnergy not tracked: %v", s.State().Stats.MinEnergy)
	}
}

func TestEnergyRegenBelowThreshold(t *testing.T) {
	s := newTestSim(t)
	s.State().Vitals.Energy = 0.1
	s.Update(1000)
	// drain 0.004, regen at half rate 0.01
	if !almostEqual(s.State().Vitals.Energy, 0.106, 1e-9) {
		t.Errorf("Energy after 1s at low level = %v, want 0.106", s.State().Vitals.Energy)
	}
}

func TestConcentrationDriftAndRegen(t *testing.T) {
	s := newTestSim(t)

	// No clicks yet: passive drift
	s.Update(1000)
	want := 0.8 - concentrationDriftPerSec
	if !almostEqual(s.State().Vitals.Concentration, want, 1e-9) {
		t.Errorf("Concentration after 1s drift = %v, want %v", s.State().Vitals.Concentration, want)
	}

	// A recent click switches drift to regeneration
	s.Click()
	before := s.State().Vitals.Concentration
	s.Update(1000)
	want = before + concentrationRegenPerSec
	if !almostEqual(s.State().Vitals.Concentration, want, 1e-9) {
		t.Errorf("Concentration after click = %v, want %v", s.State().Vitals.Concentration, want)
	}

	// Outside the 5s window the drift resumes
	s.Update(6000)
	if s.State().Vitals.Concentration >= want {
		t.Error("Concentration did not drift after the click window expired")
	}
}

func TestMotivationDecay(t *testing.T) {
	s := newTestSim(t)
	s.Update(1000)
	if !almostEqual(s.State().Vitals.Motivation, 0.68, 1e-9) {
		t.Errorf("Motivation after 1s = %v, want 0.68", s.State().Vitals.Motivation)
	}
}

func TestAutomationOutput(t *testing.T) {
	s := newTestSim(t)
	st := s.State()
	def := s.cat.Automations[0]
	st.Automations[def.ID] = &Automation{Level: 2, Enabled: true}

	apBefore := st.Resources.AP
	s.Update(1000)

	// No confusion: full efficiency, output = base × level
	wantGain := def.BaseOutput * 2
	if !almostEqual(st.Resources.AP-apBefore, wantGain, 1e-9) {
		t.Errorf("AP gain from automation = %v, want %v", st.Resources.AP-apBefore, wantGain)
	}
	if !almostEqual(st.Stats.TotalAP, wantGain, 1e-9) {
		t.Errorf("TotalAP = %v, want %v", st.Stats.TotalAP, wantGain)
	}
	if st.Resources.Workload <= 0 {
		t.Error("Automation produced no workload")
	}

	// Disabled tiers contribute nothing
	st.Automations[def.ID].Enabled = false
	apBefore = st.Resources.AP
	s.Update(1000)
	if st.Resources.AP != apBefore {
		t.Error("Disabled automation still produced AP")
	}
}

func TestConfusionReducesAutomationEfficiency(t *testing.T) {
	s := newTestSim(t)
	st := s.State()
	def := s.cat.Automations[0]
	st.Automations[def.ID] = &Automation{Level: 1, Enabled: true}
	st.Vitals.Confusion = 0.8

	apBefore := st.Resources.AP
	s.Update(1000)
	wantGain := def.BaseOutput * (1 - 0.8*0.25)
	if !almostEqual(st.Resources.AP-apBefore, wantGain, 1e-9) {
		t.Errorf("AP gain under confusion = %v, want %v", st.Resources.AP-apBefore, wantGain)
	}
}

func TestOverloadIsDerived(t *testing.T) {
	s := newTestSim(t)
	st := s.State()
	st.Vitals.Energy = 0.5
	st.Vitals.Confusion = 0.4
	st.Resources.Workload = 0.8

	s.updateOverload()

	// (1-0.5)*0.4 + 0.4*0.3 + (0.8-0.7)*0.3
	want := 0.2 + 0.12 + 0.03
	if !almostEqual(st.Vitals.Overload, want, 1e-9) {
		t.Errorf("Overload = %v, want %v", st.Vitals.Overload, want)
	}
}

func TestVisualsMapping(t *testing.T) {
	s := newTestSim(t)
	st := s.State()
	st.Resources.Workload = 0.5
	st.Vitals.Energy = 1
	st.Vitals.Overload = 0.9

	s.updateVisuals()

	if !almostEqual(st.Visuals.Hue, 100, 1e-9) {
		t.Errorf("Hue at 0.5 workload = %v, want 100", st.Visuals.Hue)
	}
	if !almostEqual(st.Visuals.Intensity, 1, 1e-9) {
		t.Errorf("Intensity at full energy = %v, want 1", st.Visuals.Intensity)
	}
	if !almostEqual(st.Visuals.Wobble, 0.4, 1e-9) {
		t.Errorf("Wobble at 0.9 overload = %v, want 0.4", st.Visuals.Wobble)
	}
}

func TestTerminationPriority(t *testing.T) {
	tests := []struct {
		name  string
		setup func(st *RunState)
		want  EndReason
	}{
		{
			name: "energy before concentration",
			setup: func(st *RunState) {
				st.Vitals.Energy = 0
				st.Vitals.Concentration = 0
			},
			want: ReasonEnergy,
		},
		{
			name: "concentration before motivation",
			setup: func(st *RunState) {
				st.Vitals.Concentration = 0
				st.Vitals.Motivation = 0
			},
			want: ReasonConcentration,
		},
		{
			name: "motivation before time",
			setup: func(st *RunState) {
				st.Vitals.Motivation = 0
				st.ElapsedMin = 480
			},
			want: ReasonMotivation,
		},
		{
			name: "time before overload",
			setup: func(st *RunState) {
				st.ElapsedMin = 480
				st.Vitals.Overload = 1
			},
			want: ReasonTime,
		},
		{
			name: "overload before collapse",
			setup: func(st *RunState) {
				st.Vitals.Overload = 0.95
				st.Resources.Workload = 0.96
			},
			want: ReasonOverload,
		},
		{
			name: "collapse alone",
			setup: func(st *RunState) {
				st.Resources.Workload = 0.95
			},
			want: ReasonCollapse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t)
			tt.setup(s.State())
			s.checkRunEnd()
			if s.State().Status != StatusEnded {
				t.Fatal("Run did not end")
			}
			if s.State().EndReason != tt.want {
				t.Errorf("EndReason = %q, want %q", s.State().EndReason, tt.want)
			}
		})
	}
}

func TestHealthyRunDoesNotEnd(t *testing.T) {
	s := newTestSim(t)
	s.checkRunEnd()
	if s.State().Status != StatusRunning {
		t.Errorf("Healthy run ended with reason %q", s.State().EndReason)
	}
}

func TestTimeTerminationThroughPipeline(t *testing.T) {
	s := newTestSim(t)
	s.State().WorkdayMin = 1 // one in-game minute = 2.5 real seconds

	for i := 0; i < 200 && s.State().Status == StatusRunning; i++ {
		s.Update(100)
	}

	if s.State().Status != StatusEnded {
		t.Fatal("Run did not end after the workday elapsed")
	}
	if s.State().EndReason != ReasonTime {
		t.Errorf("EndReason = %q, want %q", s.State().EndReason, ReasonTime)
	}
}

func TestRunStatsEmittedOnce(t *testing.T) {
	rec := &recordingNotifier{}
	s := New("test-run", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), rec)

	s.Update(1000)
	s.EndRun()
	s.EndRun()
	s.Update(1000)

	if len(rec.runs) != 1 {
		t.Fatalf("RunEnded called %d times, want 1", len(rec.runs))
	}
	stats := rec.runs[0]
	if stats.EndReason != ReasonUser {
		t.Errorf("EndReason = %q, want %q", stats.EndReason, ReasonUser)
	}
	if stats.RunID != "test-run" {
		t.Errorf("RunID = %q, want test-run", stats.RunID)
	}
	if stats.DurationMS != 1000 {
		t.Errorf("DurationMS = %v, want 1000", stats.DurationMS)
	}
}

func TestCalculateVP(t *testing.T) {
	s := newTestSim(t)
	st := s.State()
	st.Stats.Clicks = 100
	st.Stats.TotalAP = 500
	st.ElapsedMS = 1_200_000
	st.Vitals.Confusion = 0.1
	st.Clarity = 0.6

	// (5 + 5 + 12 - 0.5) × 1.18 = 25.37, rounded
	if got := s.CalculateVP(); got != 25 {
		t.Errorf("CalculateVP() = %d, want 25", got)
	}
}

func TestCalculateVPMinimum(t *testing.T) {
	s := newTestSim(t)
	if got := s.CalculateVP(); got != 1 {
		t.Errorf("CalculateVP() on a fresh run = %d, want the minimum 1", got)
	}
}

func TestExtractStatsAvgKPM(t *testing.T) {
	s := newTestSim(t)
	st := s.State()
	st.Stats.Clicks = 60
	st.ElapsedMS = 60_000

	stats := s.ExtractStats()
	if !almostEqual(stats.AvgKPM, 60, 1e-9) {
		t.Errorf("AvgKPM = %v, want 60", stats.AvgKPM)
	}
}

func TestDeterministicRuns(t *testing.T) {
	script := func(s *Sim) {
		def := s.cat.Automations[0]
		coffee := s.cat.PowerUps[0]
		for i := 0; i < 600; i++ {
			if i%3 == 0 {
				s.Click()
			}
			if i == 50 {
				s.ActivatePowerUp(coffee)
			}
			if i == 100 {
				s.State().Resources.AP += 100 // grant for the purchase path
				s.BuyAutomation(def)
				s.BuyAutomation(def)
			}
			if i == 300 {
				s.ExchangeAPForOP(20)
			}
			s.Update(33)
		}
	}

	s1 := New("replay-check", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), nil)
	s2 := New("replay-check", config.Default(), catalog.MustDefault(), meta.DefaultMultipliers(), nil)
	script(s1)
	script(s2)

	if !reflect.DeepEqual(s1.Snapshot(), s2.Snapshot()) {
		t.Error("Snapshots diverged for identical run ID and command script")
	}
	if !reflect.DeepEqual(s1.ExtractStats(), s2.ExtractStats()) {
		t.Error("RunStats diverged for identical run ID and command script")
	}
}

func TestVitalsStayInBounds(t *testing.T) {
	s := newTestSim(t)
	st := s.State()

	for i := 0; i < 2000 && st.Status == StatusRunning; i++ {
		s.Click()
		s.Update(100)

		v := st.Vitals
		for name, val := range map[string]float64{
			"energy":        v.Energy,
			"concentration": v.Concentration,
			"motivation":    v.Motivation,
			"confusion":     v.Confusion,
			"overload":      v.Overload,
			"workload":      st.Resources.Workload,
			"clarity":       st.Clarity,
		} {
			if val < 0 || val > 1 {
				t.Fatalf("%s out of [0,1] at tick %d: %v", name, i, val)
			}
		}
	}
}

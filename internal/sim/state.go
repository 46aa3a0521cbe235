package sim

import (
	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/config"
	"github.com/overtime-games/overtime/internal/meta"
)

// Status represents the run lifecycle state.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusPaused
	StatusEnded
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason identifies which terminal condition ended a run.
type EndReason string

const (
	ReasonNone          EndReason = ""
	ReasonEnergy        EndReason = "ENERGY"
	ReasonConcentration EndReason = "CONCENTRATION"
	ReasonMotivation    EndReason = "MOTIVATION"
	ReasonTime          EndReason = "TIME"
	ReasonOverload      EndReason = "OVERLOAD"
	ReasonCollapse      EndReason = "COLLAPSE"
	ReasonUser          EndReason = "USER"
)

// Resources holds the in-run currencies and the workload meter.
type Resources struct {
	AP       float64 // work points, unbounded
	OP       float64 // order points, 0..100
	VP       float64 // meta-currency preview, derived only
	Workload float64 // chaos meter, 0..1
}

// Vitals holds the player's condition meters, each 0..1.
// Overload is derived every tick from the other fields and is never
// mutated directly.
type Vitals struct {
	Energy        float64
	Concentration float64
	Motivation    float64
	Confusion     float64
	Overload      float64
}

// Automation is the runtime state of one purchased automation.
type Automation struct {
	Level   int
	Enabled bool
}

// ActiveEffect is a running timed power-up or measure.
// EndMS of 0 marks an instantaneous activation with no duration.
type ActiveEffect struct {
	ID      string
	StartMS float64
	EndMS   float64
	Effects []catalog.Effect
}

// Stats accumulates per-run statistics.
type Stats struct {
	Clicks           int
	Failures         int
	LastClickMS      float64
	ClickWindow      []float64 // click timestamps within the last 60s
	TotalAP          float64
	PeakOP           float64
	PeakWorkload     float64
	MinEnergy        float64
	MinConcentration float64
	Events           []string // triggered event IDs, in order
}

// Visuals are presentation parameters derived from the state each tick.
type Visuals struct {
	Hue       float64 // 200 (calm blue) down to 0 (red) as workload rises
	Intensity float64 // tied to energy
	Wobble    float64 // screen disturbance, nonzero above 0.7 overload
}

// RunState is the complete mutable state of one run. It is exclusively
// owned by the simulation driver for the lifetime of the run and is
// discarded after the RunStats extraction at run end.
type RunState struct {
	RunID string
	Seed  uint32

	ElapsedMS  float64
	WorkdayMin float64 // total in-game workday length
	ElapsedMin float64 // in-game minutes elapsed
	TimeScale  float64 // real seconds -> in-game minutes factor

	Resources Resources
	Vitals    Vitals
	Clarity   float64 // 0..1, derived each tick from OP and workload

	Automations map[string]*Automation

	ActivePowerUps   []ActiveEffect
	ActiveMeasures   []ActiveEffect
	PowerUpCooldowns map[string]float64 // id -> earliest next activation, ms
	MeasureCooldowns map[string]float64

	Stats   Stats
	Visuals Visuals

	Status    Status
	EndReason EndReason
}

// RunStats is the immutable record extracted from a run at its end and
// handed to the persistence layer exactly once.
type RunStats struct {
	RunID        string
	DurationMS   float64
	EndReason    EndReason
	VP           int
	TotalAP      float64
	PeakOP       float64
	Clicks       int
	AvgKPM       float64
	PeakWorkload float64
	MinEnergy    float64
	Events       []string
}

// Notifier receives push notifications from the core: the one-time
// run-end record and fire-once event triggers. Implementations must not
// call back into the simulation. A nil Notifier is valid.
type Notifier interface {
	RunEnded(stats RunStats)
	EventTriggered(id string)
}

// Sim owns a RunState together with the immutable inputs that drive it:
// balancing configuration, content catalog, meta multipliers and the
// seeded RNG. One Sim per run; runs never resume.
type Sim struct {
	state    *RunState
	cfg      config.Balancing
	cat      catalog.Catalog
	mult     meta.Multipliers
	rng      *RNG
	notifier Notifier

	statsEmitted bool
}

// New creates a simulation for a fresh run. The seed is derived
// deterministically from the run ID, so a run can be replayed from its
// identifier alone.
func New(runID string, cfg config.Balancing, cat catalog.Catalog, mult meta.Multipliers, notifier Notifier) *Sim {
	seed := SeedFromRunID(runID)

	state := &RunState{
		RunID:      runID,
		Seed:       seed,
		WorkdayMin: 480, // 8 hours
		TimeScale:  24,  // 1 real minute = 24 in-game minutes
		Resources: Resources{
			AP: mult.StartAP,
		},
		Vitals: Vitals{
			Energy:        1.0,
			Concentration: 0.8,
			Motivation:    0.7,
		},
		Clarity:          0.5,
		Automations:      make(map[string]*Automation),
		PowerUpCooldowns: make(map[string]float64),
		MeasureCooldowns: make(map[string]float64),
		Stats: Stats{
			MinEnergy:        1,
			MinConcentration: 1,
		},
		Visuals: Visuals{
			Hue:       200,
			Intensity: 0.5,
		},
		Status: StatusRunning,
	}

	return &Sim{
		state:    state,
		cfg:      cfg,
		cat:      cat,
		mult:     mult,
		rng:      NewRNG(seed),
		notifier: notifier,
	}
}

// State exposes the underlying run state. Callers outside the package
// must treat it as read-only; all mutation goes through Update and the
// command handlers.
func (s *Sim) State() *RunState {
	return s.state
}

// RNG returns the run's deterministic random stream. Collaborators such
// as the event scheduler share it so the whole run replays from one seed.
func (s *Sim) RNG() *RNG {
	return s.rng
}

// Multipliers returns the meta multipliers fixed at run start.
func (s *Sim) Multipliers() meta.Multipliers {
	return s.mult
}

// maxEnergy is the energy upper bound after the meta energy-cap bonus.
func (s *Sim) maxEnergy() float64 {
	return 1.0 * s.mult.EnergyCap
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

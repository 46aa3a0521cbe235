// Package catalog provides the static content definitions the simulation
// consumes: automations, power-ups, measures and random events, plus the
// run-end comment pools. Definitions are immutable input data loaded from
// YAML; the simulation core never computes them.
package catalog

// Target identifies the state field an effect applies to.
type Target string

const (
	TargetEnergy        Target = "energy"
	TargetConcentration Target = "concentration"
	TargetMotivation    Target = "motivation"
	TargetWorkload      Target = "workload"
	TargetConfusion     Target = "confusion"
	TargetClarity       Target = "clarity"
	TargetWorkloadRate  Target = "workload_rate"
)

// Kind identifies how an effect applies.
//
//   - instant: applied exactly once at activation
//   - addition: applied continuously, value per second, while active
//   - multiplier: scales a rate while active (workload_rate only)
//   - clamp: raises a floor once at activation (clarity only)
type Kind string

const (
	KindInstant    Kind = "instant"
	KindAddition   Kind = "addition"
	KindMultiplier Kind = "multiplier"
	KindClamp      Kind = "clamp"
)

// Effect is one state modification carried by a power-up, measure or
// event definition.
type Effect struct {
	Target Target  `yaml:"target"`
	Kind   Kind    `yaml:"kind"`
	Value  float64 `yaml:"value"`
}

// AutomationDef describes a purchasable automation tier.
type AutomationDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	BaseOutput  float64 `yaml:"base_output"`  // AP/s per level
	BaseCost    float64 `yaml:"base_cost"`    // AP cost at level 0
	Growth      float64 `yaml:"growth"`       // cost multiplier per level
	ChaosFactor float64 `yaml:"chaos_factor"` // workload generated per level per second
}

// PowerUpDef describes an activatable timed buff.
type PowerUpDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	DurationSec float64  `yaml:"duration_sec"`
	CooldownSec float64  `yaml:"cooldown_sec"`
	Effects     []Effect `yaml:"effects"`
}

// MeasureDef describes an OP-gated intervention. A zero duration means
// the effects apply instantaneously with no active entry.
type MeasureDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	CostOP      float64  `yaml:"cost_op"`
	DurationSec float64  `yaml:"duration_sec"`
	CooldownSec float64  `yaml:"cooldown_sec"`
	Effects     []Effect `yaml:"effects"`
}

// EventDef describes a random workday event checked once per in-game
// minute.
type EventDef struct {
	ID                string   `yaml:"id"`
	Title             string   `yaml:"title"`
	Description       string   `yaml:"description"`
	ProbabilityPerMin float64  `yaml:"probability_per_min"`
	Effects           []Effect `yaml:"effects"`
}

// Catalog bundles all content definitions for one game configuration.
type Catalog struct {
	Automations []AutomationDef     `yaml:"automations"`
	PowerUps    []PowerUpDef        `yaml:"powerups"`
	Measures    []MeasureDef        `yaml:"measures"`
	Events      []EventDef          `yaml:"events"`
	EndComments map[string][]string `yaml:"end_comments"` // keyed by end reason
}

// Automation looks up an automation definition by ID.
func (c *Catalog) Automation(id string) (AutomationDef, bool) {
	for _, a := range c.Automations {
		if a.ID == id {
			return a, true
		}
	}
	return AutomationDef{}, false
}

// PowerUp looks up a power-up definition by ID.
func (c *Catalog) PowerUp(id string) (PowerUpDef, bool) {
	for _, p := range c.PowerUps {
		if p.ID == id {
			return p, true
		}
	}
	return PowerUpDef{}, false
}

// Measure looks up a measure definition by ID.
func (c *Catalog) Measure(id string) (MeasureDef, bool) {
	for _, m := range c.Measures {
		if m.ID == id {
			return m, true
		}
	}
	return MeasureDef{}, false
}

// Event looks up an event definition by ID.
func (c *Catalog) Event(id string) (EventDef, bool) {
	for _, e := range c.Events {
		if e.ID == id {
			return e, true
		}
	}
	return EventDef{}, false
}

// Package config provides YAML-based balancing configuration for the
// simulation. Every numeric constant that tunes the run lives here and is
// injected into the core as immutable data.
package config

// Balancing contains all tuning constants for a run.
type Balancing struct {
	Costs    Costs        `yaml:"costs"`
	VPYield  VPYield      `yaml:"vp_yield"`
	Workload Workload     `yaml:"workload"`
	Vitals   VitalsTuning `yaml:"vitals"`
}

// Costs defines the purchase cost curves.
type Costs struct {
	Automation CostCurve `yaml:"automation"`
	PowerUps   CostCurve `yaml:"powerups"`
	Upgrades   CostCurve `yaml:"upgrades"`
}

// CostCurve is an exponential cost progression: base × growth^level.
type CostCurve struct {
	Base   float64 `yaml:"base"`
	Growth float64 `yaml:"growth"`
}

// VPYield tunes the end-of-run meta-currency payout.
type VPYield struct {
	MinPerRun    int     `yaml:"min_per_run"`
	TimeFactor   float64 `yaml:"time_factor"`
	ClarityBonus float64 `yaml:"clarity_bonus"`
}

// Workload tunes the chaos meter.
type Workload struct {
	ChaosFactor float64 `yaml:"chaos_factor"` // scales automation's workload contribution
	Damping     float64 `yaml:"damping"`      // passive damping, scaled by clarity
}

// VitalsTuning tunes energy, concentration, motivation, confusion and the
// overload aggregate.
type VitalsTuning struct {
	EnergyCostPerClick   float64         `yaml:"energy_cost_per_click"`
	EnergyDrainPerSec    float64         `yaml:"energy_drain_per_sec"`
	EnergyRegenPerSec    float64         `yaml:"energy_regen_per_sec"`
	ConfusionPerWorkload float64         `yaml:"confusion_per_workload"`
	ConfusionDecayPerSec float64         `yaml:"confusion_decay_per_sec"`
	OverloadThreshold    float64         `yaml:"overload_threshold"`
	Weights              OverloadWeights `yaml:"overload_weights"`
}

// OverloadWeights weight the three inputs of the derived overload vital.
type OverloadWeights struct {
	Energy    float64 `yaml:"energy"`
	Confusion float64 `yaml:"confusion"`
	Workload  float64 `yaml:"workload"`
}

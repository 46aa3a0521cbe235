package config

import (
	_ "embed"
)

//go:embed defaults/balancing.yaml
var defaultBalancingYAML []byte

// Default returns the default balancing configuration.
func Default() Balancing {
	return Balancing{
		Costs: Costs{
			Automation: CostCurve{Base: 10, Growth: 1.15},
			PowerUps:   CostCurve{Base: 25, Growth: 1.25},
			Upgrades:   CostCurve{Base: 10, Growth: 1.5},
		},
		VPYield: VPYield{
			MinPerRun:    1,
			TimeFactor:   0.01,
			ClarityBonus: 0.3,
		},
		Workload: Workload{
			ChaosFactor: 1.0,
			Damping:     0.02,
		},
		Vitals: VitalsTuning{
			EnergyCostPerClick:   0.015,
			EnergyDrainPerSec:    0.004,
			EnergyRegenPerSec:    0.02,
			ConfusionPerWorkload: 0.1,
			ConfusionDecayPerSec: 0.02,
			OverloadThreshold:    0.9,
			Weights: OverloadWeights{
				Energy:    0.4,
				Confusion: 0.3,
				Workload:  0.3,
			},
		},
	}
}

// Package meta holds permanent meta-progression: the VP ledger, purchased
// upgrades, and the derivation of the per-run multipliers the simulation
// consumes. State persists across runs; the derived Multipliers are
// computed once at run start and are read-only afterwards.
package meta

import (
	"math"
	"strings"
)

// State is the permanent progression carried between runs.
type State struct {
	Rank        int
	RankTitle   string
	TotalVP     int
	AvailableVP int
	Upgrades    []string
}

// NewState returns an empty progression state.
func NewState() State {
	return State{Rank: 1, RankTitle: "Intern"}
}

// CreditVP adds a run payout to both the lifetime total and the
// spendable balance.
func (s *State) CreditVP(vp int) {
	s.TotalVP += vp
	s.AvailableVP += vp
}

// Multipliers are the scalar modifiers a run derives once at start.
// All fields default to the identity (1 or 0).
type Multipliers struct {
	ClickYield         float64 // multiplies AP per click
	EnergyCap          float64 // raises the energy upper bound
	ConcentrationDrift float64 // scales passive concentration drift down
	AutomationCost     float64 // scales automation purchase costs down
	StartAP            float64 // starting AP bonus
	PassiveOutput      float64 // multiplies automation output
	MotivationDrift    float64 // scales passive motivation decay down
	ChaosResistance    float64 // <1 adds extra workload damping
}

// DefaultMultipliers returns the identity set used when no meta
// progression is in play.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		ClickYield:         1,
		EnergyCap:          1,
		ConcentrationDrift: 1,
		AutomationCost:     1,
		StartAP:            0,
		PassiveOutput:      1,
		MotivationDrift:    1,
		ChaosResistance:    1,
	}
}

// chaosResistanceTable maps upgrade level to the workload-resistance
// factor. Level 5 is near-total resistance.
var chaosResistanceTable = [...]float64{1.0, 0.8, 0.6, 0.4, 0.2, 0.01}

// DeriveMultipliers computes the run multipliers from the purchased
// upgrade list. Each upgrade family stacks by the number of owned levels.
func DeriveMultipliers(s State) Multipliers {
	m := DefaultMultipliers()

	m.ClickYield = 1 + 0.1*float64(countPrefix(s.Upgrades, "click_bonus"))
	m.EnergyCap = 1 + 0.1*float64(countPrefix(s.Upgrades, "energy_max"))
	m.ConcentrationDrift = math.Pow(0.75, float64(countPrefix(s.Upgrades, "concentration_regen")))
	m.AutomationCost = math.Pow(0.9, float64(countPrefix(s.Upgrades, "auto_discount")))
	m.PassiveOutput = 1 + 0.15*float64(countPrefix(s.Upgrades, "output_bonus"))
	m.MotivationDrift = math.Pow(0.7, float64(countPrefix(s.Upgrades, "motivation_stable")))

	if hasUpgrade(s.Upgrades, "start_bonus_1") {
		m.StartAP = 5
	}

	level := countPrefix(s.Upgrades, "chaos_resist")
	if level >= len(chaosResistanceTable) {
		level = len(chaosResistanceTable) - 1
	}
	m.ChaosResistance = chaosResistanceTable[level]

	return m
}

func countPrefix(upgrades []string, prefix string) int {
	n := 0
	for _, u := range upgrades {
		if strings.HasPrefix(u, prefix) {
			n++
		}
	}
	return n
}

func hasUpgrade(upgrades []string, id string) bool {
	for _, u := range upgrades {
		if u == id {
			return true
		}
	}
	return false
}

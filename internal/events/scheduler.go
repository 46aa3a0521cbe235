// Package events provides the random workday-event scheduler. It is a
// collaborator of the simulation core, not part of it: the driver
// constructs one per run and polls it between ticks. Event rolls draw
// from the run's own RNG, so event timing replays with the run.
package events

import (
	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/sim"
)

// Scheduler rolls for random events once per elapsed in-game minute.
// Each event fires at most once per run.
type Scheduler struct {
	defs         []catalog.EventDef
	sim          *sim.Sim
	lastCheckMin float64
}

// NewScheduler creates a scheduler for the given run.
func NewScheduler(defs []catalog.EventDef, s *sim.Sim) *Scheduler {
	return &Scheduler{defs: defs, sim: s}
}

// Poll rolls for events if at least one in-game minute has passed since
// the previous check. Returns the definitions of events that fired this
// poll, in catalog order.
func (sc *Scheduler) Poll() []catalog.EventDef {
	state := sc.sim.State()
	if state.Status != sim.StatusRunning {
		return nil
	}

	elapsed := state.ElapsedMin - sc.lastCheckMin
	if elapsed < 1 {
		return nil
	}
	sc.lastCheckMin = state.ElapsedMin

	var fired []catalog.EventDef
	rng := sc.sim.RNG()
	for _, def := range sc.defs {
		p := def.ProbabilityPerMin * elapsed
		if !rng.Chance(p) {
			continue
		}
		if sc.sim.TriggerEvent(def) {
			fired = append(fired, def)
		}
	}
	return fired
}

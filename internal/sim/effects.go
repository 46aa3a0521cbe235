package sim

import "github.com/overtime-games/overtime/internal/catalog"

// Effect semantics, shared by power-ups, measures and events:
//
//   - Instant effects apply exactly once, at activation.
//   - Clamp effects apply once at activation and only ever raise the
//     target (a floor), never lower it.
//   - Addition effects apply continuously while their owning entry is
//     active: value per second, integrated by the update pipeline.
//   - Multiplier effects scale a rate while active; currently only the
//     workload growth rate is a valid target.

// applyActivationEffects applies the one-shot portion of an effect list
// (Instant and Clamp kinds). Addition and Multiplier kinds are handled by
// the update pipeline while the entry is active.
func (s *Sim) applyActivationEffects(effects []catalog.Effect) {
	st := s.state
	for _, eff := range effects {
		switch eff.Kind {
		case catalog.KindInstant:
			switch eff.Target {
			case catalog.TargetEnergy:
				st.Vitals.Energy = clamp(st.Vitals.Energy+eff.Value, 0, s.maxEnergy())
			case catalog.TargetConcentration:
				st.Vitals.Concentration = clamp01(st.Vitals.Concentration + eff.Value)
			case catalog.TargetMotivation:
				st.Vitals.Motivation = clamp01(st.Vitals.Motivation + eff.Value)
			case catalog.TargetWorkload:
				st.Resources.Workload = clamp01(st.Resources.Workload + eff.Value)
			case catalog.TargetConfusion:
				st.Vitals.Confusion = clamp01(st.Vitals.Confusion + eff.Value)
			}
		case catalog.KindClamp:
			if eff.Target == catalog.TargetClarity && st.Clarity < eff.Value {
				st.Clarity = eff.Value
			}
		}
	}
}

// continuousAddition sums the per-second Addition values targeting the
// given field across all currently active power-ups and measures.
func (s *Sim) continuousAddition(target catalog.Target) float64 {
	total := 0.0
	total += sumAdditions(s.state.ActivePowerUps, target, s.state.ElapsedMS)
	total += sumAdditions(s.state.ActiveMeasures, target, s.state.ElapsedMS)
	return total
}

func sumAdditions(entries []ActiveEffect, target catalog.Target, nowMS float64) float64 {
	total := 0.0
	for _, entry := range entries {
		if entry.EndMS <= nowMS {
			continue
		}
		for _, eff := range entry.Effects {
			if eff.Target == target && eff.Kind == catalog.KindAddition {
				total += eff.Value
			}
		}
	}
	return total
}

// rateMultiplier multiplies the Multiplier values targeting the given
// rate across all active power-ups and measures. Returns 1 when none are
// active.
func (s *Sim) rateMultiplier(target catalog.Target) float64 {
	mult := 1.0
	mult *= productMultipliers(s.state.ActivePowerUps, target, s.state.ElapsedMS)
	mult *= productMultipliers(s.state.ActiveMeasures, target, s.state.ElapsedMS)
	return mult
}

func productMultipliers(entries []ActiveEffect, target catalog.Target, nowMS float64) float64 {
	mult := 1.0
	for _, entry := range entries {
		if entry.EndMS <= nowMS {
			continue
		}
		for _, eff := range entry.Effects {
			if eff.Target == target && eff.Kind == catalog.KindMultiplier {
				mult *= eff.Value
			}
		}
	}
	return mult
}

// TriggerEvent applies a random event's one-shot effects and records the
// event ID in the run statistics. Each event fires at most once per run;
// a repeat trigger is ignored. Returns true if the event fired.
func (s *Sim) TriggerEvent(def catalog.EventDef) bool {
	st := s.state
	if st.Status != StatusRunning {
		return false
	}
	for _, id := range st.Stats.Events {
		if id == def.ID {
			return false
		}
	}

	s.applyActivationEffects(def.Effects)
	st.Stats.Events = append(st.Stats.Events, def.ID)

	if s.notifier != nil {
		s.notifier.EventTriggered(def.ID)
	}
	return true
}

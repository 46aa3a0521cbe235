package sim

import (
	"math"

	"github.com/overtime-games/overtime/internal/catalog"
)

// Tuning constants that are part of the simulation's identity rather
// than the balancing surface. Changing any of these changes every
// recorded run's replay.
const (
	concentrationDriftPerSec = 0.00667 // ~120s from full to empty
	concentrationRegenPerSec = 0.02    // while within the click window
	clickRegenWindowMS       = 5000

	motivationDecayPerSec = 0.02

	opBaseRate         = 0.08
	opClarityWeight    = 0.50
	opWorkloadWeight   = 0.40
	opMotivationWeight = 0.25
	opErrorWeight      = 0.30
	opDecayRate        = 0.02
	opCap              = 100
)

// Update advances the simulation by one tick of deltaMS milliseconds.
// It is a no-op while the run is paused or ended. The subsystems run in
// a fixed order: later steps read values the earlier steps produced in
// the same tick, so the order is load-bearing and must not change.
func (s *Sim) Update(deltaMS float64) {
	st := s.state
	if st.Status != StatusRunning {
		return
	}

	dt := deltaMS / 1000
	st.ElapsedMS += deltaMS

	s.updateTime(dt)
	s.updateEnergy(dt)
	s.updateConcentration(dt)
	s.updateMotivation(dt)
	s.updateAutomation(dt)
	s.expireTimedEffects()
	s.updateWorkload(dt)
	s.updateConfusion(dt)
	s.updateOP(dt)
	s.updateOverload()
	s.updateVisuals()
	// Statistics bookkeeping: min/peak values are tracked inside their
	// owning steps and the click window is pruned at click time.

	s.checkRunEnd()
}

// updateTime advances the in-game workday clock.
func (s *Sim) updateTime(dt float64) {
	st := s.state
	st.ElapsedMin += dt * (st.TimeScale / 60)
}

// updateEnergy drains energy passively and regenerates mildly below the
// low-energy threshold. The upper bound is raised by the meta energy-cap
// multiplier.
func (s *Sim) updateEnergy(dt float64) {
	st := s.state
	cfg := s.cfg.Vitals

	st.Vitals.Energy -= cfg.EnergyDrainPerSec * dt
	if st.Vitals.Energy < 0.3 {
		st.Vitals.Energy += cfg.EnergyRegenPerSec * 0.5 * dt
	}
	st.Vitals.Energy += s.continuousAddition(catalog.TargetEnergy) * dt
	st.Vitals.Energy = clamp(st.Vitals.Energy, 0, s.maxEnergy())

	if st.Vitals.Energy < st.Stats.MinEnergy {
		st.Stats.MinEnergy = st.Vitals.Energy
	}
}

// updateConcentration regenerates slowly for a short window after each
// click and otherwise drifts toward exhaustion.
func (s *Sim) updateConcentration(dt float64) {
	st := s.state

	sinceClick := st.ElapsedMS - st.Stats.LastClickMS
	if st.Stats.LastClickMS > 0 && sinceClick < clickRegenWindowMS {
		st.Vitals.Concentration += concentrationRegenPerSec * dt
	} else {
		st.Vitals.Concentration -= concentrationDriftPerSec * s.mult.ConcentrationDrift * dt
	}
	st.Vitals.Concentration += s.continuousAddition(catalog.TargetConcentration) * dt
	st.Vitals.Concentration = clamp01(st.Vitals.Concentration)

	if st.Vitals.Concentration < st.Stats.MinConcentration {
		st.Stats.MinConcentration = st.Vitals.Concentration
	}
}

// updateMotivation applies the constant passive decay plus continuous
// bonuses from active addition effects.
func (s *Sim) updateMotivation(dt float64) {
	st := s.state

	st.Vitals.Motivation -= motivationDecayPerSec * s.mult.MotivationDrift * dt
	st.Vitals.Motivation += s.continuousAddition(catalog.TargetMotivation) * dt
	st.Vitals.Motivation = clamp01(st.Vitals.Motivation)
}

// updateAutomation generates passive AP from every enabled automation
// and adds its proportional workload contribution.
func (s *Sim) updateAutomation(dt float64) {
	st := s.state
	workloadRate := s.rateMultiplier(catalog.TargetWorkloadRate)

	totalOutput := 0.0
	for _, def := range s.cat.Automations {
		auto := st.Automations[def.ID]
		if auto == nil || !auto.Enabled || auto.Level == 0 {
			continue
		}

		// Confusion reduces efficiency
		effBonus := 1 - st.Vitals.Confusion*0.25
		output := def.BaseOutput * float64(auto.Level) * effBonus * s.mult.PassiveOutput

		st.Resources.AP += output * dt
		totalOutput += output

		chaos := def.ChaosFactor * float64(auto.Level) * dt
		st.Resources.Workload += chaos * s.cfg.Workload.ChaosFactor * workloadRate
	}

	st.Stats.TotalAP += totalOutput * dt
}

// expireTimedEffects drops power-ups and measures whose duration has
// elapsed and prunes finished cooldown entries.
func (s *Sim) expireTimedEffects() {
	st := s.state
	now := st.ElapsedMS

	st.ActivePowerUps = pruneExpired(st.ActivePowerUps, now)
	st.ActiveMeasures = pruneExpired(st.ActiveMeasures, now)

	for id, end := range st.PowerUpCooldowns {
		if end <= now {
			delete(st.PowerUpCooldowns, id)
		}
	}
	for id, end := range st.MeasureCooldowns {
		if end <= now {
			delete(st.MeasureCooldowns, id)
		}
	}
}

func pruneExpired(entries []ActiveEffect, nowMS float64) []ActiveEffect {
	active := entries[:0]
	for _, e := range entries {
		if e.EndMS > nowMS {
			active = append(active, e)
		}
	}
	return active
}

// updateWorkload applies passive damping proportional to clarity, extra
// damping from chaos resistance, and recomputes clarity. Resistance only
// ever reduces workload; growth-rate modifiers never amplify it.
func (s *Sim) updateWorkload(dt float64) {
	st := s.state

	damping := s.cfg.Workload.Damping * st.Clarity
	st.Resources.Workload -= damping * dt

	if s.mult.ChaosResistance < 1 {
		extra := (1 - s.mult.ChaosResistance) * 0.05
		st.Resources.Workload -= extra * dt
	}

	st.Resources.Workload += s.continuousAddition(catalog.TargetWorkload) * dt

	// Clarity is derived from OP and workload, and feeds back into the
	// damping above on the next tick.
	st.Clarity = clamp01(0.5 + st.Resources.OP*0.01 - st.Resources.Workload*0.5)

	st.Resources.Workload = clamp01(st.Resources.Workload)

	if st.Resources.Workload > st.Stats.PeakWorkload {
		st.Stats.PeakWorkload = st.Resources.Workload
	}
}

// updateConfusion grows confusion under high workload and decays it
// passively.
func (s *Sim) updateConfusion(dt float64) {
	st := s.state
	cfg := s.cfg.Vitals

	if st.Resources.Workload > 0.5 {
		st.Vitals.Confusion += cfg.ConfusionPerWorkload * (st.Resources.Workload - 0.5) * dt
	}
	st.Vitals.Confusion -= cfg.ConfusionDecayPerSec * dt
	st.Vitals.Confusion += s.continuousAddition(catalog.TargetConfusion) * dt
	st.Vitals.Confusion = clamp01(st.Vitals.Confusion)
}

// updateOP accrues order points from orderly play and decays them
// proportionally to their own magnitude.
func (s *Sim) updateOP(dt float64) {
	st := s.state

	errorRate := 0.05 * (1 - st.Vitals.Concentration)

	clarityBonus := opClarityWeight * math.Max(0, st.Clarity-0.5)
	workloadBonus := opWorkloadWeight * math.Max(0, 0.8-st.Resources.Workload)
	motivationBonus := opMotivationWeight * math.Max(0, st.Vitals.Motivation-0.4)
	errorPenalty := opErrorWeight * errorRate

	gain := (opBaseRate + clarityBonus + workloadBonus + motivationBonus - errorPenalty) * dt
	decay := opDecayRate * st.Resources.OP * dt

	st.Resources.OP = clamp(st.Resources.OP+gain-decay, 0, opCap)

	if st.Resources.OP > st.Stats.PeakOP {
		st.Stats.PeakOP = st.Resources.OP
	}
}

// updateOverload recomputes the derived overload aggregate. No other
// code writes this field.
func (s *Sim) updateOverload() {
	st := s.state
	w := s.cfg.Vitals.Weights

	energyPart := (1 - st.Vitals.Energy) * w.Energy
	confusionPart := st.Vitals.Confusion * w.Confusion
	workloadPart := math.Max(0, st.Resources.Workload-0.7) * w.Workload

	st.Vitals.Overload = clamp01(energyPart + confusionPart + workloadPart)
}

// updateVisuals derives the presentation parameters.
func (s *Sim) updateVisuals() {
	st := s.state

	// Hue runs 200 (blue, order) through 60 (yellow) to 0 (red, collapse)
	st.Visuals.Hue = 200 - st.Resources.Workload*200
	st.Visuals.Intensity = st.Vitals.Energy*0.5 + 0.5
	st.Visuals.Wobble = math.Max(0, st.Vitals.Overload-0.7) * 2
}

// checkRunEnd evaluates the terminal conditions in priority order and
// short-circuits on the first match.
func (s *Sim) checkRunEnd() {
	st := s.state
	if st.Status == StatusEnded {
		return
	}

	switch {
	case st.Vitals.Energy <= 0:
		s.endRun(ReasonEnergy)
	case st.Vitals.Concentration <= 0:
		s.endRun(ReasonConcentration)
	case st.Vitals.Motivation <= 0:
		s.endRun(ReasonMotivation)
	case st.ElapsedMin >= st.WorkdayMin:
		s.endRun(ReasonTime)
	case st.Vitals.Overload >= s.cfg.Vitals.OverloadThreshold:
		s.endRun(ReasonOverload)
	case st.Resources.Workload >= 0.95:
		s.endRun(ReasonCollapse)
	}
}

// endRun transitions to the terminal state and emits the RunStats record
// exactly once. After this the pipeline and every command handler are
// no-ops.
func (s *Sim) endRun(reason EndReason) {
	st := s.state
	st.Status = StatusEnded
	st.EndReason = reason

	if s.statsEmitted {
		return
	}
	s.statsEmitted = true

	stats := s.ExtractStats()
	if s.notifier != nil {
		s.notifier.RunEnded(stats)
	}
}

// ExtractStats builds the immutable end-of-run record.
func (s *Sim) ExtractStats() RunStats {
	st := s.state

	avgKPM := 0.0
	if st.ElapsedMS > 0 {
		avgKPM = float64(st.Stats.Clicks) / (st.ElapsedMS / 60000)
	}

	events := make([]string, len(st.Stats.Events))
	copy(events, st.Stats.Events)

	return RunStats{
		RunID:        st.RunID,
		DurationMS:   st.ElapsedMS,
		EndReason:    st.EndReason,
		VP:           s.CalculateVP(),
		TotalAP:      st.Stats.TotalAP,
		PeakOP:       st.Stats.PeakOP,
		Clicks:       st.Stats.Clicks,
		AvgKPM:       avgKPM,
		PeakWorkload: st.Stats.PeakWorkload,
		MinEnergy:    st.Stats.MinEnergy,
		Events:       events,
	}
}

// CalculateVP computes the meta-currency payout for the run so far. This
// single formula is the sole authority for the reward: the live preview
// in the snapshot and the end-of-run payout both come from here.
func (s *Sim) CalculateVP() int {
	st := s.state
	elapsedSec := st.ElapsedMS / 1000

	clickPart := float64(st.Stats.Clicks) * 0.05
	idlePart := st.Stats.TotalAP / 100
	timePart := elapsedSec * s.cfg.VPYield.TimeFactor
	confusionPenalty := st.Vitals.Confusion * 5

	vp := clickPart + idlePart + timePart - confusionPenalty
	vp *= 1 + st.Clarity*s.cfg.VPYield.ClarityBonus
	vp = math.Max(float64(s.cfg.VPYield.MinPerRun), vp)

	return int(math.Round(vp))
}

package sim

import (
	"math"

	"github.com/overtime-games/overtime/internal/catalog"
)

// Command handlers are invoked by the driver between ticks. Every
// handler is a no-op while the run is paused or ended, and a failed
// handler performs no partial mutation: all precondition checks happen
// before the first state write.

const (
	clickBaseYield         = 1.0
	clickConcentrationCost = 0.08
	clickWorkloadIncrement = 0.002
	clickFailureThreshold  = 0.3
	clickWindowMS          = 60000

	exchangeRate     = 10 // AP per OP
	exchangeWorkload = 0.005

	fumblePenalty = 0.15
	missPenalty   = 0.08
)

// Click processes one manual stamp. It fails without mutation when the
// run is not running or energy is exhausted. A successful click consumes
// energy and concentration, adds AP proportional to the player's
// condition, and nudges workload upward.
func (s *Sim) Click() bool {
	st := s.state
	if st.Status != StatusRunning {
		return false
	}
	if st.Vitals.Energy <= 0 {
		return false
	}

	now := st.ElapsedMS
	workloadRate := s.rateMultiplier(catalog.TargetWorkloadRate)

	// Energy cost rises with workload
	energyCost := s.cfg.Vitals.EnergyCostPerClick * (1 + st.Resources.Workload)
	st.Vitals.Energy = clamp(st.Vitals.Energy-energyCost, 0, s.maxEnergy())

	st.Vitals.Concentration = clamp01(st.Vitals.Concentration - clickConcentrationCost)

	// Yield drops with fading energy and concentration
	energyEfficiency := math.Sqrt(st.Vitals.Energy)
	concentrationMult := clamp(0.5+st.Vitals.Concentration*0.5, 0.5, 1.0)
	yield := clickBaseYield * energyEfficiency * concentrationMult * s.mult.ClickYield

	if yield < clickFailureThreshold {
		st.Stats.Failures++
	} else {
		st.Resources.AP += yield
	}

	st.Resources.Workload = clamp01(st.Resources.Workload + clickWorkloadIncrement*workloadRate)

	st.Stats.Clicks++
	st.Stats.LastClickMS = now

	// Sliding window for clicks-per-minute, pruned on every click
	st.Stats.ClickWindow = append(st.Stats.ClickWindow, now)
	window := st.Stats.ClickWindow[:0]
	for _, t := range st.Stats.ClickWindow {
		if now-t < clickWindowMS {
			window = append(window, t)
		}
	}
	st.Stats.ClickWindow = window

	return true
}

// FailedStamp applies the motivation penalty for a botched stamp
// mini-interaction reported by the presentation layer. Fumbles cost more
// than plain misses. Independent of the main click path.
func (s *Sim) FailedStamp(fumbled bool) {
	st := s.state
	if st.Status != StatusRunning {
		return
	}

	penalty := missPenalty
	if fumbled {
		penalty = fumblePenalty
	}
	st.Vitals.Motivation = clamp01(st.Vitals.Motivation - penalty)
	st.Stats.Failures++
}

// AutomationCost returns the AP price of the next level of the given
// automation at the given current level, including the meta discount.
// The snapshot projector uses the same formula so displayed costs always
// match the purchase.
func (s *Sim) AutomationCost(def catalog.AutomationDef, level int) float64 {
	return def.BaseCost * math.Pow(def.Growth, float64(level)) * s.mult.AutomationCost
}

// BuyAutomation purchases the next level of an automation, lazily
// creating its entry at level 0. Fails without mutation when AP is
// insufficient.
func (s *Sim) BuyAutomation(def catalog.AutomationDef) bool {
	st := s.state
	if st.Status != StatusRunning {
		return false
	}

	auto := st.Automations[def.ID]
	level := 0
	if auto != nil {
		level = auto.Level
	}

	cost := s.AutomationCost(def, level)
	if st.Resources.AP < cost {
		return false
	}

	if auto == nil {
		auto = &Automation{Enabled: true}
		st.Automations[def.ID] = auto
	}

	st.Resources.AP -= cost
	auto.Level++
	return true
}

// ActivatePowerUp starts a timed power-up. It fails while the power-up's
// cooldown has not elapsed. The cooldown begins only after the buff's
// own duration: the power-up is unavailable for duration+cooldown from
// activation. Instant effects apply immediately.
func (s *Sim) ActivatePowerUp(def catalog.PowerUpDef) bool {
	st := s.state
	if st.Status != StatusRunning {
		return false
	}

	now := st.ElapsedMS
	if end, ok := st.PowerUpCooldowns[def.ID]; ok && end > now {
		return false
	}

	st.ActivePowerUps = append(st.ActivePowerUps, ActiveEffect{
		ID:      def.ID,
		StartMS: now,
		EndMS:   now + def.DurationSec*1000,
		Effects: def.Effects,
	})
	st.PowerUpCooldowns[def.ID] = now + (def.DurationSec+def.CooldownSec)*1000

	s.applyActivationEffects(def.Effects)
	return true
}

// ActivateMeasure spends OP on an intervention. It fails when OP is
// insufficient or the measure's cooldown is active. Zero-duration
// measures apply their one-shot effects and leave no active entry;
// timed measures additionally register for continuous evaluation. The
// cooldown starts at activation regardless of duration.
func (s *Sim) ActivateMeasure(def catalog.MeasureDef) bool {
	st := s.state
	if st.Status != StatusRunning {
		return false
	}

	now := st.ElapsedMS
	if st.Resources.OP < def.CostOP {
		return false
	}
	if end, ok := st.MeasureCooldowns[def.ID]; ok && end > now {
		return false
	}

	st.Resources.OP -= def.CostOP

	if def.DurationSec > 0 {
		st.ActiveMeasures = append(st.ActiveMeasures, ActiveEffect{
			ID:      def.ID,
			StartMS: now,
			EndMS:   now + def.DurationSec*1000,
			Effects: def.Effects,
		})
	}
	s.applyActivationEffects(def.Effects)

	st.MeasureCooldowns[def.ID] = now + def.CooldownSec*1000
	return true
}

// ExchangeAPForOP converts AP into OP at a fixed 10:1 rate with a
// minimum batch of 10 AP. The conversion adds a small workload cost
// proportional to the OP gained.
func (s *Sim) ExchangeAPForOP(apAmount float64) bool {
	st := s.state
	if st.Status != StatusRunning {
		return false
	}
	if apAmount < exchangeRate {
		return false
	}
	if st.Resources.AP < apAmount {
		return false
	}

	opGain := math.Floor(apAmount / exchangeRate)

	st.Resources.AP -= apAmount
	st.Resources.OP = math.Min(opCap, st.Resources.OP+opGain)
	st.Resources.Workload = clamp01(st.Resources.Workload + exchangeWorkload*opGain)

	return true
}

// Pause suspends the update pipeline. Command handlers early-return
// while paused.
func (s *Sim) Pause() {
	if s.state.Status == StatusRunning {
		s.state.Status = StatusPaused
	}
}

// Resume continues a paused run.
func (s *Sim) Resume() {
	if s.state.Status == StatusPaused {
		s.state.Status = StatusRunning
	}
}

// EndRun terminates the run at the user's request.
func (s *Sim) EndRun() {
	st := s.state
	if st.Status == StatusEnded {
		return
	}
	s.endRun(ReasonUser)
}

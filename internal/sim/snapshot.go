package sim

// Snapshot is the read-only projection of a run handed to the
// presentation layer. Producing one never mutates the simulation, and
// the driver may project at a lower cadence than it ticks.
type Snapshot struct {
	RunID     string
	ElapsedMS float64

	Resources Resources // VP carries the live payout preview
	Vitals    Vitals
	Clarity   float64

	Rates   Rates
	Workday WorkdayInfo

	Automations []AutomationView
	PowerUps    []TimedEffectView
	Measures    []TimedEffectView

	Visuals   Visuals
	Status    Status
	EndReason EndReason

	Clicks   int
	Failures int
	KPM      int // clicks within the last 60 seconds
}

// Rates are the derived throughput figures shown in the HUD.
type Rates struct {
	ClickYield    float64 // estimated AP per click
	PassiveOutput float64 // aggregate AP per second from automation
	ErrorRate     float64 // failures / clicks
}

// WorkdayInfo reports progress through the in-game workday.
type WorkdayInfo struct {
	ElapsedMin   float64
	RemainingMin float64
}

// AutomationView is the UI projection of one automation tier. Every
// catalog automation appears, owned or not, so the UI can always show
// the next-level cost with meta discounts applied.
type AutomationView struct {
	ID       string
	Name     string
	Level    int
	Output   float64 // current AP/s contribution
	NextCost float64
}

// TimedEffectView is the UI projection of an active or cooling-down
// power-up or measure.
type TimedEffectView struct {
	ID          string
	Name        string
	RemainingMS float64 // time left while active, 0 otherwise
	CooldownMS  float64 // cooldown left, 0 once available
}

// Snapshot projects the current run state into the UI read model.
func (s *Sim) Snapshot() Snapshot {
	st := s.state
	now := st.ElapsedMS

	// Click window length doubles as clicks-per-minute; the window is
	// pruned at click time
	kpm := 0
	for _, t := range st.Stats.ClickWindow {
		if now-t < clickWindowMS {
			kpm++
		}
	}

	passive := 0.0
	for _, def := range s.cat.Automations {
		if auto := st.Automations[def.ID]; auto != nil && auto.Enabled {
			passive += def.BaseOutput * float64(auto.Level)
		}
	}

	clickYield := clickBaseYield *
		clamp(0.5+st.Vitals.Energy*0.5, 0.5, 1.0) *
		clamp(0.8+st.Vitals.Concentration*0.4, 0.8, 1.2)

	errorRate := 0.0
	if st.Stats.Clicks > 0 {
		errorRate = float64(st.Stats.Failures) / float64(st.Stats.Clicks)
	}

	automations := make([]AutomationView, 0, len(s.cat.Automations))
	for _, def := range s.cat.Automations {
		level := 0
		output := 0.0
		if auto := st.Automations[def.ID]; auto != nil {
			level = auto.Level
			if auto.Enabled {
				output = def.BaseOutput * float64(level)
			}
		}
		automations = append(automations, AutomationView{
			ID:       def.ID,
			Name:     def.Name,
			Level:    level,
			Output:   output,
			NextCost: s.AutomationCost(def, level),
		})
	}

	resources := st.Resources
	resources.VP = float64(s.CalculateVP())

	return Snapshot{
		RunID:     st.RunID,
		ElapsedMS: now,
		Resources: resources,
		Vitals:    st.Vitals,
		Clarity:   st.Clarity,
		Rates: Rates{
			ClickYield:    clickYield,
			PassiveOutput: passive,
			ErrorRate:     errorRate,
		},
		Workday: WorkdayInfo{
			ElapsedMin:   st.ElapsedMin,
			RemainingMin: st.WorkdayMin - st.ElapsedMin,
		},
		Automations: automations,
		PowerUps:    s.projectTimedEffects(st.ActivePowerUps, st.PowerUpCooldowns, powerUpName(s)),
		Measures:    s.projectTimedEffects(st.ActiveMeasures, st.MeasureCooldowns, measureName(s)),
		Visuals:     st.Visuals,
		Status:      st.Status,
		EndReason:   st.EndReason,
		Clicks:      st.Stats.Clicks,
		Failures:    st.Stats.Failures,
		KPM:         kpm,
	}
}

// projectTimedEffects lists active entries with remaining time, then
// cooling-down entries that are no longer active.
func (s *Sim) projectTimedEffects(active []ActiveEffect, cooldowns map[string]float64, name func(string) string) []TimedEffectView {
	now := s.state.ElapsedMS
	views := make([]TimedEffectView, 0, len(active)+len(cooldowns))

	activeIDs := make(map[string]bool, len(active))
	for _, e := range active {
		if e.EndMS <= now {
			continue
		}
		activeIDs[e.ID] = true
		view := TimedEffectView{
			ID:          e.ID,
			Name:        name(e.ID),
			RemainingMS: e.EndMS - now,
		}
		if end, ok := cooldowns[e.ID]; ok && end > now {
			view.CooldownMS = end - now
		}
		views = append(views, view)
	}

	// Deterministic order for the cooldown-only entries: walk the
	// catalog rather than the map.
	for _, id := range s.cooldownOrder(cooldowns) {
		if activeIDs[id] {
			continue
		}
		end := cooldowns[id]
		if end <= now {
			continue
		}
		views = append(views, TimedEffectView{
			ID:         id,
			Name:       name(id),
			CooldownMS: end - now,
		})
	}

	return views
}

// cooldownOrder returns cooldown map keys in catalog definition order.
func (s *Sim) cooldownOrder(cooldowns map[string]float64) []string {
	ids := make([]string, 0, len(cooldowns))
	for _, p := range s.cat.PowerUps {
		if _, ok := cooldowns[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	for _, m := range s.cat.Measures {
		if _, ok := cooldowns[m.ID]; ok {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func powerUpName(s *Sim) func(string) string {
	return func(id string) string {
		if def, ok := s.cat.PowerUp(id); ok {
			return def.Name
		}
		return id
	}
}

func measureName(s *Sim) func(string) string {
	return func(id string) string {
		if def, ok := s.cat.Measure(id); ok {
			return def.Name
		}
		return id
	}
}

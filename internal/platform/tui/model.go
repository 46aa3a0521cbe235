package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/config"
	"github.com/overtime-games/overtime/internal/events"
	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/sim"
	"github.com/overtime-games/overtime/internal/storage"
)

// Snapshot re-projection cadence. The simulation ticks at the full tick
// rate; the UI read model refreshes at this lower rate.
const snapshotInterval = 100 * time.Millisecond

// Ticks longer than this are clamped so a suspended terminal does not
// fast-forward the whole workday in one step.
const maxTickDelta = 250 * time.Millisecond

// RunConfig bundles everything needed to start one workday run.
type RunConfig struct {
	RunID     string // empty means a fresh time-based ID
	TickRate  int
	Balancing config.Balancing
	Catalog   catalog.Catalog
	Meta      meta.State
	UseMeta   bool // apply meta multipliers to the run
	Width     int
	Height    int
}

// runRecorder receives the core's push notifications for one run.
type runRecorder struct {
	stats    *sim.RunStats
	eventIDs []string
}

func (r *runRecorder) RunEnded(stats sim.RunStats) {
	s := stats
	r.stats = &s
}

func (r *runRecorder) EventTriggered(id string) {
	r.eventIDs = append(r.eventIDs, id)
}

// panel identifies which list currently has keyboard focus.
type panel int

const (
	panelAutomations panel = iota
	panelPowerUps
	panelMeasures
	panelCount
)

// Model is the Bubble Tea model for a workday run.
type Model struct {
	cfg   RunConfig
	store *storage.Store

	sim   *sim.Sim
	sched *events.Scheduler
	rec   *runRecorder
	snap  sim.Snapshot

	keys KeyMap
	help help.Model

	lastTick time.Time
	lastSnap time.Time

	focus   panel
	cursors [panelCount]int

	notice      string
	noticeUntil time.Time

	endComment string
	saved      bool
	quitting   bool
	width      int
	height     int
}

// NewModel creates a model for a fresh run.
func NewModel(store *storage.Store, cfg RunConfig) Model {
	if cfg.RunID == "" {
		cfg.RunID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}

	mult := meta.DefaultMultipliers()
	if cfg.UseMeta {
		mult = meta.DeriveMultipliers(cfg.Meta)
	}

	rec := &runRecorder{}
	s := sim.New(cfg.RunID, cfg.Balancing, cfg.Catalog, mult, rec)

	return Model{
		cfg:    cfg,
		store:  store,
		sim:    s,
		sched:  events.NewScheduler(cfg.Catalog.Events, s),
		rec:    rec,
		snap:   s.Snapshot(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleTick advances the simulation by the measured real delta and
// refreshes the snapshot at the lower projection cadence.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := time.Second / time.Duration(m.cfg.TickRate)
	if !m.lastTick.IsZero() {
		if measured := now.Sub(m.lastTick); measured > 0 {
			delta = measured
		}
	}
	if delta > maxTickDelta {
		delta = maxTickDelta
	}
	m.lastTick = now

	m.sim.Update(delta.Seconds() * 1000)

	for _, def := range m.sched.Poll() {
		m.notice = def.Title
		m.noticeUntil = now.Add(4 * time.Second)
	}
	if m.notice != "" && now.After(m.noticeUntil) {
		m.notice = ""
	}

	ended := m.sim.State().Status == sim.StatusEnded
	if ended || now.Sub(m.lastSnap) >= snapshotInterval {
		m.snap = m.sim.Snapshot()
		m.lastSnap = now
	}
	if ended && !m.saved {
		m = m.finishRun()
	}

	return m, tickCmd(m.cfg.TickRate)
}

// finishRun persists the run record, credits the payout to the meta
// progression, and picks the end-of-day comment. Runs exactly once.
func (m Model) finishRun() Model {
	m.saved = true

	stats := m.sim.ExtractStats()
	if m.rec.stats != nil {
		stats = *m.rec.stats
	}

	if m.store != nil {
		//nolint:errcheck // Best-effort save, the end screen shows regardless
		m.store.SaveRun(stats)

		if m.cfg.UseMeta {
			m.cfg.Meta.CreditVP(stats.VP)
			//nolint:errcheck
			m.store.SaveMeta(m.cfg.Meta)
		}
	}

	pool := m.cfg.Catalog.EndComments[strings.ToLower(string(stats.EndReason))]
	if comment, ok := sim.Choice(m.sim.RNG(), pool); ok {
		m.endComment = comment
	}

	return m
}

// handleKey dispatches commands to the simulation between ticks.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.sim.State().Status == sim.StatusEnded {
		if key.Matches(msg, m.keys.Restart) {
			next := m.cfg
			next.RunID = "" // fresh ID, fresh seed
			restarted := NewModel(m.store, next)
			restarted.width = m.width
			restarted.height = m.height
			restarted.lastTick = time.Time{}
			return restarted, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Stamp):
		m.sim.Click()
	case key.Matches(msg, m.keys.BuyDirect):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(m.cfg.Catalog.Automations) {
			m.sim.BuyAutomation(m.cfg.Catalog.Automations[idx])
		}
	case key.Matches(msg, m.keys.NextPanel):
		m.focus = (m.focus + 1) % panelCount
	case key.Matches(msg, m.keys.Up):
		if m.cursors[m.focus] > 0 {
			m.cursors[m.focus]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursors[m.focus] < m.panelLen(m.focus)-1 {
			m.cursors[m.focus]++
		}
	case key.Matches(msg, m.keys.Select):
		m.activateFocused()
	case key.Matches(msg, m.keys.Exchange):
		m.sim.ExchangeAPForOP(10)
	case key.Matches(msg, m.keys.Pause):
		if m.sim.State().Status == sim.StatusPaused {
			m.sim.Resume()
		} else {
			m.sim.Pause()
		}
	case key.Matches(msg, m.keys.EndRun):
		m.sim.EndRun()
	default:
		return m, nil
	}

	// Commands change state immediately; do not wait for the cadence
	m.snap = m.sim.Snapshot()
	return m, nil
}

func (m Model) panelLen(p panel) int {
	switch p {
	case panelAutomations:
		return len(m.cfg.Catalog.Automations)
	case panelPowerUps:
		return len(m.cfg.Catalog.PowerUps)
	case panelMeasures:
		return len(m.cfg.Catalog.Measures)
	}
	return 0
}

func (m Model) activateFocused() {
	cursor := m.cursors[m.focus]
	if cursor >= m.panelLen(m.focus) {
		return
	}
	switch m.focus {
	case panelAutomations:
		m.sim.BuyAutomation(m.cfg.Catalog.Automations[cursor])
	case panelPowerUps:
		m.sim.ActivatePowerUp(m.cfg.Catalog.PowerUps[cursor])
	case panelMeasures:
		m.sim.ActivateMeasure(m.cfg.Catalog.Measures[cursor])
	}
}

// Run starts the Bubble Tea program for one interactive session.
func Run(store *storage.Store, cfg RunConfig) error {
	p := tea.NewProgram(
		NewModel(store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

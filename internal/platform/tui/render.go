package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/overtime-games/overtime/internal/sim"
)

const barWidth = 24

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noticeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 3)

	energyBar        = progress.New(progress.WithScaledGradient("#b8bb26", "#689d6a"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	concentrationBar = progress.New(progress.WithScaledGradient("#83a598", "#458588"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	motivationBar    = progress.New(progress.WithScaledGradient("#d3869b", "#b16286"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	workloadBar      = progress.New(progress.WithScaledGradient("#fabd2f", "#fb4934"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	confusionBar     = progress.New(progress.WithScaledGradient("#928374", "#cc241d"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
)

// View renders the current snapshot.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.renderVitals()),
		panelStyle.Render(m.renderResources()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPanel("Automations", panelAutomations, m.renderAutomations()),
		m.renderPanel("Power-Ups", panelPowerUps, m.renderPowerUps()),
		m.renderPanel("Measures", panelMeasures, m.renderMeasures()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render("⚡ " + m.notice))
		b.WriteString("\n")
	}

	if m.snap.Status == sim.StatusEnded {
		b.WriteString("\n")
		b.WriteString(m.renderEndModal())
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("OVERTIME — Bureaucracy of Infinity")

	clock := workdayClock(m.snap.Workday.ElapsedMin)
	status := ""
	if m.snap.Status == sim.StatusPaused {
		status = pausedStyle.Render("  ⏸ PAUSED")
	}

	return fmt.Sprintf("%s   %s%s", title, dimStyle.Render(clock), status)
}

// workdayClock formats elapsed in-game minutes as a wall clock starting
// at 09:00.
func workdayClock(elapsedMin float64) string {
	total := 9*60 + int(elapsedMin)
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

func (m Model) renderVitals() string {
	v := m.snap.Vitals
	rows := []string{
		labelStyle.Render("Energy") + energyBar.ViewAs(v.Energy),
		labelStyle.Render("Concentration") + concentrationBar.ViewAs(v.Concentration),
		labelStyle.Render("Motivation") + motivationBar.ViewAs(v.Motivation),
		labelStyle.Render("Confusion") + confusionBar.ViewAs(v.Confusion),
		labelStyle.Render("Workload") + workloadBar.ViewAs(m.snap.Resources.Workload),
		labelStyle.Render("Overload") + workloadBar.ViewAs(v.Overload),
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderResources() string {
	r := m.snap.Resources
	rows := []string{
		labelStyle.Render("AP") + valueStyle.Render(fmt.Sprintf("%.1f", r.AP)),
		labelStyle.Render("OP") + valueStyle.Render(fmt.Sprintf("%.1f / 100", r.OP)),
		labelStyle.Render("VP preview") + valueStyle.Render(fmt.Sprintf("%.0f", r.VP)),
		labelStyle.Render("Clarity") + valueStyle.Render(fmt.Sprintf("%.0f%%", m.snap.Clarity*100)),
		labelStyle.Render("Stamps") + valueStyle.Render(fmt.Sprintf("%d (%d/min)", m.snap.Clicks, m.snap.KPM)),
		labelStyle.Render("Passive") + valueStyle.Render(fmt.Sprintf("%.1f AP/s", m.snap.Rates.PassiveOutput)),
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderPanel(name string, p panel, body string) string {
	header := dimStyle.Render(name)
	if m.focus == p {
		header = focusedStyle.Render("▸ " + name)
	}
	return panelStyle.Render(header + "\n" + body)
}

func (m Model) renderAutomations() string {
	rows := make([]string, 0, len(m.snap.Automations))
	for i, a := range m.snap.Automations {
		cursor := "  "
		if m.focus == panelAutomations && m.cursors[panelAutomations] == i {
			cursor = focusedStyle.Render("> ")
		}
		affordable := valueStyle
		if m.snap.Resources.AP < a.NextCost {
			affordable = dimStyle
		}
		rows = append(rows, fmt.Sprintf("%s%d. %-16s L%d  %s",
			cursor, i+1, a.Name, a.Level,
			affordable.Render(fmt.Sprintf("%.0f AP", a.NextCost))))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderPowerUps() string {
	views := indexTimedViews(m.snap.PowerUps)
	rows := make([]string, 0, len(m.cfg.Catalog.PowerUps))
	for i, def := range m.cfg.Catalog.PowerUps {
		cursor := "  "
		if m.focus == panelPowerUps && m.cursors[panelPowerUps] == i {
			cursor = focusedStyle.Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%-16s %s", cursor, def.Name, timedStatus(views[def.ID])))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderMeasures() string {
	views := indexTimedViews(m.snap.Measures)
	rows := make([]string, 0, len(m.cfg.Catalog.Measures))
	for i, def := range m.cfg.Catalog.Measures {
		cursor := "  "
		if m.focus == panelMeasures && m.cursors[panelMeasures] == i {
			cursor = focusedStyle.Render("> ")
		}
		cost := valueStyle
		if m.snap.Resources.OP < def.CostOP {
			cost = dimStyle
		}
		rows = append(rows, fmt.Sprintf("%s%-16s %s  %s",
			cursor, def.Name,
			cost.Render(fmt.Sprintf("%.0f OP", def.CostOP)),
			timedStatus(views[def.ID])))
	}
	return strings.Join(rows, "\n")
}

func indexTimedViews(views []sim.TimedEffectView) map[string]sim.TimedEffectView {
	byID := make(map[string]sim.TimedEffectView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	return byID
}

// timedStatus renders the active/cooling state of one timed effect.
func timedStatus(v sim.TimedEffectView) string {
	switch {
	case v.RemainingMS > 0:
		return focusedStyle.Render(fmt.Sprintf("active %ds", int(v.RemainingMS/1000)+1))
	case v.CooldownMS > 0:
		return dimStyle.Render(fmt.Sprintf("ready in %ds", int(v.CooldownMS/1000)+1))
	default:
		return dimStyle.Render("ready")
	}
}

func (m Model) renderEndModal() string {
	stats := m.sim.ExtractStats()
	if m.rec.stats != nil {
		stats = *m.rec.stats
	}

	lines := []string{
		titleStyle.Render("End of Workday — " + endReasonLabel(stats.EndReason)),
		"",
	}
	if m.endComment != "" {
		lines = append(lines, dimStyle.Render(m.endComment), "")
	}
	lines = append(lines,
		fmt.Sprintf("VP earned:      %d", stats.VP),
		fmt.Sprintf("Total AP:       %.0f", stats.TotalAP),
		fmt.Sprintf("Stamps:         %d (%.0f/min avg)", stats.Clicks, stats.AvgKPM),
		fmt.Sprintf("Peak OP:        %.0f", stats.PeakOP),
		fmt.Sprintf("Peak workload:  %.0f%%", stats.PeakWorkload*100),
		"",
		dimStyle.Render("r: new workday   q: quit"),
	)
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func endReasonLabel(r sim.EndReason) string {
	switch r {
	case sim.ReasonEnergy:
		return "Out of Energy"
	case sim.ReasonConcentration:
		return "Lost Concentration"
	case sim.ReasonMotivation:
		return "Motivation Gone"
	case sim.ReasonTime:
		return "Closing Time"
	case sim.ReasonOverload:
		return "Overloaded"
	case sim.ReasonCollapse:
		return "Paper Collapse"
	case sim.ReasonUser:
		return "Early Exit"
	default:
		return string(r)
	}
}

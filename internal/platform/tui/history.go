package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/overtime-games/overtime/internal/storage"
)

const historyLimit = 50

// HistoryKeyMap defines the key bindings for the run-history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns the default history key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run-history screen.
type HistoryModel struct {
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	bestVP   int
	totalVP  int
	runCount int
	quitting bool
}

// NewHistoryModel loads recent runs from the store and builds the table.
func NewHistoryModel(store *storage.Store, height int) (HistoryModel, error) {
	entries, err := store.RecentRuns(historyLimit)
	if err != nil {
		return HistoryModel{}, err
	}
	best, err := store.BestVP()
	if err != nil {
		return HistoryModel{}, err
	}
	count, err := store.RunCount()
	if err != nil {
		return HistoryModel{}, err
	}
	total, err := store.TotalVP()
	if err != nil {
		return HistoryModel{}, err
	}

	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Duration", Width: 9},
		{Title: "Ended", Width: 14},
		{Title: "VP", Width: 5},
		{Title: "Stamps", Width: 7},
		{Title: "KPM", Width: 5},
		{Title: "Events", Width: 7},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.CreatedAt.Format("2006-01-02 15:04"),
			formatDuration(e.DurationMS),
			e.EndReason,
			fmt.Sprintf("%d", e.VP),
			fmt.Sprintf("%d", e.Clicks),
			fmt.Sprintf("%.0f", e.AvgKPM),
			fmt.Sprintf("%d", len(e.Events)),
		})
	}

	tableHeight := len(rows)
	if height > 8 && tableHeight > height-8 {
		tableHeight = height - 8
	}
	if tableHeight < 1 {
		tableHeight = 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return HistoryModel{
		table:    t,
		help:     help.New(),
		keys:     DefaultHistoryKeyMap(),
		bestVP:   best,
		totalVP:  total,
		runCount: count,
	}, nil
}

// Init is a no-op; the table is loaded up front.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and quitting.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("Run History") +
		dimStyle.Render(fmt.Sprintf("   %d workdays, best %d VP, %d VP lifetime", m.runCount, m.bestVP, m.totalVP))

	if m.runCount == 0 {
		return header + "\n\n" + dimStyle.Render("No workdays recorded yet. Run 'overtime play' first.") + "\n"
	}

	return header + "\n\n" + m.table.View() + "\n" + m.help.View(m.keys)
}

func formatDuration(ms float64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// RunHistory shows the run-history screen as its own program.
func RunHistory(store *storage.Store, height int) error {
	model, err := NewHistoryModel(store, height)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

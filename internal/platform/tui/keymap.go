package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the workday screen.
type KeyMap struct {
	Stamp     key.Binding
	BuyDirect key.Binding // 1-6 buys the matching automation tier
	NextPanel key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Exchange  key.Binding
	Pause     key.Binding
	EndRun    key.Binding
	Restart   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stamp, k.NextPanel, k.Select, k.Exchange, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stamp, k.BuyDirect, k.Exchange},
		{k.NextPanel, k.Up, k.Down, k.Select},
		{k.Pause, k.EndRun, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Stamp: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stamp"),
		),
		BuyDirect: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "buy automation"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buy/activate"),
		),
		Exchange: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "exchange 10 AP for OP"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		EndRun: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end the workday"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new workday"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

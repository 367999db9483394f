package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Tabs
	NextTab key.Binding
	PrevTab key.Binding
	Home    key.Binding
	Quran   key.Binding
	Hadith  key.Binding
	Prayer  key.Binding
	Options key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Filter key.Binding
	Retry  key.Binding
	Detect key.Binding
	Toggle key.Binding
	Theme  key.Binding
	Play   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous tab"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Quran: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "quran"),
		),
		Hadith: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "hadith"),
		),
		Prayer: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "prayer"),
		),
		Options: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "settings"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "left", "backspace"),
			key.WithHelp("h/←", "back"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Detect: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "detect location"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "n"),
			key.WithHelp("space", "toggle reminder"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play recitation"),
		),
	}
}

// Keys is the global key map instance
var Keys = DefaultKeyMap()

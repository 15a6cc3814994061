package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Search  key.Binding
	Favs    key.Binding
	Roster  key.Binding
	Badges  key.Binding
	Centers key.Binding

	// Actions
	Quit     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Filter   key.Binding
	Favorite key.Binding
	Remove   key.Binding
	Retry    key.Binding
	Reload   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
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
			key.WithHelp("enter", "open card"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous screen"),
		),
		Search: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "search"),
		),
		Favs: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "favorites"),
		),
		Roster: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "ash"),
		),
		Badges: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "badges"),
		),
		Centers: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "centers"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "h", "left"),
			key.WithHelp("esc", "close/clear"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f", "toggle favorite"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove favorite"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload index"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// helpBindings lists the bindings shown on the help screen, in order
func helpBindings() []key.Binding {
	k := Keys
	return []key.Binding{
		k.Up, k.Down, k.Enter, k.NextTab, k.PrevTab,
		k.Search, k.Favs, k.Roster, k.Badges, k.Centers,
		k.Filter, k.Favorite, k.Remove, k.Retry, k.Reload,
		k.Escape, k.Help, k.Quit,
	}
}

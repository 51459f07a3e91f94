package sidebar

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up           key.Binding
	down         key.Binding
	open         key.Binding
	collapse     key.Binding
	search       key.Binding
	refresh      key.Binding
	toggleHidden key.Binding
	quit         key.Binding

	submit     key.Binding
	exitSearch key.Binding
	nextResult key.Binding
	prevResult key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		open: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("↵/l", "open"),
		),
		collapse: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "collapse"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		toggleHidden: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "hidden"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "reveal"),
		),
		exitSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		nextResult: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		prevResult: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "prev"),
		),
	}
}

// treeHelp and searchHelp adapt the bindings to help.KeyMap for each mode.
type treeHelp struct{ keys keyMap }

func (h treeHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.up, h.keys.down, h.keys.open, h.keys.collapse, h.keys.search, h.keys.refresh, h.keys.toggleHidden, h.keys.quit}
}

func (h treeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type searchHelp struct{ keys keyMap }

func (h searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.submit, h.keys.nextResult, h.keys.prevResult, h.keys.exitSearch}
}

func (h searchHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

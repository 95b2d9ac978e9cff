package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	quit        key.Binding
	up          key.Binding
	down        key.Binding
	open        key.Binding
	back        key.Binding
	nextField   key.Binding
	focusSearch key.Binding
	toggleType  key.Binding
	cycleSalary key.Binding
	clearSalary key.Binding
	retry       key.Binding
	retryProf   key.Binding
	logout      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		nextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		focusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		toggleType: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "employment type"),
		),
		cycleSalary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "salary range"),
		),
		clearSalary: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "any salary"),
		),
		retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		retryProf: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "retry profile"),
		),
		logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
	}
}

// screenHelp adapts a binding list to help.KeyMap
type screenHelp []key.Binding

func (h screenHelp) ShortHelp() []key.Binding  { return h }
func (h screenHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) loginHelp() screenHelp {
	return screenHelp{k.nextField, k.open}
}

func (k keyMap) homeHelp() screenHelp {
	return screenHelp{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "find jobs")),
		k.logout, k.quit,
	}
}

func (k keyMap) jobsHelp() screenHelp {
	return screenHelp{k.focusSearch, k.toggleType, k.cycleSalary, k.up, k.down, k.open, k.retry, k.retryProf, k.back, k.logout, k.quit}
}

func (k keyMap) searchHelp() screenHelp {
	return screenHelp{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

func (k keyMap) detailHelp() screenHelp {
	return screenHelp{k.up, k.down, k.open, k.retry, k.back, k.logout, k.quit}
}

func (k keyMap) notFoundHelp() screenHelp {
	return screenHelp{
		key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "home")),
		k.quit,
	}
}

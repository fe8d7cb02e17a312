package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Choose   key.Binding
	Continue key.Binding
	Up       key.Binding
	Down     key.Binding
	Puzzle   key.Binding
	Submit   key.Binding
	Undo     key.Binding
	Chapters key.Binding
	Back     key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Choose: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "choose"),
	),
	Continue: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "continue/select"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Puzzle: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "puzzle"),
	),
	Submit: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "submit"),
	),
	Undo: key.NewBinding(
		key.WithKeys("backspace", "u"),
		key.WithHelp("u", "undo"),
	),
	Chapters: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "chapters"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restart"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Continue, k.Puzzle, k.Chapters, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Choose, k.Continue, k.Up, k.Down},
		{k.Puzzle, k.Submit, k.Undo, k.Back},
		{k.Chapters, k.Reset, k.Help, k.Quit},
	}
}

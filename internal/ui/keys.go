package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	AnalyzeText key.Binding
	AnalyzeFile key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding
	SortWord    key.Binding
	SortCount   key.Binding
	SortFreq    key.Binding
	Up          key.Binding
	Down        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		AnalyzeText: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "analyze text"),
		),
		AnalyzeFile: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "analyze file"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		SortWord: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort by word"),
		),
		SortCount: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort by count"),
		),
		SortFreq: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort by frequency"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AnalyzeText, k.AnalyzeFile, k.NextFocus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AnalyzeText, k.AnalyzeFile},
		{k.NextFocus, k.PrevFocus, k.Up, k.Down},
		{k.SortWord, k.SortCount, k.SortFreq},
		{k.Help, k.Quit},
	}
}

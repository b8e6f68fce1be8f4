package lyrics

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextLine     key.Binding
	PrevLine     key.Binding
	NextSyllable key.Binding
	PrevSyllable key.Binding
	Translate    key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextLine: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/ctrl+n", "next line"),
		),
		PrevLine: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/ctrl+p", "previous line"),
		),
		NextSyllable: key.NewBinding(
			key.WithKeys("right", "ctrl+f"),
			key.WithHelp("→/ctrl+f", "next syllable"),
		),
		PrevSyllable: key.NewBinding(
			key.WithKeys("left", "ctrl+b"),
			key.WithHelp("←/ctrl+b", "previous syllable"),
		),
		Translate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "translate line"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextLine, k.NextSyllable, k.Translate, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextLine, k.PrevLine, k.NextSyllable, k.PrevSyllable},
		{k.Translate, k.Help, k.Quit},
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	cancel, forceQuit key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		cancel: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "stop crawling"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.cancel, k.forceQuit}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

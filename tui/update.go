package tui

import (
	"github.com/anisan-cli/anicat/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notifyCmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.forceQuit):
			b.cancel()
			b.result.Cancelled = true
			b.result.Anime = b.found
			return b, tea.Quit
		case key.Matches(msg, b.keymap.cancel):
			if b.cancelling {
				return b, notifyCmd
			}
			b.cancel()
			return b, tea.Batch(notifyCmd, ui.Notify("stopping after the current download"))
		}
	case progressMsg:
		b.done, b.total = msg.done, msg.total
		if b.total > 0 {
			return b, tea.Batch(notifyCmd, b.progressC.SetPercent(float64(b.done)/float64(b.total)))
		}
	case foundMsg:
		b.found = append(b.found, msg.anime)
	case finishedMsg:
		b.finished = true
		b.result = msg.result
		return b, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(notifyCmd, cmd)
	default:
		// progress.FrameMsg drives the bar animation
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, tea.Batch(notifyCmd, cmd)
	}

	return b, notifyCmd
}

func (b *bubble) cancel() {
	b.cancelling = true
	if b.options.Cancel != nil {
		b.options.Cancel()
	}
}

package tui

import (
	"sync"
	"time"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/internal/crawler"
	"github.com/anisan-cli/anicat/internal/ui"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// recentLimit is how many of the latest discoveries stay on screen.
const recentLimit = 8

type bubble struct {
	options  *Options
	observer crawler.Observer
	keymap   *keymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Notifier

	done, total int
	found       []*anime.Anime
	cancelling  bool
	finished    bool
	result      crawler.Result

	// running tracks the crawl goroutine, which outlives the program on a force quit
	running sync.WaitGroup

	width int
}

func newBubble(options *Options) *bubble {
	b := &bubble{
		options:   options,
		keymap:    newKeymap(),
		spinnerC:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progressC: progress.New(progress.WithSolidFill(string(style.AccentColor))),
		helpC:     help.New(),
		notifier:  ui.NewNotifier(3 * time.Second),
	}
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	if w, _, err := util.TerminalSize(); err == nil {
		b.resize(w)
	}

	return b
}

func (b *bubble) resize(width int) {
	b.width = width
	b.progressC.Width = util.Clamp(width-4, 10, 60)
	b.helpC.Width = width
}

func (b *bubble) Init() tea.Cmd {
	b.running.Add(1)
	run := func() tea.Msg {
		defer b.running.Done()
		return finishedMsg{result: b.options.Run(b.observer)}
	}
	return tea.Batch(b.spinnerC.Tick, run)
}

// Package tui shows the progress of a running crawl in the terminal.
package tui

import (
	"errors"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/internal/crawler"
	tea "github.com/charmbracelet/bubbletea"
)

// Options describes the crawl to display.
type Options struct {
	Title string

	// Run starts the crawl and blocks until it finishes, reporting to obs.
	Run func(obs crawler.Observer) crawler.Result

	// Cancel asks the crawl to stop.
	Cancel func()
}

// Run displays the crawl until it finishes and returns its result.
func Run(options *Options) (crawler.Result, error) {
	if options.Run == nil {
		return crawler.Result{}, errors.New("nothing to run")
	}

	b := newBubble(options)
	program := tea.NewProgram(b)
	b.observer = &programObserver{program: program}

	final, err := program.Run()
	if err != nil {
		b.cancel()
		b.running.Wait()
		return crawler.Result{}, err
	}

	// resources shared with the crawl are released by the caller once Run returns
	b.running.Wait()

	return final.(*bubble).result, nil
}

type (
	progressMsg struct{ done, total int }
	foundMsg    struct{ anime *anime.Anime }
	finishedMsg struct{ result crawler.Result }
)

// programObserver forwards crawler notifications into the bubbletea event loop.
type programObserver struct {
	program *tea.Program
}

func (o *programObserver) OnProgress(done, total int) {
	o.program.Send(progressMsg{done: done, total: total})
}

func (o *programObserver) OnFound(a *anime.Anime) {
	o.program.Send(foundMsg{anime: a})
}

// OnFinish is a no-op, the result is delivered by the command returned from Init.
func (o *programObserver) OnFinish(crawler.Result) {}

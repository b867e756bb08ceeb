package tui

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/style"
	"github.com/anisan-cli/anicat/util"
	"github.com/charmbracelet/lipgloss"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	if b.finished {
		return ""
	}

	lines := []string{style.Title(b.options.Title), ""}

	status := fmt.Sprintf("%s %s, %s", b.spinnerC.View(), util.Quantify(len(b.found), "title", "titles")+" found", b.counter())
	if b.cancelling {
		status = fmt.Sprintf("%s Stopping, %s found", icon.Get(icon.Cancel), util.Quantify(len(b.found), "title", "titles"))
	}
	lines = append(lines, status)

	if b.total > 0 {
		lines = append(lines, "", b.progressC.View())
	}

	if recent := b.recent(); len(recent) > 0 {
		lines = append(lines, "")
		lines = append(lines, recent...)
	}

	lines = append(lines, "", b.helpC.View(b.keymap))

	return paddingStyle.Render(b.notifier.View(strings.Join(lines, "\n")))
}

func (b *bubble) counter() string {
	if b.total == 0 {
		return "starting"
	}
	return fmt.Sprintf("%d/%d", b.done, b.total)
}

func (b *bubble) recent() []string {
	from := max(len(b.found)-recentLimit, 0)

	lines := make([]string, 0, len(b.found)-from)
	for _, a := range b.found[from:] {
		lines = append(lines, style.Truncate(b.width-4)(FormatAnime(a)))
	}
	return lines
}

// FormatAnime renders a one-line summary of a title.
func FormatAnime(a *anime.Anime) string {
	episodes := ""
	if a.Episodes > 0 {
		episodes = " " + style.Faint(util.Quantify(a.Episodes, "episode", "episodes"))
	}

	return fmt.Sprintf(
		"%s %s %s%s %s",
		icon.Get(icon.Found),
		style.Bold(a.Title),
		style.AnimeType(string(a.Type)),
		episodes,
		style.Fg(style.LinkColor)(a.Link.String()),
	)
}

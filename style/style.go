// Package style composes the lipgloss styles used by the command output and the progress view.
package style

import (
	"github.com/anisan-cli/anicat/color"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with the given foreground and background.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer applying the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Bg returns a renderer applying the background color c.
func Bg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored("", c).Render(s) }
}

// Truncate returns a renderer cutting text to at most width cells, marking the cut with an ellipsis.
func Truncate(width int) func(string) string {
	return func(s string) string {
		if width <= 0 {
			return s
		}
		return truncate.StringWithTail(s, uint(width), "…")
	}
}

var (
	Faint     = func(s string) string { return New().Faint(true).Render(s) }
	Bold      = func(s string) string { return New().Bold(true).Render(s) }
	Italic    = func(s string) string { return New().Italic(true).Render(s) }
	Underline = func(s string) string { return New().Underline(true).Render(s) }
)

// Title renders a banner heading.
var Title = func(s string) string {
	return Colored(color.Cream, color.Indigo).Padding(0, 1).Render(s)
}

// ErrorTitle renders a banner heading in the error colors.
var ErrorTitle = func(s string) string {
	return Colored(color.Cream, color.Red).Padding(0, 1).Render(s)
}

// Tag returns a renderer drawing text as a padded colored tag.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// AnimeType renders the release format of a title as a tag colored by format.
func AnimeType(t string) string {
	bg, ok := typeColors[t]
	if !ok {
		bg = Lavender
	}
	return Tag(Base, bg)(t)
}

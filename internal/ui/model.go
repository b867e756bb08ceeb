// Package ui holds small bubbletea building blocks shared by the terminal views.
package ui

import (
	"strings"
	"time"

	"github.com/anisan-cli/anicat/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Notifier shows a short message next to the last line of a view until it expires.
type Notifier struct {
	message  string
	lifetime time.Duration
	seq      int
}

// NotifyMsg sets the message of a Notifier.
type NotifyMsg string

type clearMsg struct {
	seq int
}

// NewNotifier returns a notifier whose messages disappear after lifetime.
func NewNotifier(lifetime time.Duration) *Notifier {
	return &Notifier{lifetime: lifetime}
}

// Notify returns a command delivering message to the notifier.
func Notify(message string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg(message)
	}
}

// Message returns the message currently shown.
func (n *Notifier) Message() string {
	return n.message
}

// Update handles NotifyMsg and the expiry of the current message.
func (n *Notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		n.message = string(msg)
		n.seq++
		seq := n.seq
		return tea.Tick(n.lifetime, func(time.Time) tea.Msg {
			return clearMsg{seq: seq}
		})
	case clearMsg:
		// a newer message restarted the timer
		if msg.seq == n.seq {
			n.message = ""
		}
	}
	return nil
}

// View appends the message to the last line of content.
func (n *Notifier) View(content string) string {
	if n.message == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.message)
	return strings.Join(lines, "\n")
}

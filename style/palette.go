package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, used by the progress view and tags.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mauve    = lipgloss.Color("#cba6f7")
	Peach    = lipgloss.Color("#fab387")
	Teal     = lipgloss.Color("#94e2d5")
	Sapphire = lipgloss.Color("#74c7ec")
	Lavender = lipgloss.Color("#b4befe")
)

var (
	AccentColor = Mauve
	LinkColor   = Sapphire
)

// typeColors gives each release format its own tag color. Formats not listed use Lavender.
var typeColors = map[string]lipgloss.Color{
	"TV":    Mauve,
	"Movie": Peach,
	"OVA":   Teal,
	"ONA":   Teal,
}

package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-cli/internal/deck"
)

type styles struct {
	header    lipgloss.Style
	street    lipgloss.Style
	handInfo  lipgloss.Style
	actions   lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	success   lipgloss.Style
	error     lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
	prompt    lipgloss.Style
}

// newStyles builds the palette against a renderer for w. With noColor every
// style renders as plain text.
func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		street: r.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		handInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
	}
}

// cards formats cards with suit colours, e.g. "[A♠ K♥]"
func (s styles) cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			formatted[i] = s.redCard.Render(card.String())
		} else {
			formatted[i] = s.blackCard.Render(card.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

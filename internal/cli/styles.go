package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	cliTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cliWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cliKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cliCard  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// kvPair is a key/value line inside a card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines aligns pairs into "key  value" lines.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	var lines []string
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%s  %s", cliKey.Render(fmt.Sprintf("%-*s", width, p.key)), p.value))
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard renders a bordered completion card.
func renderSuccessCard(title string, details ...string) string {
	body := cliTitle.Render("✓ " + title)
	for _, d := range details {
		if d != "" {
			body += "\n" + d
		}
	}
	return cliCard.Render(body)
}

// renderMarkdown renders md for the terminal via glamour, falling back to
// the raw text when rendering fails (e.g. no TTY capabilities).
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// printBanner writes the tool banner shown before the wizard.
func printBanner(w io.Writer, version string) {
	_, _ = fmt.Fprintln(w, cliTitle.Render("stackforge")+" "+cliKey.Render(version))
	_, _ = fmt.Fprintln(w)
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ShortIDLen is how many characters of an id the CLI prints. Commands
// accept any unique prefix.
const ShortIDLen = 8

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n"))
	}
	return boxStyle.Render(strings.TrimRight(content, "\n"))
}

// ShortID returns the printable prefix of an id.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// TruncID returns ShortID dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// Amount renders a count with the unit's counter word, e.g. "30 題".
func Amount(n int, kind domain.UnitKind) string {
	return fmt.Sprintf("%d %s", n, kind.Label())
}

// HumanTimestamp returns a human-friendly timestamp relative to now.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

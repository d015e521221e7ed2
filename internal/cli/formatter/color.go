package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StageBadge renders the study stage with increasing urgency colors.
func StageBadge(stage domain.StudyStage) string {
	label := strings.ToUpper(stage.Label())
	switch stage {
	case domain.StageFoundation:
		return StyleGreen.Render("● " + label)
	case domain.StageReview:
		return StyleYellow.Render("▲ " + label)
	case domain.StageSprint:
		return StyleRed.Render("◆ " + label)
	default:
		return StyleDim.Render("● " + label)
	}
}

var tagLabels = map[domain.TaskTag]string{
	domain.TagCoreA:   "核心 A",
	domain.TagAuxB:    "輔助 B",
	domain.TagSideC:   "副線 C",
	domain.TagExtraE:  "額外 E",
	domain.TagReviewR: "回鍋 R",
	domain.TagManual:  "手動",
}

// TagBadge renders a task tag as a short colored label.
func TagBadge(tag domain.TaskTag) string {
	label, ok := tagLabels[tag]
	if !ok {
		label = string(tag)
	}
	switch tag {
	case domain.TagCoreA:
		return StyleHeader.Render(label)
	case domain.TagAuxB:
		return StyleBlue.Render(label)
	case domain.TagSideC:
		return StylePurple.Render(label)
	case domain.TagExtraE:
		return StyleGreen.Render(label)
	case domain.TagReviewR:
		return StyleRed.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/charmbracelet/lipgloss/tree"
)

const moduleBarWidth = 12

// RenderResourceTree lists every resource with its modules underneath.
// Finished modules get a green check and are dimmed.
func RenderResourceTree(resources []domain.Resource) string {
	if len(resources) == 0 {
		return Dim("No resources yet. Add one with `studysync resource add`.") + "\n"
	}

	var b strings.Builder
	for _, r := range resources {
		done, total := r.Totals()
		frac := 0.0
		if total > 0 {
			frac = float64(done) / float64(total)
		}
		title := fmt.Sprintf("%s %s  %s", TruncID(r.ID), Bold(r.Name), RenderProgress(frac, 10))
		if r.IsSystem {
			title += " " + Dim("(built-in)")
		}

		t := tree.Root(title).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		for i := range r.Modules {
			t.Child(moduleLine(&r.Modules[i]))
		}
		b.WriteString(t.String())
		b.WriteString("\n")
		if r.Description != "" {
			b.WriteString("   " + Dim(r.Description) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func moduleLine(m *domain.Module) string {
	counts := fmt.Sprintf("%d/%s", m.CompletedItems, Amount(m.TotalItems, m.Kind))
	if m.IsComplete() {
		return fmt.Sprintf("%s %s %s  %s", TruncID(m.ID), StyleGreen.Render("✔"), Dim(m.Name), Dim(counts))
	}
	return fmt.Sprintf("%s %s  %s %s", TruncID(m.ID), m.Name, RenderCompactBar(m.Fraction(), moduleBarWidth, false), counts)
}

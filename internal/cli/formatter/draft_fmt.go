package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/alexanderramin/studysync/internal/intelligence"
)

// FormatDraft previews a drafted resource before it is added.
func FormatDraft(tpl *intelligence.ResourceTemplate) string {
	t := tree.Root(Bold(tpl.Name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, m := range tpl.Modules {
		t.Child(fmt.Sprintf("%s  %s", m.Name, Dim(Amount(m.TotalItems, m.Kind))))
	}

	var b strings.Builder
	if tpl.Description != "" {
		b.WriteString(Dim(tpl.Description) + "\n\n")
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d modules, %d items in total", len(tpl.Modules), tpl.TotalItems()))
	return RenderBox("Draft", b.String()) + "\n"
}

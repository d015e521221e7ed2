package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studysync/internal/importer"
)

// FormatPreview summarizes a save code before it replaces the current
// state.
func FormatPreview(p importer.Preview) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Resources      %d (%d modules)\n", p.Resources, p.Modules))
	b.WriteString(fmt.Sprintf("Completed      %d items\n", p.CompletedItems))
	b.WriteString(fmt.Sprintf("Today's tasks  %d\n", p.Tasks))
	b.WriteString(fmt.Sprintf("Review queue   %d\n", p.ReviewItems))
	b.WriteString(fmt.Sprintf("Stage          %s\n", StageBadge(p.Stage)))
	return RenderBox("Import preview", b.String()) + "\n"
}

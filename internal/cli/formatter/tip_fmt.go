package formatter

import (
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
)

// FormatTip shows the knowledge tip stored on a task.
func FormatTip(t *domain.DailyTask) string {
	title := t.ResourceName + " · " + t.ModuleName
	switch {
	case t.AILoading:
		return RenderBox(title, Dim("Tip is still being generated.")) + "\n"
	case t.AITip == "":
		return RenderBox(title, Dim("No tip yet. Run `studysync task tip "+ShortID(t.ID)+"`.")) + "\n"
	}
	var b strings.Builder
	if topic := t.TipTopic(); topic != t.ModuleName {
		b.WriteString(StylePurple.Render(topic) + "\n\n")
	}
	b.WriteString(strings.TrimSpace(t.AITip))
	return RenderBox(title, b.String()) + "\n"
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studysync/internal/domain"
)

// FormatReviewQueue lists queued review items in the order the planner
// will pull them.
func FormatReviewQueue(queue domain.ReviewQueue, now time.Time) string {
	if len(queue) == 0 {
		return StyleGreen.Render("Review queue is empty.") + "\n"
	}
	headers := []string{"#", "ID", "RESOURCE", "MODULE", "WRONG", "KNOWLEDGE POINT", "ADDED"}
	rows := make([][]string, 0, len(queue))
	for i, item := range queue {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			TruncID(item.ID),
			item.ResourceName,
			item.ModuleName,
			StyleRed.Render(fmt.Sprintf("%d", item.WrongCount)),
			domain.CoalesceStr(item.KnowledgePoint, Dim("-")),
			HumanTimestamp(item.CreatedAt, now),
		})
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Review queue (%d)", len(queue))) + "\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatQueued confirms a review item created by settling a task.
func FormatQueued(item *domain.ReviewItem) string {
	if item == nil {
		return ""
	}
	msg := fmt.Sprintf("Queued for review: %s · %s (%d wrong)", item.ResourceName, item.ModuleName, item.WrongCount)
	if item.KnowledgePoint != "" {
		msg += " " + Dim(item.KnowledgePoint)
	}
	return StyleYellow.Render("↺ ") + msg + "\n"
}

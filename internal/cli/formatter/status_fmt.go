package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
)

const statusProgressBarWidth = 20

// FormatStatus renders the dashboard: overall progress, stage, today's
// plan counts, the review backlog and one row per resource.
func FormatStatus(state *domain.AppState) string {
	var b strings.Builder

	p := state.Progress()
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold("Overall"), RenderProgress(p.Pct()/100, statusProgressBarWidth)))
	b.WriteString(Dim(fmt.Sprintf("%d of %d items done", p.Completed, p.Total)) + "\n\n")

	pending := state.PendingCount()
	b.WriteString(fmt.Sprintf("Stage   %s\n", StageBadge(state.StudyStage)))
	b.WriteString(fmt.Sprintf("Today   %d tasks, %s\n", len(state.DailyPlan), pendingLabel(pending)))
	b.WriteString(fmt.Sprintf("Review  %s\n\n", reviewLabel(len(state.ReviewQueue))))

	headers := []string{"ID", "RESOURCE", "PROGRESS", "DONE", "MODULES"}
	rows := make([][]string, 0, len(state.Resources))
	for _, r := range state.Resources {
		done, total := r.Totals()
		frac := 0.0
		if total > 0 {
			frac = float64(done) / float64(total)
		}
		finished := len(r.CompletedModules())
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			RenderProgress(frac, 10),
			fmt.Sprintf("%d/%d", done, total),
			fmt.Sprintf("%d/%d", finished, len(r.Modules)),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("StudySync", b.String()) + "\n"
}

func pendingLabel(n int) string {
	if n == 0 {
		return StyleGreen.Render("all done")
	}
	return StyleYellow.Render(fmt.Sprintf("%d pending", n))
}

func reviewLabel(n int) string {
	switch {
	case n == 0:
		return Dim("queue empty")
	case n == 1:
		return StyleRed.Render("1 item waiting")
	default:
		return StyleRed.Render(fmt.Sprintf("%d items waiting", n))
	}
}

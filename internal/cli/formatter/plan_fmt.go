package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/planner"
)

// FormatPlan renders today's tasks as a table. Completed rows are dimmed
// and tasks with a tip are marked.
func FormatPlan(tasks []domain.DailyTask) string {
	if len(tasks) == 0 {
		return Dim("No tasks for today. Run `studysync plan run` to generate some.") + "\n"
	}

	headers := []string{"", "ID", "TAG", "RESOURCE", "MODULE", "PROGRESS", "NOTE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t))
	}

	var b strings.Builder
	b.WriteString(Header("Today's plan") + "\n")
	b.WriteString(RenderTable(headers, rows))
	done := len(tasks) - pendingIn(tasks)
	b.WriteString(Dim(fmt.Sprintf("%d/%d done", done, len(tasks))) + "\n")
	return b.String()
}

func taskRow(t domain.DailyTask) []string {
	mark := StyleDim.Render("○")
	name := t.ModuleName
	if t.IsCompleted {
		mark = StyleGreen.Render("✔")
		name = Dim(name)
	}
	note := domain.CoalesceStr(t.SourceKnowledgePoint, t.Note)
	switch {
	case t.AILoading:
		note = strings.TrimSpace(note + " " + StylePurple.Render("…tip"))
	case t.AITip != "":
		note = strings.TrimSpace(note + " " + StylePurple.Render("★tip"))
	}
	return []string{
		mark,
		TruncID(t.ID),
		TagBadge(t.Tag),
		t.ResourceName,
		name,
		fmt.Sprintf("%d/%d", t.CompletedAmount, t.TargetAmount),
		note,
	}
}

func pendingIn(tasks []domain.DailyTask) int {
	n := 0
	for _, t := range tasks {
		if !t.IsCompleted {
			n++
		}
	}
	return n
}

// FormatGenerated reports the outcome of a plan run.
func FormatGenerated(p planner.Plan) string {
	if len(p.Tasks) == 0 {
		return StyleYellow.Render("Nothing to plan: every module is finished and the review queue is empty.") + "\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", StyleGreen.Render("✔"), Bold(p.Summary)))
	b.WriteString(fmt.Sprintf("  %s  %d new tasks", StageBadge(p.Stage), len(p.Tasks)))
	if n := p.ReviewCount(); n > 0 {
		b.WriteString(fmt.Sprintf(", %s", StyleRed.Render(fmt.Sprintf("%d from the review queue", n))))
	}
	b.WriteString("\n\n")
	for _, t := range p.Tasks {
		line := fmt.Sprintf("  %s  %s %s · %s", TruncID(t.ID), TagBadge(t.Tag), t.ResourceName, t.ModuleName)
		line += fmt.Sprintf("  %s", Bold(fmt.Sprintf("×%d", t.TargetAmount)))
		if t.SourceKnowledgePoint != "" {
			line += "  " + Dim(t.SourceKnowledgePoint)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatHistory lists past plan runs, newest first.
func FormatHistory(runs []*domain.PlanRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No plans generated yet.") + "\n"
	}
	headers := []string{"WHEN", "STAGE", "TASKS", "REVIEWS", "SUMMARY"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			HumanTimestamp(r.CreatedAt, now),
			StageBadge(r.Stage),
			fmt.Sprintf("%d", r.TaskCount),
			fmt.Sprintf("%d", r.ReviewCount),
			r.Summary,
		})
	}
	return RenderTable(headers, rows)
}

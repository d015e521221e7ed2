package domain

import "time"

// PlanRun is the journal entry written each time a plan is generated.
type PlanRun struct {
	ID          string
	Stage       StudyStage
	TaskCount   int
	ReviewCount int
	Summary     string
	ConsumedIDs []string
	CreatedAt   time.Time
}

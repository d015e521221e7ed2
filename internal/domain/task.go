package domain

import "time"

// DailyTask is a planned unit of work against one module for today.
// ResourceName and ModuleName are snapshots taken when the task was made and
// may drift from the live names.
type DailyTask struct {
	ID              string    `json:"id" validate:"required"`
	ResourceID      string    `json:"resourceId"`
	ResourceName    string    `json:"resourceName"`
	ModuleID        string    `json:"moduleId"`
	ModuleName      string    `json:"moduleName"`
	TargetAmount    int       `json:"targetAmount" validate:"gt=0"`
	CompletedAmount int       `json:"completedAmount" validate:"gte=0"`
	IsCompleted     bool      `json:"isCompleted"`
	CreatedAt       time.Time `json:"date"`
	Tag             TaskTag   `json:"tag,omitempty"`
	Note            string    `json:"notes,omitempty"`

	// SourceKnowledgePoint carries the label of the review item a ReviewR
	// task was built from.
	SourceKnowledgePoint string `json:"sourceKnowledgePoint,omitempty"`

	AITip     string `json:"aiTip,omitempty"`
	AILoading bool   `json:"isAiLoading,omitempty"`
}

// NewTask snapshots a resource/module pair into a pending task.
func NewTask(id string, res *Resource, mod *Module, amount int, tag TaskTag, now time.Time) DailyTask {
	return DailyTask{
		ID:           id,
		ResourceID:   res.ID,
		ResourceName: res.Name,
		ModuleID:     mod.ID,
		ModuleName:   mod.Name,
		TargetAmount: amount,
		CreatedAt:    now,
		Tag:          tag,
	}
}

// TipTopic picks the subject a knowledge tip should be about: the review
// label first, then the note, then the module name.
func (t *DailyTask) TipTopic() string {
	return CoalesceStr(t.SourceKnowledgePoint, t.Note, t.ModuleName)
}

// ClickOutcome reports what clicking a task did.
type ClickOutcome int

const (
	ClickNotFound ClickOutcome = iota
	// ClickNeedsSettlement means the task is pending and the caller must
	// collect a wrong count before completing it.
	ClickNeedsSettlement
	ClickUncompleted
)

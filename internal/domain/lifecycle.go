package domain

import "time"

// ToggleTask flips a task between pending and completed. Completing sets the
// completed amount to the target; un-completing resets it to zero. The
// difference is applied to the module through the ledger. Returns false when
// the task does not exist.
func (s *AppState) ToggleTask(taskID string) bool {
	t := s.FindTask(taskID)
	if t == nil {
		return false
	}
	next := 0
	if !t.IsCompleted {
		next = t.TargetAmount
	}
	delta := next - t.CompletedAmount
	t.IsCompleted = !t.IsCompleted
	t.CompletedAmount = next
	s.ApplyDelta(t.ResourceID, t.ModuleID, delta)
	return true
}

// ClickTask handles a click on a task. A completed task is un-completed
// directly; a pending one is left alone and the caller has to run the
// settlement flow.
func (s *AppState) ClickTask(taskID string) ClickOutcome {
	t := s.FindTask(taskID)
	if t == nil {
		return ClickNotFound
	}
	if !t.IsCompleted {
		return ClickNeedsSettlement
	}
	s.ToggleTask(taskID)
	return ClickUncompleted
}

// Settlement is the input collected when a pending task is finished.
type Settlement struct {
	WrongCount     int
	KnowledgePoint string
}

// SettleTask completes a pending task and, when the user reported mistakes,
// queues a review item for it. reviewID is used for the new item. The
// returned item is nil when nothing was queued. Unknown or already
// completed tasks are left alone.
func (s *AppState) SettleTask(taskID string, in Settlement, reviewID string, now time.Time) (*ReviewItem, error) {
	if in.WrongCount < 0 {
		return nil, invalid("wrong count must not be negative, got %d", in.WrongCount)
	}
	t := s.FindTask(taskID)
	if t == nil || t.IsCompleted {
		return nil, nil
	}
	s.ToggleTask(taskID)
	if in.WrongCount == 0 {
		return nil, nil
	}
	item := ReviewItem{
		ID:             reviewID,
		ResourceID:     t.ResourceID,
		ResourceName:   t.ResourceName,
		ModuleID:       t.ModuleID,
		ModuleName:     t.ModuleName,
		WrongCount:     in.WrongCount,
		KnowledgePoint: in.KnowledgePoint,
		CreatedAt:      now,
	}
	s.ReviewQueue.Enqueue(item)
	return &item, nil
}

// EditTaskAmounts overwrites a task's target and completed amounts and
// pushes the completed difference through the ledger. It never queues a
// review item.
func (s *AppState) EditTaskAmounts(taskID string, target, completed int) error {
	if target <= 0 {
		return invalid("target amount must be positive, got %d", target)
	}
	if completed < 0 {
		return invalid("completed amount must not be negative, got %d", completed)
	}
	t := s.FindTask(taskID)
	if t == nil {
		return nil
	}
	delta := completed - t.CompletedAmount
	t.TargetAmount = target
	t.CompletedAmount = completed
	t.IsCompleted = completed >= target
	s.ApplyDelta(t.ResourceID, t.ModuleID, delta)
	return nil
}

// DeleteTask removes a task after taking back whatever progress it had
// credited to its module. Returns false when the task does not exist.
func (s *AppState) DeleteTask(taskID string) bool {
	for i := range s.DailyPlan {
		t := s.DailyPlan[i]
		if t.ID != taskID {
			continue
		}
		if t.CompletedAmount > 0 {
			s.ApplyDelta(t.ResourceID, t.ModuleID, -t.CompletedAmount)
		}
		s.DailyPlan = append(s.DailyPlan[:i], s.DailyPlan[i+1:]...)
		return true
	}
	return false
}

// AddTaskToPlan appends a manual task for a module. Returns nil without
// changes when the module cannot be found.
func (s *AppState) AddTaskToPlan(taskID, resourceID, moduleID string, amount int, now time.Time) (*DailyTask, error) {
	if amount <= 0 {
		return nil, invalid("amount must be positive, got %d", amount)
	}
	res, mod := s.FindModule(resourceID, moduleID)
	if mod == nil {
		return nil, nil
	}
	s.DailyPlan = append(s.DailyPlan, NewTask(taskID, res, mod, amount, TagManual, now))
	return &s.DailyPlan[len(s.DailyPlan)-1], nil
}

// CommitPlan appends generated tasks and drains the review items they
// consumed. Both happen in the same step so a saved snapshot never holds
// one without the other.
func (s *AppState) CommitPlan(tasks []DailyTask, consumedReviewIDs []string) {
	s.DailyPlan = append(s.DailyPlan, tasks...)
	s.ReviewQueue.Drain(consumedReviewIDs)
}

// SetTipLoading flags a task as waiting for a knowledge tip.
func (s *AppState) SetTipLoading(taskID string) bool {
	t := s.FindTask(taskID)
	if t == nil {
		return false
	}
	t.AILoading = true
	return true
}

// WriteTip stores a tip on the task and clears the loading flag. A missing
// task makes this a no-op.
func (s *AppState) WriteTip(taskID, tip string) bool {
	t := s.FindTask(taskID)
	if t == nil {
		return false
	}
	t.AILoading = false
	t.AITip = tip
	return true
}

// StopTipLoading clears the loading flag of one task without storing a tip.
// It reports whether a flag was cleared.
func (s *AppState) StopTipLoading(taskID string) bool {
	t := s.FindTask(taskID)
	if t == nil || !t.AILoading {
		return false
	}
	t.AILoading = false
	return true
}

// ClearTipLoading drops loading flags left behind by requests that never
// finished, such as when the process exited mid-request.
func (s *AppState) ClearTipLoading() {
	for i := range s.DailyPlan {
		s.DailyPlan[i].AILoading = false
	}
}

package domain

import "time"

// ReviewItem records something the user got wrong and should revisit.
type ReviewItem struct {
	ID             string    `json:"id" validate:"required"`
	ResourceID     string    `json:"resourceId"`
	ResourceName   string    `json:"resourceName"`
	ModuleID       string    `json:"moduleId"`
	ModuleName     string    `json:"moduleName"`
	WrongCount     int       `json:"wrongCount" validate:"gte=0"`
	KnowledgePoint string    `json:"knowledgePoint,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReviewQueue is a FIFO pool of review items. Order is creation order.
type ReviewQueue []ReviewItem

// Enqueue appends item to the end of the queue.
func (q *ReviewQueue) Enqueue(item ReviewItem) {
	*q = append(*q, item)
}

// PeekBatch returns a copy of the first n items without removing them.
func (q ReviewQueue) PeekBatch(n int) []ReviewItem {
	if n <= 0 {
		return nil
	}
	if n > len(q) {
		n = len(q)
	}
	out := make([]ReviewItem, n)
	copy(out, q[:n])
	return out
}

// Drain removes every item whose id is in ids and returns how many were
// removed. Remaining items keep their order.
func (q *ReviewQueue) Drain(ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := (*q)[:0]
	removed := 0
	for _, item := range *q {
		if _, ok := drop[item.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	*q = kept
	return removed
}

// Contains reports whether an item with the given id is queued.
func (q ReviewQueue) Contains(id string) bool {
	for _, item := range q {
		if item.ID == id {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alexanderramin/studysync/internal/intelligence"
)

// TipFallback is stored when the generator returns nothing.
const TipFallback = "Could not generate advice, try again later."

// TipHandle tracks one in-flight tip request.
type TipHandle struct {
	TaskID string

	done    chan struct{}
	cancel  context.CancelFunc
	tip     string
	applied bool
}

// Done is closed once the request has finished or been dropped.
func (h *TipHandle) Done() <-chan struct{} { return h.done }

// Result returns the generated tip and whether it was written to the task.
// It is only meaningful after Done is closed.
func (h *TipHandle) Result() (tip string, applied bool) {
	return h.tip, h.applied
}

// TipTracker runs knowledge-tip requests in the background. A task has at
// most one live request: asking again supersedes the older one and deleting
// the task cancels it, and a superseded or cancelled result is never
// written.
type TipTracker struct {
	store  *Store
	gen    TipGenerator
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*TipHandle
	wg      sync.WaitGroup
}

func NewTipTracker(store *Store, gen TipGenerator, logger *slog.Logger) *TipTracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TipTracker{store: store, gen: gen, logger: logger, pending: map[string]*TipHandle{}}
}

// Request marks the task as loading and starts generation. It returns a nil
// handle when the task does not exist.
func (t *TipTracker) Request(ctx context.Context, taskID string) (*TipHandle, error) {
	mark := &MarkTipLoading{TaskID: taskID}
	if err := t.store.Dispatch(ctx, mark); err != nil {
		return nil, err
	}
	if mark.Task == nil {
		return nil, nil
	}

	reqCtx, cancel := context.WithCancel(ctx)
	h := &TipHandle{TaskID: taskID, done: make(chan struct{}), cancel: cancel}

	t.mu.Lock()
	if prev := t.pending[taskID]; prev != nil {
		prev.cancel()
	}
	t.pending[taskID] = h
	t.mu.Unlock()

	req := intelligence.TipRequest{
		Topic:        mark.Task.TipTopic(),
		ResourceName: mark.Task.ResourceName,
		ModuleName:   mark.Task.ModuleName,
		Stage:        t.store.Snapshot().StudyStage,
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer close(h.done)
		tip := t.gen.Tip(reqCtx, req)
		if tip == "" {
			tip = TipFallback
		}
		h.tip = tip
		t.finish(context.WithoutCancel(ctx), reqCtx, h)
	}()
	return h, nil
}

func (t *TipTracker) finish(ctx, reqCtx context.Context, h *TipHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer h.cancel()

	if t.pending[h.TaskID] != h || reqCtx.Err() != nil {
		t.logger.DebugContext(ctx, "tip dropped", "task_id", h.TaskID)
		return
	}
	delete(t.pending, h.TaskID)

	write := &WriteTip{TaskID: h.TaskID, Tip: h.tip}
	if err := t.store.Dispatch(ctx, write); err != nil {
		t.logger.WarnContext(ctx, "saving tip failed", "task_id", h.TaskID, "error", err)
		return
	}
	h.applied = write.Written
}

// Invalidate cancels the live request for taskID, if any.
func (t *TipTracker) Invalidate(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h := t.pending[taskID]; h != nil {
		h.cancel()
		delete(t.pending, taskID)
	}
}

// Abandon cancels the live request for taskID and clears the task's
// loading flag, for callers that stop waiting on a tip.
func (t *TipTracker) Abandon(ctx context.Context, taskID string) error {
	t.Invalidate(taskID)
	return t.store.Dispatch(ctx, &StopTipLoading{TaskID: taskID})
}

// InvalidateAll cancels every live request.
func (t *TipTracker) InvalidateAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, h := range t.pending {
		h.cancel()
		delete(t.pending, id)
	}
}

// Wait blocks until every started request has finished.
func (t *TipTracker) Wait() { t.wg.Wait() }

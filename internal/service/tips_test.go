package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studysync/internal/intelligence"
	"github.com/alexanderramin/studysync/internal/testutil"
)

// gatedTips blocks each call until release is closed or the context ends.
type gatedTips struct {
	mu      sync.Mutex
	reply   string
	release chan struct{}
	seen    []intelligence.TipRequest
}

func newGatedTips(reply string) *gatedTips {
	return &gatedTips{reply: reply, release: make(chan struct{})}
}

func (g *gatedTips) Tip(ctx context.Context, req intelligence.TipRequest) string {
	g.mu.Lock()
	g.seen = append(g.seen, req)
	g.mu.Unlock()
	select {
	case <-g.release:
		return g.reply
	case <-ctx.Done():
		return ""
	}
}

func waitDone(t *testing.T, h *TipHandle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("tip request did not finish")
	}
}

func tipFixture(t *testing.T, gen TipGenerator) (*Store, *TipTracker, StudyService) {
	t.Helper()
	state := testutil.NewTestState()
	_, err := state.AddTaskToPlan("t1", "r-test", "m-a", 5, fixedNow)
	require.NoError(t, err)
	store, _ := newTestStore(t, state)
	tips := NewTipTracker(store, gen, nil)
	return store, tips, NewStudyService(store, newGenerator(), nil, tips)
}

func TestTipTracker_WritesTip(t *testing.T) {
	gen := newGatedTips("Core concept: A")
	store, tips, _ := tipFixture(t, gen)

	h, err := tips.Request(context.Background(), "t1")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.True(t, store.Snapshot().FindTask("t1").AILoading)

	close(gen.release)
	waitDone(t, h)
	tip, applied := h.Result()
	assert.True(t, applied)
	assert.Equal(t, "Core concept: A", tip)

	task := store.Snapshot().FindTask("t1")
	assert.False(t, task.AILoading)
	assert.Equal(t, "Core concept: A", task.AITip)
	require.Len(t, gen.seen, 1)
	assert.Equal(t, "Part A", gen.seen[0].Topic)
}

func TestTipTracker_EmptyReplyUsesFallback(t *testing.T) {
	gen := newGatedTips("")
	store, tips, _ := tipFixture(t, gen)

	h, err := tips.Request(context.Background(), "t1")
	require.NoError(t, err)
	close(gen.release)
	waitDone(t, h)

	assert.Equal(t, TipFallback, store.Snapshot().FindTask("t1").AITip)
}

func TestTipTracker_DeleteDropsLateResult(t *testing.T) {
	gen := newGatedTips("too late")
	store, tips, study := tipFixture(t, gen)

	h, err := tips.Request(context.Background(), "t1")
	require.NoError(t, err)

	deleted, err := study.DeleteTask(context.Background(), "t1")
	require.NoError(t, err)
	require.True(t, deleted)

	close(gen.release)
	waitDone(t, h)
	_, applied := h.Result()
	assert.False(t, applied)
	assert.Nil(t, store.Snapshot().FindTask("t1"))
	assert.Empty(t, store.Snapshot().DailyPlan)
}

func TestTipTracker_LastRequestWins(t *testing.T) {
	gen := newGatedTips("second answer")
	store, tips, _ := tipFixture(t, gen)
	ctx := context.Background()

	first, err := tips.Request(ctx, "t1")
	require.NoError(t, err)
	second, err := tips.Request(ctx, "t1")
	require.NoError(t, err)

	waitDone(t, first)
	_, applied := first.Result()
	assert.False(t, applied, "superseded request is dropped")

	close(gen.release)
	waitDone(t, second)
	_, applied = second.Result()
	assert.True(t, applied)
	assert.Equal(t, "second answer", store.Snapshot().FindTask("t1").AITip)
}

func TestTipTracker_UnknownTask(t *testing.T) {
	_, tips, _ := tipFixture(t, newGatedTips("x"))
	h, err := tips.Request(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestTipTracker_InvalidateAllOnImport(t *testing.T) {
	gen := newGatedTips("stale")
	store, tips, _ := tipFixture(t, gen)
	transfer := NewTransferService(store, tips)

	h, err := tips.Request(context.Background(), "t1")
	require.NoError(t, err)

	replacement := testutil.NewTestState()
	_, err = replacement.AddTaskToPlan("t1", "r-test", "m-b", 1, fixedNow)
	require.NoError(t, err)
	require.NoError(t, transfer.Import(context.Background(), replacement))

	close(gen.release)
	waitDone(t, h)
	_, applied := h.Result()
	assert.False(t, applied)
	assert.Empty(t, store.Snapshot().FindTask("t1").AITip)
}

func TestTipTracker_AbandonClearsLoading(t *testing.T) {
	gen := newGatedTips("never saved")
	store, tips, _ := tipFixture(t, gen)
	ctx := context.Background()

	h, err := tips.Request(ctx, "t1")
	require.NoError(t, err)
	require.True(t, store.Snapshot().FindTask("t1").AILoading)

	require.NoError(t, tips.Abandon(ctx, "t1"))
	assert.False(t, store.Snapshot().FindTask("t1").AILoading)

	close(gen.release)
	waitDone(t, h)
	_, applied := h.Result()
	assert.False(t, applied)
	assert.Empty(t, store.Snapshot().FindTask("t1").AITip)

	require.NoError(t, tips.Abandon(ctx, "gone"))
}

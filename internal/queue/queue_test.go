package queue_test

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rbeiter/tw2002-client/internal/database"
	"github.com/rbeiter/tw2002-client/internal/queue"
)

type warpOp struct {
	source, destination int
}

func (o warpOp) Apply(store *database.Store) error {
	return store.SaveWarp(o.source, o.destination)
}

func (o warpOp) String() string {
	return fmt.Sprintf("warp %d->%d", o.source, o.destination)
}

type failingOp struct{}

func (failingOp) Apply(store *database.Store) error { return fmt.Errorf("write rejected") }
func (failingOp) String() string                    { return "failing op" }

func openTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestQueueDrainsFullyOnShutdown(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	store := openTestStore(t)
	q := queue.Start(store)

	for i := 1; i <= 50; i++ {
		require.True(t, q.Enqueue(warpOp{i, i + 1}))
	}

	q.Close()
	require.NoError(t, q.Wait())

	warps, err := store.AllWarps()
	require.NoError(t, err)
	assert.Len(t, warps, 50)
}

func TestEnqueueAfterCloseIsRejected(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	store := openTestStore(t)
	q := queue.Start(store)
	q.Close()

	assert.False(t, q.Enqueue(warpOp{1, 2}))
	require.NoError(t, q.Wait())

	warps, err := store.AllWarps()
	require.NoError(t, err)
	assert.Empty(t, warps)
}

func TestFailedOpDoesNotHaltConsumer(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	store := openTestStore(t)
	q := queue.Start(store)

	q.Enqueue(warpOp{1, 2})
	q.Enqueue(failingOp{})
	q.Enqueue(warpOp{2, 3})

	q.Close()
	require.NoError(t, q.Wait())

	warps, err := store.AllWarps()
	require.NoError(t, err)
	assert.ElementsMatch(t, []database.Warp{{Source: 1, Destination: 2}, {Source: 2, Destination: 3}}, warps)
}

func TestSettleHookFiresAfterBurst(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	store := openTestStore(t)

	var settled atomic.Int32
	q := queue.Start(store, queue.WithSettleHook(func() { settled.Add(1) }))

	for i := 1; i <= 10; i++ {
		q.Enqueue(warpOp{i, i + 1})
	}
	q.Close()
	require.NoError(t, q.Wait())

	assert.GreaterOrEqual(t, settled.Load(), int32(1))
}

func TestCloseReportsPendingCount(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	store := openTestStore(t)
	q := queue.Start(store, queue.WithMonitorInterval(time.Hour))

	// an empty queue reports nothing pending
	pending := q.Close()
	assert.Equal(t, 0, pending)
	require.NoError(t, q.Wait())
}

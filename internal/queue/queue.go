package queue

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rbeiter/tw2002-client/internal/database"
	"github.com/rbeiter/tw2002-client/internal/log"
)

// Op is one deferred write against the store. The parser produces Ops faster
// than SQLite can commit them; the queue decouples the two sides.
type Op interface {
	Apply(store *database.Store) error
	String() string
}

// Queue is an unbounded FIFO of store operations drained by a single
// consumer goroutine. Producers never block. A monitor goroutine reports
// queue depth periodically for observability.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	ops    []Op
	closed bool

	store           *database.Store
	settle          func()
	monitorInterval time.Duration

	group  *errgroup.Group
	cancel context.CancelFunc
}

// Option configures a Queue.
type Option func(*Queue)

// WithSettleHook registers a function called whenever the consumer drains a
// burst of more than one pending operation. The parse command uses it to
// flash the terminal so the operator can see writes have caught up.
func WithSettleHook(fn func()) Option {
	return func(q *Queue) { q.settle = fn }
}

// WithMonitorInterval overrides how often the monitor logs queue depth.
func WithMonitorInterval(d time.Duration) Option {
	return func(q *Queue) { q.monitorInterval = d }
}

// Start creates a queue writing to store and launches its consumer and
// monitor goroutines.
func Start(store *database.Store, opts ...Option) *Queue {
	q := &Queue{
		store:           store,
		monitorInterval: 10 * time.Second,
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}

	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.group, ctx = errgroup.WithContext(ctx)

	q.group.Go(func() error {
		defer cancel() // stops the monitor once the queue is drained
		q.consume()
		return nil
	})
	q.group.Go(func() error {
		q.monitor(ctx)
		return nil
	})

	return q
}

// Enqueue adds op to the queue. Returns false if the queue has been closed;
// producers must not enqueue after signaling shutdown.
func (q *Queue) Enqueue(op Op) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		log.Warn("enqueue after close dropped", "op", op.String())
		return false
	}
	q.ops = append(q.ops, op)
	q.cond.Signal()
	return true
}

// Depth returns the number of operations waiting to be applied.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Close signals that no more operations will arrive. The consumer drains
// everything still pending before Wait returns. The count of operations
// pending at close time is returned so the caller can tell the user a drain
// is in progress.
func (q *Queue) Close() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return len(q.ops)
	}
	q.closed = true
	q.cond.Broadcast()
	return len(q.ops)
}

// Wait blocks until the consumer has applied every pending operation and
// both goroutines have exited. Call after Close.
func (q *Queue) Wait() error {
	return q.group.Wait()
}

// pop blocks until an operation is available or the queue is closed and
// empty. The second return is false only in the latter case.
func (q *Queue) pop() (Op, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.ops) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.ops) == 0 {
		return nil, false
	}
	op := q.ops[0]
	q.ops = q.ops[1:]
	return op, true
}

func (q *Queue) consume() {
	burst := 0
	for {
		op, ok := q.pop()
		if !ok {
			if burst > 1 && q.settle != nil {
				q.settle()
			}
			return
		}

		log.Debug("applying operation", "op", op.String())
		if err := op.Apply(q.store); err != nil {
			// a single bad write must not halt ingestion of the rest
			log.Error("queue operation failed", "op", op.String(), "error", err)
		}
		burst++

		if q.Depth() == 0 {
			if burst > 1 && q.settle != nil {
				q.settle()
			}
			burst = 0
		}
	}
}

func (q *Queue) monitor(ctx context.Context) {
	ticker := time.NewTicker(q.monitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Info("queue depth", "depth", q.Depth())
		}
	}
}

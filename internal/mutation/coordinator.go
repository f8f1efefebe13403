// Package mutation applies status changes optimistically: the
// in-memory index is updated synchronously and the persisted write
// happens afterwards as a fire-and-forget side effect. A failed write
// is reported, never rolled back: the in-memory view stays ahead of
// the backing store until the next full reload.
package mutation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tablerohq/tablero/internal/index"
	"github.com/tablerohq/tablero/internal/store"
	"github.com/tablerohq/tablero/internal/taskfile"
)

// ErrTaskNotFound means the task id is not in the index (or, in a
// lazy build, its file has not been parsed yet).
var ErrTaskNotFound = errors.New("task not found in index")

// Coordinator owns the pending-write bookkeeping for one index
// snapshot. Writes are last-write-wins per task: a second move issued
// before the first write resolves simply overwrites the pending
// target status, nothing is queued or serialized.
type Coordinator struct {
	mu      sync.Mutex
	idx     *index.Index
	writer  store.WritableStore // nil disables persistence, moves stay in-memory
	logger  *slog.Logger
	onError func(taskID string, err error)

	pending  map[string]string // task id -> latest target status
	inFlight map[string]bool   // task id -> a write goroutine is active
	dirty    map[string]bool   // ids whose write failed; view diverges from store
	writes   sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithWriteErrorHandler installs a callback invoked (from the write
// goroutine) when a persisted write fails.
func WithWriteErrorHandler(fn func(taskID string, err error)) Option {
	return func(c *Coordinator) { c.onError = fn }
}

// New creates a coordinator over an index. A nil writer is valid:
// moves apply in memory and persistence is skipped, mirroring a
// read-only store.
func New(idx *index.Index, writer store.WritableStore, logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		idx:      idx,
		writer:   writer,
		logger:   logger,
		pending:  make(map[string]string),
		inFlight: make(map[string]bool),
		dirty:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MoveTask replaces the task's status in every in-memory grouping
// synchronously and returns before the persisted write resolves.
// Each task has at most one write goroutine: a second move while one
// is in flight only overwrites the pending target, and the goroutine
// follows up with the newest status once the current write settles.
func (c *Coordinator) MoveTask(taskID, newStatus string) error {
	task := c.idx.Task(taskID)
	if task == nil {
		return ErrTaskNotFound
	}

	updated := task.WithStatus(newStatus, time.Now().Format("2006-01-02 15:04"))
	c.idx.Replace(updated)

	c.mu.Lock()
	c.pending[taskID] = newStatus
	if c.writer == nil || c.inFlight[taskID] {
		c.mu.Unlock()
		if c.writer == nil {
			c.logger.Debug("store is read-only, skipping persisted write", "task", taskID)
		}
		return nil
	}
	c.inFlight[taskID] = true
	c.mu.Unlock()

	c.writes.Add(1)
	go c.persist(taskID)
	return nil
}

// Dirty returns the ids whose persisted write failed since the last
// reload. Callers can surface these as conflicts; the records
// themselves keep their optimistic status.
func (c *Coordinator) Dirty() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.dirty))
	for id := range c.dirty {
		out = append(out, id)
	}
	return out
}

// Wait blocks until every in-flight persisted write has settled.
// Mostly for CLI exit paths and tests; interactive callers never wait.
func (c *Coordinator) Wait() {
	c.writes.Wait()
}

func (c *Coordinator) persist(taskID string) {
	defer c.writes.Done()

	for {
		// Serialize the current record, not one captured at move
		// time: a newer move may already have replaced it, in which
		// case this write simply carries the newer status.
		task := c.idx.Task(taskID)
		if task == nil {
			c.clearFlight(taskID)
			return
		}

		err := c.writer.Write(context.Background(), task.FilePath, taskfile.SerializeTask(task))
		if err != nil {
			c.mu.Lock()
			c.dirty[taskID] = true
			c.inFlight[taskID] = false
			onError := c.onError
			c.mu.Unlock()

			c.logger.Error("persisted write failed; in-memory status kept",
				"task", taskID, "status", task.Status, "error", err)
			if onError != nil {
				onError(taskID, err)
			}
			return
		}

		c.mu.Lock()
		if c.pending[taskID] == task.Status {
			delete(c.pending, taskID)
			delete(c.dirty, taskID)
			c.inFlight[taskID] = false
			c.mu.Unlock()
			return
		}
		// A newer target arrived while writing; go around once more
		// with the latest record.
		c.mu.Unlock()
	}
}

func (c *Coordinator) clearFlight(taskID string) {
	c.mu.Lock()
	c.inFlight[taskID] = false
	c.mu.Unlock()
}

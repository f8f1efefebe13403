// Package board composes the store, config, index, pagination,
// milestone and mutation layers into one Session per load cycle.
// There are no module-level caches anywhere: the Session owns all
// state, and Reload builds a brand-new Session instead of patching
// this one, so in-flight reads against the old snapshot finish
// against stale-but-consistent data.
package board

import (
	"context"
	"log/slog"

	"github.com/tablerohq/tablero/internal/config"
	"github.com/tablerohq/tablero/internal/export"
	"github.com/tablerohq/tablero/internal/index"
	"github.com/tablerohq/tablero/internal/milestone"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/mutation"
	"github.com/tablerohq/tablero/internal/pagination"
	"github.com/tablerohq/tablero/internal/store"
)

// Options configure a Session.
type Options struct {
	// Lazy defers task parsing to the pages that need the files.
	Lazy bool

	// PageSize is the LoadMore window; zero means the default.
	PageSize int

	// RouteUnknownToDefault redirects tasks with unconfigured
	// statuses into the default status column. Off, they stay
	// visible under their literal status.
	RouteUnknownToDefault bool

	// Strict applies config.Validate on top of the lenient parse.
	Strict bool

	Logger *slog.Logger
}

// Session is one load cycle over one store.
type Session struct {
	st     store.FileStore
	opts   Options
	logger *slog.Logger

	idx        *index.Index
	pages      *pagination.Engine
	milestones *milestone.Index
	mutator    *mutation.Coordinator
}

// Open lists the store, checks project-ness, builds the index and
// wires the layers above it. Fetches go through a same-path
// de-duplicating wrapper so racing page loads for one file coalesce.
func Open(ctx context.Context, st store.FileStore, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths := st.List()
	fetcher := store.FileStore(store.NewDedup(st))

	idx, err := index.Build(ctx, paths, fetcher, index.Options{
		Lazy:                  opts.Lazy,
		RouteUnknownToDefault: opts.RouteUnknownToDefault,
	}, logger)
	if err != nil {
		return nil, err
	}

	if opts.Strict {
		if err := config.Validate(idx.Config()); err != nil {
			return nil, err
		}
	}

	// Write capability is whatever the underlying store offers; the
	// deduping wrapper is read-side only.
	writer, _ := st.(store.WritableStore)

	s := &Session{
		st:         st,
		opts:       opts,
		logger:     logger,
		idx:        idx,
		pages:      pagination.NewEngine(idx, opts.PageSize),
		milestones: milestone.New(fetcher, idx, logger),
	}
	s.mutator = mutation.New(idx, writer, logger)
	return s, nil
}

// Reload produces a fresh Session over the same store and options:
// arena-style rebuild, never in-place invalidation. The receiver
// stays usable for readers that still hold it.
func (s *Session) Reload(ctx context.Context) (*Session, error) {
	s.mutator.Wait() // let pending writes land so the rebuild sees them
	return Open(ctx, s.st, s.opts)
}

// Config returns this cycle's resolved configuration.
func (s *Session) Config() *models.Configuration {
	return s.idx.Config()
}

// Statuses returns the column vocabulary (configured order first,
// then encountered extras).
func (s *Session) Statuses() []string {
	return s.idx.Statuses()
}

// Tasks returns every task, forcing lazy builds to finish parsing.
func (s *Session) Tasks(ctx context.Context) ([]*models.Task, error) {
	return s.idx.AllTasks(ctx)
}

// Page reads an explicit window of a status column.
func (s *Session) Page(ctx context.Context, status string, offset, limit int) (*pagination.Result, error) {
	return s.pages.Page(ctx, pagination.StatusKey(status), offset, limit)
}

// LoadMore loads the next window of a status column.
func (s *Session) LoadMore(ctx context.Context, status string) (*pagination.Result, error) {
	return s.pages.LoadMore(ctx, pagination.StatusKey(status))
}

// LoadMoreFromSource loads the next window of a source directory
// group (tasks vs completed).
func (s *Session) LoadMoreFromSource(ctx context.Context, src models.Source) (*pagination.Result, error) {
	return s.pages.LoadMore(ctx, pagination.SourceKey(src))
}

// Milestones lists the project milestones without touching task files.
func (s *Session) Milestones(ctx context.Context) ([]*models.Milestone, error) {
	return s.milestones.List(ctx)
}

// ExpandMilestone resolves a milestone's member tasks.
func (s *Session) ExpandMilestone(ctx context.Context, id string) ([]*models.Task, error) {
	return s.milestones.Expand(ctx, id)
}

// CollapseMilestone flips a milestone back to collapsed.
func (s *Session) CollapseMilestone(id string) {
	s.milestones.Collapse(id)
}

// MoveTask applies an optimistic status change; the persisted write
// trails behind. See internal/mutation for the failure policy.
func (s *Session) MoveTask(taskID, newStatus string) error {
	return s.mutator.MoveTask(taskID, newStatus)
}

// DirtyTasks lists ids whose persisted write failed this cycle.
func (s *Session) DirtyTasks() []string {
	return s.mutator.Dirty()
}

// Flush waits for in-flight persisted writes. CLI exit paths call
// this; interactive callers do not.
func (s *Session) Flush() {
	s.mutator.Wait()
}

// Export renders the whole board to markdown. It forces a full parse
// first; the exporter itself is pure.
func (s *Session) Export(ctx context.Context) (string, error) {
	tasks, err := s.idx.AllTasks(ctx)
	if err != nil {
		return "", err
	}
	return export.Render(tasks, s.idx.Statuses(), s.Config().ProjectName), nil
}

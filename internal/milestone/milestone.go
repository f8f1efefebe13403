// Package milestone lists milestone files and lazily resolves their
// member tasks. Listing is cheap (it parses milestone files only)
// and expansion batches the member lookups through the task index,
// caching the result per milestone. Collapse is a pure state flip.
package milestone

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tablerohq/tablero/internal/index"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/store"
	"github.com/tablerohq/tablero/internal/taskfile"
)

// Index holds the milestones of one load cycle and their expansion
// state. Like the task index, it is rebuilt on reload, not patched.
type Index struct {
	mu     sync.Mutex
	st     store.FileStore
	tasks  *index.Index
	logger *slog.Logger

	milestones []*models.Milestone // nil until the first List
	expanded   map[string]bool
	members    map[string][]*models.Task // cached expansions by milestone id
}

// New creates a milestone index over the same store and task index a
// board session uses.
func New(st store.FileStore, tasks *index.Index, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		st:       st,
		tasks:    tasks,
		logger:   logger,
		expanded: make(map[string]bool),
		members:  make(map[string][]*models.Task),
	}
}

// List parses the milestone files once per load cycle and returns
// them in path order. Task files are never touched here. Malformed
// milestone files are logged and skipped, same isolation rule as
// tasks.
func (mi *Index) List(ctx context.Context) ([]*models.Milestone, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.milestones != nil {
		return mi.milestones, nil
	}

	milestones := []*models.Milestone{}
	for _, p := range mi.st.List() {
		if !models.IsMilestonePath(p) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := mi.st.Fetch(ctx, p)
		if err != nil {
			mi.logger.Warn("skipping unreadable milestone file", "path", p, "error", err)
			continue
		}
		ms, err := taskfile.ParseMilestone(content, p)
		if err != nil {
			mi.logger.Warn("skipping malformed milestone file", "path", p, "error", err)
			continue
		}
		milestones = append(milestones, ms)
	}

	mi.milestones = milestones
	return milestones, nil
}

// Expand resolves a milestone's member tasks in one batch and caches
// them against the milestone. Member ids whose task file no longer
// exists are dropped from the resolved set without error. Expanding
// an unknown milestone id yields an empty set.
func (mi *Index) Expand(ctx context.Context, milestoneID string) ([]*models.Task, error) {
	if _, err := mi.List(ctx); err != nil {
		return nil, err
	}

	mi.mu.Lock()
	ms := mi.findLocked(milestoneID)
	if cached, ok := mi.members[milestoneID]; ok {
		mi.expanded[milestoneID] = true
		mi.mu.Unlock()
		return cached, nil
	}
	mi.mu.Unlock()

	var memberIDs []string
	if ms != nil {
		memberIDs = ms.TaskIDs
	}
	tasks, err := mi.tasks.EnsureTasks(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	mi.mu.Lock()
	mi.members[milestoneID] = tasks
	mi.expanded[milestoneID] = true
	mi.mu.Unlock()
	return tasks, nil
}

// Collapse flips the expansion state. No I/O, and the cached member
// set stays warm for the next Expand.
func (mi *Index) Collapse(milestoneID string) {
	mi.mu.Lock()
	defer mi.mu.Unlock()
	mi.expanded[milestoneID] = false
}

// IsExpanded reports the current expansion state of a milestone.
func (mi *Index) IsExpanded(milestoneID string) bool {
	mi.mu.Lock()
	defer mi.mu.Unlock()
	return mi.expanded[milestoneID]
}

func (mi *Index) findLocked(milestoneID string) *models.Milestone {
	for _, ms := range mi.milestones {
		if ms.ID == milestoneID {
			return ms
		}
	}
	return nil
}

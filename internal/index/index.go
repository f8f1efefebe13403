// Package index owns the canonical set of parsed tasks for one load
// cycle. It decides project-ness from path names alone, resolves the
// status vocabulary through the config parser, and buckets tasks by
// canonicalized status and by source directory. A reload never
// mutates an existing Index; callers build a fresh one and drop the
// old snapshot.
package index

import (
	"context"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/tablerohq/tablero/internal/config"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/store"
	"github.com/tablerohq/tablero/internal/taskfile"
)

// Options tune how an Index is built.
type Options struct {
	// Lazy defers task-file parsing until a page, milestone expansion
	// or full read actually needs the file. The index then only
	// records candidate paths at build time.
	Lazy bool

	// RouteUnknownToDefault buckets tasks whose status matches no
	// configured status under the default status instead of a
	// fallback bucket keyed by the literal status. This is caller
	// policy, off by default: the index rule is to keep unmatched
	// tasks visible under their own status.
	RouteUnknownToDefault bool
}

// Index is the in-memory task index for one load cycle.
type Index struct {
	mu     sync.Mutex
	cfg    *models.Configuration
	st     store.FileStore
	opts   Options
	logger *slog.Logger

	byID          map[string]*models.Task
	statusGroups  map[string][]*models.Task // key: canonical (lowercased) status
	statusDisplay map[string]string         // canonical -> first-seen display casing
	extraStatuses []string                  // canonical keys seen in tasks but not configured
	configured    map[string]bool           // canonical keys from the config
	sourceGroups  map[models.Source][]*models.Task
	pending       map[models.Source][]string // unparsed candidate paths (lazy mode)
}

// IsProject decides, synchronously and without I/O, whether a path
// listing looks like a managed project: the configuration file's
// literal path must be present.
func IsProject(paths []string) bool {
	for _, p := range paths {
		if p == models.ConfigPath {
			return true
		}
	}
	return false
}

// Build constructs an index from a path listing and a content-fetch
// capability. The configuration fetch/parse is the only fatal step;
// individual task files that fail to parse are logged and excluded.
func Build(ctx context.Context, paths []string, st store.FileStore, opts Options, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !IsProject(paths) {
		return nil, ErrNotAProject
	}

	content, err := st.Fetch(ctx, models.ConfigPath)
	if err != nil {
		// Fetch failures on the config are whole-index failures,
		// propagated unchanged.
		return nil, err
	}
	cfg := config.Parse(content)

	ix := &Index{
		cfg:           cfg,
		st:            st,
		opts:          opts,
		logger:        logger,
		byID:          make(map[string]*models.Task),
		statusGroups:  make(map[string][]*models.Task),
		statusDisplay: make(map[string]string),
		configured:    make(map[string]bool),
		sourceGroups:  make(map[models.Source][]*models.Task),
		pending:       make(map[models.Source][]string),
	}

	for _, status := range cfg.Statuses {
		key := canonical(status)
		if ix.configured[key] {
			continue
		}
		ix.configured[key] = true
		ix.statusDisplay[key] = status
		ix.statusGroups[key] = []*models.Task{}
	}

	var taskPaths []string
	for _, p := range paths {
		if models.IsTaskPath(p) {
			taskPaths = append(taskPaths, p)
		}
	}

	if opts.Lazy {
		for _, p := range taskPaths {
			src := models.SourceForPath(p)
			ix.pending[src] = append(ix.pending[src], p)
		}
		// Parse order within a source follows the filename-derived
		// id, newest first, so a page over an unparsed group reads
		// roughly the files it is about to show.
		for src := range ix.pending {
			sortPathsByFileID(ix.pending[src])
		}
		return ix, nil
	}

	for _, p := range taskPaths {
		ix.parsePath(ctx, p)
	}
	return ix, nil
}

// Config returns the resolved configuration for this load cycle.
func (ix *Index) Config() *models.Configuration {
	return ix.cfg
}

// Statuses returns the board's column vocabulary: configured statuses
// in configured order, then any status encountered in tasks but not
// configured, in first-seen order.
func (ix *Index) Statuses() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	out := make([]string, 0, len(ix.cfg.Statuses)+len(ix.extraStatuses))
	seen := make(map[string]bool)
	for _, status := range ix.cfg.Statuses {
		key := canonical(status)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ix.statusDisplay[key])
	}
	for _, key := range ix.extraStatuses {
		out = append(out, ix.statusDisplay[key])
	}
	return out
}

// Task returns the parsed task with the given id, or nil. Lazy
// builds only see tasks whose files have been parsed so far.
func (ix *Index) Task(id string) *models.Task {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.byID[id]
}

// StatusGroup returns the tasks bucketed under a status. Status
// grouping needs file contents, so in lazy mode this forces the
// remaining files to parse.
func (ix *Index) StatusGroup(ctx context.Context, status string) ([]*models.Task, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.ensureAllLocked(ctx); err != nil {
		return nil, err
	}
	group := ix.statusGroups[canonical(status)]
	out := make([]*models.Task, len(group))
	copy(out, group)
	return out, nil
}

// SourceGroup returns the parsed tasks of a source directory along
// with the group's total (parsed plus not yet parsed). In lazy mode
// it parses just enough files to cover upTo items; eager builds
// ignore upTo.
func (ix *Index) SourceGroup(ctx context.Context, src models.Source, upTo int) ([]*models.Task, int, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for len(ix.sourceGroups[src]) < upTo && len(ix.pending[src]) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		p := ix.pending[src][0]
		ix.pending[src] = ix.pending[src][1:]
		ix.parsePath(ctx, p)
	}

	group := ix.sourceGroups[src]
	total := len(group) + len(ix.pending[src])
	out := make([]*models.Task, len(group))
	copy(out, group)
	return out, total, nil
}

// AllTasks parses whatever is still pending and returns every task in
// the index. The exporter consumes this fully-loaded view.
func (ix *Index) AllTasks(ctx context.Context) ([]*models.Task, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.ensureAllLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]*models.Task, 0, len(ix.byID))
	for _, src := range []models.Source{models.SourceLocal, models.SourceCompleted, models.SourceRemote} {
		out = append(out, ix.sourceGroups[src]...)
	}
	return out, nil
}

// EnsureTasks resolves a batch of task ids, parsing their files on
// demand in lazy mode. Ids whose file no longer exists (or never
// parsed) are dropped from the result without error.
func (ix *Index) EnsureTasks(ctx context.Context, ids []string) ([]*models.Task, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	out := make([]*models.Task, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if t, ok := ix.byID[id]; ok {
			out = append(out, t)
			continue
		}
		if p, ok := ix.takePendingForID(id); ok {
			ix.parsePath(ctx, p)
			if t, ok := ix.byID[id]; ok {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// Replace swaps a task record wholesale, moving it between status
// buckets when the status changed. This is the one mutation the index
// supports; it exists for the optimistic mutation coordinator.
func (ix *Index) Replace(task *models.Task) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	old, ok := ix.byID[task.ID]
	if ok {
		oldKey := ix.bucketKey(old.Status)
		ix.statusGroups[oldKey] = removeTask(ix.statusGroups[oldKey], task.ID)
		ix.sourceGroups[old.Source] = removeTask(ix.sourceGroups[old.Source], task.ID)
	}
	ix.addLocked(task)
}

// ============================================================================
// INTERNALS
// ============================================================================

func canonical(status string) string {
	return strings.ToLower(status)
}

// bucketKey maps a task status to the bucket it lives in, applying
// the route-to-default caller policy for unmatched statuses.
func (ix *Index) bucketKey(status string) string {
	key := canonical(status)
	if !ix.configured[key] && ix.opts.RouteUnknownToDefault {
		return canonical(ix.cfg.DefaultStatus)
	}
	return key
}

// parsePath fetches and parses one task file. Failures are logged and
// the file is excluded; they never escalate to the whole index.
func (ix *Index) parsePath(ctx context.Context, p string) {
	content, err := ix.st.Fetch(ctx, p)
	if err != nil {
		ix.logger.Warn("skipping unreadable task file", "path", p, "error", err)
		return
	}
	task, err := taskfile.ParseTask(content, p)
	if err != nil {
		ix.logger.Warn("skipping malformed task file", "path", p, "error", err)
		return
	}
	if _, dup := ix.byID[task.ID]; dup {
		ix.logger.Warn("skipping task file with duplicate id", "path", p, "id", task.ID)
		return
	}
	ix.addLocked(task)
}

func (ix *Index) addLocked(task *models.Task) {
	ix.byID[task.ID] = task

	key := ix.bucketKey(task.Status)
	if _, known := ix.statusDisplay[key]; !known {
		// Fallback bucket: the task stays visible under its literal
		// status string, first-seen casing wins.
		ix.statusDisplay[key] = task.Status
		ix.extraStatuses = append(ix.extraStatuses, key)
	}
	ix.statusGroups[key] = append(ix.statusGroups[key], task)
	ix.sourceGroups[task.Source] = append(ix.sourceGroups[task.Source], task)
}

func (ix *Index) ensureAllLocked(ctx context.Context) error {
	for src, pendingPaths := range ix.pending {
		for _, p := range pendingPaths {
			if err := ctx.Err(); err != nil {
				return err
			}
			ix.parsePath(ctx, p)
		}
		ix.pending[src] = nil
	}
	return nil
}

func (ix *Index) takePendingForID(id string) (string, bool) {
	for src, pendingPaths := range ix.pending {
		for i, p := range pendingPaths {
			if models.PathMatchesID(p, id) {
				ix.pending[src] = append(pendingPaths[:i:i], pendingPaths[i+1:]...)
				return p, true
			}
		}
	}
	return "", false
}

func removeTask(group []*models.Task, id string) []*models.Task {
	for i, t := range group {
		if t.ID == id {
			return append(group[:i:i], group[i+1:]...)
		}
	}
	return group
}

// fileID extracts the id component of a conventional task filename,
// "task-12 - Title.md" -> "task-12".
func fileID(p string) string {
	base := strings.TrimSuffix(path.Base(p), ".md")
	if i := strings.Index(base, " - "); i >= 0 {
		return base[:i]
	}
	return base
}

// sortPathsByFileID orders candidate paths newest-id first so lazy
// page loads parse roughly the files they are about to show.
func sortPathsByFileID(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		a, aOK := models.TrailingID(fileID(paths[i]))
		b, bOK := models.TrailingID(fileID(paths[j]))
		if aOK && bOK && a != b {
			return a > b
		}
		return paths[i] > paths[j]
	})
}

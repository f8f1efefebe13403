// Package pagination serves bounded windows over index groups with
// "load more" semantics. A window is a slice of a freshly sorted view
// of the full group on every call, never an offset into a frozen
// array, so late-arriving tasks interleave by sort key instead of
// appending at the tail.
package pagination

import (
	"context"
	"errors"
	"sync"

	"github.com/tablerohq/tablero/internal/index"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/sorting"
)

// ErrLoadInProgress is returned when a LoadMore is issued for a group
// that already has one running. The flag is cooperative: checked
// before starting, cleared on completion or failure.
var ErrLoadInProgress = errors.New("load more already in progress for this group")

// DefaultPageSize is used when the engine is constructed with a
// non-positive page size.
const DefaultPageSize = 10

// Kind selects which index grouping a key addresses.
type Kind int

const (
	ByStatus Kind = iota
	BySource
)

// Key addresses one group: a status column or a source directory.
type Key struct {
	Kind Kind
	Name string
}

// StatusKey addresses a status column group.
func StatusKey(status string) Key {
	return Key{Kind: ByStatus, Name: status}
}

// SourceKey addresses a source directory group.
func SourceKey(src models.Source) Key {
	return Key{Kind: BySource, Name: string(src)}
}

// Result is one page of a group.
type Result struct {
	Items   []*models.Task
	Total   int  // size of the whole group, not just the loaded part
	HasMore bool // loaded-so-far < Total
}

// Engine tracks per-group load-more bookkeeping over one index
// snapshot. Offsets for LoadMore are derived from the loaded count,
// never supplied by callers, so one session sees no gaps and no
// duplicates.
type Engine struct {
	mu       sync.Mutex
	idx      *index.Index
	pageSize int
	groups   map[Key]*groupState
}

type groupState struct {
	loaded      int
	loadingMore bool
}

// NewEngine creates an engine over an index snapshot.
func NewEngine(idx *index.Index, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		idx:      idx,
		pageSize: pageSize,
		groups:   make(map[Key]*groupState),
	}
}

// Page returns the window [offset, offset+limit) of a group, sorted
// fresh. Sequential windows advance the group's loaded count so a
// later LoadMore continues where explicit paging stopped.
func (e *Engine) Page(ctx context.Context, key Key, offset, limit int) (*Result, error) {
	if limit <= 0 {
		limit = e.pageSize
	}

	group, total, err := e.fetchGroup(ctx, key, offset+limit)
	if err != nil {
		return nil, err
	}

	sorted := sorting.Sorted(group)
	if offset > len(sorted) {
		offset = len(sorted)
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	items := sorted[offset:end]

	e.mu.Lock()
	gs := e.state(key)
	if offset == gs.loaded {
		gs.loaded = offset + len(items)
	}
	loaded := gs.loaded
	e.mu.Unlock()

	return &Result{
		Items:   items,
		Total:   total,
		HasMore: loaded < total,
	}, nil
}

// LoadMore loads the next page of a group, with the offset derived
// from how much of the group is already loaded. Overlapping calls for
// the same group fail fast with ErrLoadInProgress.
func (e *Engine) LoadMore(ctx context.Context, key Key) (*Result, error) {
	e.mu.Lock()
	gs := e.state(key)
	if gs.loadingMore {
		e.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	gs.loadingMore = true
	offset := gs.loaded
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		gs.loadingMore = false
		e.mu.Unlock()
	}()

	return e.Page(ctx, key, offset, e.pageSize)
}

// Reset forgets a group's loaded count, so the next LoadMore starts
// from offset 0. This is the only way an item that newly sorts ahead
// of an already-loaded window becomes visible in that window.
func (e *Engine) Reset(key Key) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.groups, key)
}

// Loaded reports how many items of a group have been handed out.
func (e *Engine) Loaded(key Key) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state(key).loaded
}

func (e *Engine) state(key Key) *groupState {
	gs, ok := e.groups[key]
	if !ok {
		gs = &groupState{}
		e.groups[key] = gs
	}
	return gs
}

func (e *Engine) fetchGroup(ctx context.Context, key Key, upTo int) ([]*models.Task, int, error) {
	switch key.Kind {
	case BySource:
		return e.idx.SourceGroup(ctx, models.Source(key.Name), upTo)
	default:
		group, err := e.idx.StatusGroup(ctx, key.Name)
		if err != nil {
			return nil, 0, err
		}
		return group, len(group), nil
	}
}

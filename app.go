package main

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrSearchPending = errors.New("a search is already in progress")
	ErrStackPending  = errors.New("a stack is already being generated")
)

// App owns the session state: the catalog, the filter selection, the sources
// of the last search and the last generated stack. All mutation goes through
// its methods.
type App struct {
	mu        sync.Mutex
	catalog   *Catalog
	selection Selection
	sources   []Source
	stack     *GeneratedStack

	// pending flags; a set flag disables the matching trigger
	searching  atomic.Bool
	generating atomic.Bool

	searcher Searcher
	stacker  StackGenerator
	recorder SearchRecorder
	indexer  CatalogIndexer
	metrics  *Metrics
	log      *zap.Logger
	now      func() time.Time
}

// Option configures optional collaborators of an App.
type Option func(*App)

// WithRecorder logs every completed search to r.
func WithRecorder(r SearchRecorder) Option { return func(a *App) { a.recorder = r } }

// WithIndexer mirrors records added by a search into ix.
func WithIndexer(ix CatalogIndexer) Option { return func(a *App) { a.indexer = ix } }

// WithMetrics reports catalog size and merges to m.
func WithMetrics(m *Metrics) Option { return func(a *App) { a.metrics = m } }

// NewApp returns an App holding the seed catalog and an empty selection.
// A nil log discards output.
func NewApp(searcher Searcher, stacker StackGenerator, log *zap.Logger, opts ...Option) *App {
	a := &App{
		catalog:  NewCatalog(),
		searcher: searcher,
		stacker:  stacker,
		log:      log,
		now:      time.Now,
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	for _, opt := range opts {
		opt(a)
	}
	a.metrics.observeCatalog(a.catalog.Records(), 0)
	return a
}

// View is a consistent snapshot of the session for rendering
type View struct {
	Selection  Selection       `json:"selection"`
	Visible    []Supplement    `json:"supplements"`
	Effects    []string        `json:"effects"`
	Sources    []Source        `json:"sources"`
	Stack      *GeneratedStack `json:"stack,omitempty"`
	Total      int             `json:"total"`
	Searching  bool            `json:"searching"`
	Generating bool            `json:"generating"`
}

// View returns the current snapshot.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewLocked()
}

func (a *App) viewLocked() View {
	records := a.catalog.Records()
	v := View{
		Selection:  a.selection,
		Visible:    Filter(records, a.selection),
		Effects:    DistinctEffects(records),
		Sources:    append([]Source{}, a.sources...),
		Total:      len(records),
		Searching:  a.searching.Load(),
		Generating: a.generating.Load(),
	}
	if a.stack != nil {
		st := *a.stack
		st.Items = append([]StackItem(nil), a.stack.Items...)
		v.Stack = &st
	}
	return v
}

// Select replaces the filter selection and returns the resulting view.
func (a *App) Select(sel Selection) View {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selection = sel
	return a.viewLocked()
}

// ResetFilters clears the selection. Catalog, sources and stack are kept.
func (a *App) ResetFilters() View {
	return a.Select(Selection{})
}

// Reset clears the selection, sources and stack and restores the seed catalog.
func (a *App) Reset() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selection = Selection{}
	a.sources = nil
	a.stack = nil
	a.catalog.Reset()
	a.metrics.observeCatalog(a.catalog.Records(), 0)
	return a.viewLocked()
}

// Search runs a grounded AI search and merges the new records into the
// catalog. An empty query falls back to the selection's query; if that is
// blank too nothing happens. The call is not cancelled by ctx: once started
// it runs to completion and its result is applied.
func (a *App) Search(ctx context.Context, query string) ([]Supplement, error) {
	target := strings.TrimSpace(query)
	if target == "" {
		a.mu.Lock()
		target = strings.TrimSpace(a.selection.Query)
		a.mu.Unlock()
	}
	if target == "" {
		return nil, nil
	}
	if !a.searching.CompareAndSwap(false, true) {
		return nil, ErrSearchPending
	}
	defer a.searching.Store(false)

	a.mu.Lock()
	a.sources = nil
	a.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	started := a.now()
	res := a.searcher.SearchByQuery(ctx, target)

	a.mu.Lock()
	a.sources = append([]Source{}, res.Sources...)
	added := a.catalog.Merge(res.Supplements)
	records := a.catalog.Records()
	a.mu.Unlock()

	a.metrics.observeCatalog(records, len(added))
	a.log.Info("AI search merged",
		zap.String("query", target),
		zap.Int("candidates", len(res.Supplements)),
		zap.Int("added", len(added)),
		zap.Int("sources", len(res.Sources)),
		zap.Duration("took", a.now().Sub(started)),
	)

	if a.indexer != nil && len(added) > 0 {
		if err := a.indexer.IndexSupplements(ctx, added); err != nil {
			a.log.Warn("failed to mirror new records", zap.Error(err))
		}
	}
	if a.recorder != nil {
		ev := SearchEvent{
			Query:       target,
			ResultCount: len(res.Supplements),
			AddedCount:  len(added),
			SourceCount: len(res.Sources),
			At:          started,
		}
		if err := a.recorder.RecordSearch(ctx, ev); err != nil {
			a.log.Warn("failed to record search", zap.Error(err))
		}
	}
	return added, nil
}

// GenerateStack asks for a protocol for goal and, on success, replaces the
// held stack. On failure the previous stack stays as it was and the
// *GenerationError is returned for the caller to surface.
func (a *App) GenerateStack(ctx context.Context, goal string) (*GeneratedStack, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, nil
	}
	if !a.generating.CompareAndSwap(false, true) {
		return nil, ErrStackPending
	}
	defer a.generating.Store(false)

	stack, err := a.stacker.GenerateStack(context.WithoutCancel(ctx), goal)
	if err != nil {
		a.log.Warn("stack generation failed", zap.String("goal", goal), zap.Error(err))
		return nil, err
	}
	if stack == nil {
		return nil, nil
	}

	a.mu.Lock()
	held := *stack
	held.Items = append([]StackItem(nil), stack.Items...)
	a.stack = &held
	a.mu.Unlock()

	a.log.Info("stack generated", zap.String("goal", goal), zap.String("title", stack.Title), zap.Int("items", len(stack.Items)))
	return stack, nil
}

// Supplements returns the whole catalog in order.
func (a *App) Supplements() []Supplement {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Records()
}

// PopularSearches reports the most frequent searches, or nil without a
// search log.
func (a *App) PopularSearches(ctx context.Context, limit int) ([]PopularSearch, error) {
	if a.recorder == nil {
		return nil, nil
	}
	return a.recorder.PopularSearches(ctx, limit)
}

package golistview

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// RenderContext carries the geometry of the cell being rendered.
type RenderContext struct {
	// ColumnWidth is the width available to the cell.
	ColumnWidth float64
	// Column is the index of the masonry column the cell lands in.
	Column int
	// Row is the cell's position within its column.
	Row int
}

// ItemRenderer produces the host framework's renderable for one item.
// R is whatever the host renders: a widget, a view-model, a string.
type ItemRenderer[T any, R any] func(rctx RenderContext, item T, index int) R

// Placeholders supplies the optional chrome cells. Any producer left nil falls
// back to the zero value of R; the snapshot's Kind still tells the host which
// placeholder situation it is in, so a host can substitute its own chrome
// without configuring producers at all.
type Placeholders[R any] struct {
	// Empty renders when the list loaded successfully but has no items.
	Empty func() R
	// Loading renders while no data is available yet.
	Loading func() R
	// Error renders the failure state.
	Error func(err error) R
	// LoadMore renders below the columns while a follow-up fetch is outstanding.
	LoadMore func() R
}

// ViewConfig is the construction-time configuration of a ListView,
// validated once by NewListView.
type ViewConfig struct {
	// ColumnCount is the number of masonry columns. Must be > 0.
	ColumnCount int
	// MainAxisSpacing is the vertical gap between cells in a column. Must be >= 0.
	MainAxisSpacing float64
	// CrossAxisSpacing is the horizontal gap between columns. Must be >= 0.
	CrossAxisSpacing float64
	// PullToRefreshEnabled gates the Refresh pass-through.
	PullToRefreshEnabled bool
}

// DefaultViewConfig returns a two-column config with no spacing and
// pull-to-refresh enabled.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		ColumnCount:          2,
		PullToRefreshEnabled: true,
	}
}

// Validate checks the config invariants.
func (c ViewConfig) Validate() error {
	if c.ColumnCount <= 0 {
		return fmt.Errorf("column count must be positive, got %d", c.ColumnCount)
	}

	if c.MainAxisSpacing < 0 {
		return fmt.Errorf("main axis spacing must be non-negative, got %v", c.MainAxisSpacing)
	}

	if c.CrossAxisSpacing < 0 {
		return fmt.Errorf("cross axis spacing must be non-negative, got %v", c.CrossAxisSpacing)
	}

	return nil
}

// Snapshot is one rendered frame of the list: either masonry columns of cells
// or a single placeholder, depending on Kind.
type Snapshot[R any] struct {
	// Kind is the paging state the snapshot was assembled from.
	Kind StateKind
	// ColumnWidth is the computed width of each column. Zero outside Data.
	ColumnWidth float64
	// Columns holds the rendered cells in round-robin masonry order.
	// Nil outside Data and for an empty Data state.
	Columns [][]R
	// Placeholder is the chrome cell for the Loading, Error and empty-Data
	// situations; meaningful only when HasPlaceholder is true.
	Placeholder    R
	HasPlaceholder bool
	// LoadMore is the affordance rendered below the columns; meaningful only
	// when ShowLoadMore is true, which holds exactly while a follow-up fetch
	// is outstanding.
	LoadMore     R
	ShowLoadMore bool
	// Err carries the failure cause when Kind is KindError.
	Err error
}

// ListView hosts a Controller behind a rendering boundary: it owns no paging
// logic of its own, translating the current PagingState into renderables via
// the caller-supplied ItemRenderer and Placeholders.
//
// Scroll detection, gesture handling and the event loop remain with the host;
// the view only exposes the operations the host wires them to.
type ListView[T any, R any] struct {
	ctrl         *Controller[T]
	render       ItemRenderer[T, R]
	placeholders Placeholders[R]
	cfg          ViewConfig
}

// NewListView validates cfg and builds a view over ctrl.
func NewListView[T any, R any](ctrl *Controller[T], renderer ItemRenderer[T, R], cfg ViewConfig) (*ListView[T, R], error) {
	if ctrl == nil {
		return nil, fmt.Errorf("controller is nil")
	}

	if renderer == nil {
		return nil, fmt.Errorf("item renderer is nil")
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid view config: %w", err)
	}

	return &ListView[T, R]{
		ctrl:   ctrl,
		render: renderer,
		cfg:    cfg,
	}, nil
}

// WithPlaceholders installs the optional chrome producers.
func (v *ListView[T, R]) WithPlaceholders(placeholders Placeholders[R]) *ListView[T, R] {
	v.placeholders = placeholders

	return v
}

// Config returns the view configuration.
func (v *ListView[T, R]) Config() ViewConfig {
	return v.cfg
}

// Load performs the initial page fetch. Hosts call it once after construction;
// the state observed before the fetch resolves is Loading.
func (v *ListView[T, R]) Load(ctx context.Context) error {
	return v.ctrl.LoadMore(ctx)
}

// Refresh discards the current items and refetches the first page. Returns
// ErrPullToRefreshDisabled when the view was configured without
// pull-to-refresh.
func (v *ListView[T, R]) Refresh(ctx context.Context) error {
	if !v.cfg.PullToRefreshEnabled {
		return ErrPullToRefreshDisabled
	}

	return v.ctrl.Refresh(ctx)
}

// Retry re-enters the load path after a failure.
func (v *ListView[T, R]) Retry(ctx context.Context) error {
	return v.ctrl.Retry(ctx)
}

// NotifyScrollReachedEnd forwards the host's end-of-scroll signal.
func (v *ListView[T, R]) NotifyScrollReachedEnd(ctx context.Context) {
	v.ctrl.NotifyScrollReachedEnd(ctx)
}

// Subscribe registers fn for state transitions, returning a cancel function.
func (v *ListView[T, R]) Subscribe(fn func(PagingState[T])) (cancel func()) {
	return v.ctrl.Subscribe(fn)
}

// Snapshot assembles the current paging state into one rendered frame for the
// given total width. It is pure with respect to the view: the same state and
// width produce the same snapshot.
func (v *ListView[T, R]) Snapshot(totalWidth float64) Snapshot[R] {
	state := v.ctrl.State()

	var snap Snapshot[R]
	state.Match(
		func() {
			snap = v.placeholderSnapshot(KindLoading, v.placeholders.Loading, nil)
		},
		func(items []T, loadingMore bool, _ bool) {
			snap = v.dataSnapshot(items, loadingMore, totalWidth)
		},
		func(cause error) {
			snap = v.placeholderSnapshot(KindError, nil, cause)
		},
	)

	return snap
}

func (v *ListView[T, R]) dataSnapshot(items []T, loadingMore bool, totalWidth float64) Snapshot[R] {
	if len(items) == 0 {
		return v.placeholderSnapshot(KindData, v.placeholders.Empty, nil)
	}

	columnWidth := ColumnWidth(totalWidth, v.cfg.ColumnCount, v.cfg.CrossAxisSpacing)

	cells := lo.Map(items, func(item T, i int) R {
		return v.render(RenderContext{
			ColumnWidth: columnWidth,
			Column:      i % v.cfg.ColumnCount,
			Row:         i / v.cfg.ColumnCount,
		}, item, i)
	})

	snap := Snapshot[R]{
		Kind:        KindData,
		ColumnWidth: columnWidth,
		Columns:     DistributeItems(cells, v.cfg.ColumnCount),
	}

	if loadingMore {
		snap.ShowLoadMore = true
		if v.placeholders.LoadMore != nil {
			snap.LoadMore = v.placeholders.LoadMore()
		}
	}

	return snap
}

func (v *ListView[T, R]) placeholderSnapshot(kind StateKind, produce func() R, cause error) Snapshot[R] {
	snap := Snapshot[R]{
		Kind:           kind,
		HasPlaceholder: true,
		Err:            cause,
	}

	switch {
	case kind == KindError && v.placeholders.Error != nil:
		snap.Placeholder = v.placeholders.Error(cause)
	case produce != nil:
		snap.Placeholder = produce()
	}

	return snap
}

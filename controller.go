package golistview

import (
	"context"
	"sync"
	"time"
)

// Controller owns the paging state for one list and drives fetches through an
// injected DataSource. It serializes non-refresh fetches with a one-slot gate,
// converts every fetch failure into the Error state and notifies subscribers
// exactly once per state transition.
//
// All methods are safe for concurrent use. Fetches run on the calling
// goroutine: LoadPage is the suspension point, so hosts that must not block
// dispatch the operations themselves (NotifyScrollReachedEnd already does).
type Controller[T any] struct {
	source DataSource[T]
	hook   Hook

	mu        sync.Mutex
	state     PagingState[T]
	gate      fetchGate
	closed    bool
	subs      map[int]func(PagingState[T])
	nextSubID int
}

// NewController creates a controller around source in the Loading state.
// No fetch is issued until the first Load/LoadMore call.
func NewController[T any](source DataSource[T]) (*Controller[T], error) {
	if source == nil {
		return nil, ErrNilSource
	}

	return &Controller[T]{
		source: source,
		hook:   NopHook{},
		state:  LoadingState[T](),
	}, nil
}

// WithHook installs the observability sink. A nil hook restores the default
// NopHook. Install before the first operation: the hook field is not guarded
// against concurrent replacement.
func (c *Controller[T]) WithHook(hook Hook) *Controller[T] {
	if hook == nil {
		hook = NopHook{}
	}

	c.hook = hook

	return c
}

// State returns the current paging state snapshot.
func (c *Controller[T]) State() PagingState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Subscribe registers fn to be called with a state snapshot after every
// transition. It returns a cancel function that unregisters fn. Callbacks run
// outside the controller lock on the goroutine that performed the transition,
// so calling back into the controller from fn is allowed.
func (c *Controller[T]) Subscribe(fn func(PagingState[T])) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subs == nil {
		c.subs = make(map[int]func(PagingState[T]))
	}

	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.subs, id)
	}
}

// Close tears the controller down. Operations dispatched afterwards return
// ErrClosed. In-flight fetches are not cancelled, but their completions are
// dropped: a late LoadPage result neither mutates state nor notifies anyone.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.subs = nil
}

// Refresh fetches the first page again and replaces the state with the result,
// discarding any accumulated items. It may be called at any time: a fresh
// refresh always supersedes whatever is on screen.
//
// IMPORTANT:
// Refresh deliberately bypasses the in-flight gate. A refresh issued while a
// load-more fetch is outstanding starts a second fetch, and whichever
// completion arrives last determines the final state; there is no staleness
// check. Hosts that need strict ordering must not overlap the two.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	c.fetchReplace(ctx, true)

	return nil
}

// Retry re-enters the non-refresh load path. It is intended for leaving the
// Error state but is an exact alias of LoadMore, so it behaves sensibly from
// any state.
func (c *Controller[T]) Retry(ctx context.Context) error {
	return c.LoadMore(ctx)
}

// LoadMore advances the list by one page, dispatching on the current state:
//
//   - a load-more already in flight: the call is dropped silently;
//   - Loading: fetches the first page;
//   - Error: re-enters Loading (clearing the error), then fetches the first page;
//   - Data: fetches the next page and appends it. An empty page marks the end
//     of the list regardless of what the source reports.
//
// A fetch failure transitions to the Error state. In the Data case this drops
// the items already accumulated, since the Error variant carries the cause only.
// That mirrors the original presentation behavior and is arguably a usability
// defect; hosts that want to keep stale items on screen must retain the last
// Data snapshot themselves.
//
// The returned error is non-nil only when the controller is closed; fetch
// failures surface through the state notification, never through this call.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if !c.gate.TryAcquire() {
		c.mu.Unlock()
		c.hook.LoadMoreDropped()
		return nil
	}

	st := c.state
	c.mu.Unlock()

	defer c.releaseGate()

	switch st.Kind() {
	case KindLoading:
		c.fetchReplace(ctx, false)
	case KindError:
		// The error is cleared only once the next fetch begins: re-enter
		// Loading first, then load as if from a clean slate.
		if !c.apply(LoadingState[T]()) {
			return ErrClosed
		}
		c.fetchReplace(ctx, false)
	case KindData:
		// Mark the loading-more affordance if the scroll path has not already.
		if !st.IsLoadingMore() {
			if !c.apply(st.withLoadingMore(true)) {
				return ErrClosed
			}
		}
		c.fetchAppend(ctx, st.Items())
	}

	return nil
}

// NotifyScrollReachedEnd is the entry point for the host's scroll detector.
// It is a no-op unless the state is Data with more pages expected and no fetch
// in flight. Otherwise it synchronously flips IsLoadingMore so the affordance
// renders immediately, then dispatches LoadMore on a new goroutine.
func (c *Controller[T]) NotifyScrollReachedEnd(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	st := c.state
	if !st.IsData() || st.IsEndList() || st.IsLoadingMore() || c.gate.Held() {
		c.mu.Unlock()
		return
	}

	next := st.withLoadingMore(true)
	c.state = next
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.hook.StateChanged(KindData, KindData)
	for _, fn := range subs {
		fn(next)
	}

	go func() {
		_ = c.LoadMore(ctx)
	}()
}

// fetchReplace performs a fetch whose success replaces the state wholesale:
// the initial load, a retry after an error, and every refresh.
func (c *Controller[T]) fetchReplace(ctx context.Context, refresh bool) {
	info := newFetchInfo(refresh)
	c.hook.FetchStarted(info)

	start := time.Now()
	items, err := c.source.LoadPage(ctx, refresh)
	elapsed := time.Since(start)

	if err != nil {
		c.hook.FetchFailed(info, err, elapsed)
		c.apply(ErrorState[T](&FetchError{Refresh: refresh, Err: err}))
		return
	}

	endList := c.source.IsEndList()
	c.hook.FetchSucceeded(info, len(items), endList, elapsed)
	c.apply(DataState(items, false, endList))
}

// fetchAppend performs a load-more fetch, appending the page to the items
// captured when the fetch was dispatched. Capturing at dispatch time means a
// refresh that completes mid-fetch is overwritten by this completion. That is
// the documented last-writer-wins behavior of the unguarded refresh path.
func (c *Controller[T]) fetchAppend(ctx context.Context, current []T) {
	info := newFetchInfo(false)
	c.hook.FetchStarted(info)

	start := time.Now()
	page, err := c.source.LoadPage(ctx, false)
	elapsed := time.Since(start)

	if err != nil {
		c.hook.FetchFailed(info, err, elapsed)
		c.apply(ErrorState[T](&FetchError{Err: err}))
		return
	}

	if len(page) == 0 {
		// An empty page is the end of the list even if the source disagrees.
		c.hook.FetchSucceeded(info, 0, true, elapsed)
		c.apply(DataState(current, false, true))
		return
	}

	endList := c.source.IsEndList()
	c.hook.FetchSucceeded(info, len(page), endList, elapsed)

	merged := make([]T, 0, len(current)+len(page))
	merged = append(merged, current...)
	merged = append(merged, page...)
	c.apply(DataState(merged, false, endList))
}

// apply installs next as the current state and notifies subscribers, unless the
// controller has been closed; a dropped late completion returns false.
func (c *Controller[T]) apply(next PagingState[T]) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}

	from := c.state.Kind()
	c.state = next
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.hook.StateChanged(from, next.Kind())
	for _, fn := range subs {
		fn(next)
	}

	return true
}

func (c *Controller[T]) subscribersLocked() []func(PagingState[T]) {
	if len(c.subs) == 0 {
		return nil
	}

	ret := make([]func(PagingState[T]), 0, len(c.subs))
	for _, fn := range c.subs {
		ret = append(ret, fn)
	}

	return ret
}

func (c *Controller[T]) releaseGate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gate.Release()
}

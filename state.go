package golistview

import "fmt"

// StateKind discriminates the PagingState variants.
type StateKind uint8

const (
	// KindLoading - no data available yet; left only through the first completed
	// fetch or re-entered via retry after an error.
	KindLoading StateKind = iota
	// KindData - at least one page has been received.
	KindData
	// KindError - the most recent fetch failed; holds the failure cause only.
	KindError
)

// String - implements fmt.Stringer.
func (k StateKind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindData:
		return "data"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// PagingState is a tagged union over the three list presentation states:
// Loading, Data and Error. The zero value is the Loading state.
//
// The fields are private so that a combination the state machine cannot reach
// (e.g. an Error state carrying items) is also impossible to construct.
// Use LoadingState, DataState and ErrorState to build values and Match or the
// Kind/accessor pairs to consume them.
type PagingState[T any] struct {
	kind        StateKind
	items       []T
	loadingMore bool
	endList     bool
	cause       error
}

// LoadingState returns the Loading variant.
func LoadingState[T any]() PagingState[T] {
	return PagingState[T]{kind: KindLoading}
}

// DataState returns the Data variant. Items keep their insertion order;
// duplicates across pages are permitted and preserved.
func DataState[T any](items []T, loadingMore bool, endList bool) PagingState[T] {
	return PagingState[T]{
		kind:        KindData,
		items:       items,
		loadingMore: loadingMore,
		endList:     endList,
	}
}

// ErrorState returns the Error variant. Previously accumulated items are not
// retained: the variant carries the failure cause only.
func ErrorState[T any](cause error) PagingState[T] {
	return PagingState[T]{kind: KindError, cause: cause}
}

// Kind returns the discriminator of the state.
func (s PagingState[T]) Kind() StateKind {
	return s.kind
}

// IsLoading returns true for the Loading variant.
func (s PagingState[T]) IsLoading() bool {
	return s.kind == KindLoading
}

// IsData returns true for the Data variant.
func (s PagingState[T]) IsData() bool {
	return s.kind == KindData
}

// IsError returns true for the Error variant.
func (s PagingState[T]) IsError() bool {
	return s.kind == KindError
}

// Items returns the accumulated items. Nil unless the state is Data.
//
// IMPORTANT:
// The returned slice is shared with the state value. Callers must not mutate it.
func (s PagingState[T]) Items() []T {
	if s.kind != KindData {
		return nil
	}

	return s.items
}

// IsLoadingMore reports whether a follow-up page fetch is outstanding for the
// current Data items. Always false outside the Data variant.
func (s PagingState[T]) IsLoadingMore() bool {
	return s.kind == KindData && s.loadingMore
}

// IsEndList reports whether the data source has signalled that no further pages
// exist. Always false outside the Data variant.
func (s PagingState[T]) IsEndList() bool {
	return s.kind == KindData && s.endList
}

// Cause returns the failure that produced the Error variant, nil otherwise.
func (s PagingState[T]) Cause() error {
	if s.kind != KindError {
		return nil
	}

	return s.cause
}

// Match dispatches exhaustively on the state variant. All three callbacks are
// mandatory; passing nil for the branch the state happens to be in panics.
func (s PagingState[T]) Match(
	onLoading func(),
	onData func(items []T, loadingMore bool, endList bool),
	onError func(cause error),
) {
	switch s.kind {
	case KindLoading:
		onLoading()
	case KindData:
		onData(s.items, s.loadingMore, s.endList)
	case KindError:
		onError(s.cause)
	default:
		panic(fmt.Errorf("cannot match paging state kind '%s'", s.kind))
	}
}

// withLoadingMore returns a copy of a Data state with the loading-more flag
// replaced. Falls through unchanged for other variants.
func (s PagingState[T]) withLoadingMore(loadingMore bool) PagingState[T] {
	if s.kind != KindData {
		return s
	}

	s.loadingMore = loadingMore

	return s
}

var _ fmt.Stringer = StateKind(0)

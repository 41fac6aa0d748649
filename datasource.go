package golistview

import (
	"context"
	"fmt"
)

// DataSource supplies pages of items to a Controller. Implementations keep
// their own position within the dataset: a call with refresh=true rewinds to
// the beginning, a call with refresh=false returns the next unread page.
//
// The controller consumes a caller-supplied instance and does not manage its
// lifecycle. IsEndList must reflect exhaustion as of the most recent completed
// LoadPage call; the controller treats it as read-only.
type DataSource[T any] interface {
	// LoadPage fetches one page. May fail with any error value; the controller
	// routes failures to the Error state without classifying them.
	LoadPage(ctx context.Context, refresh bool) ([]T, error)

	// IsEndList reports whether the dataset is exhausted.
	IsEndList() bool
}

// PageFunc adapts a plain function into a DataSource. The function returns the
// page items together with the post-fetch exhaustion flag.
//
// Usage:
//
//	src := golistview.NewFuncSource(func(ctx context.Context, refresh bool) ([]News, bool, error) {
//	    page, last, err := api.FetchNews(ctx, refresh)
//	    return page, last, err
//	})
type PageFunc[T any] func(ctx context.Context, refresh bool) (items []T, endList bool, err error)

// FuncSource wraps a PageFunc, remembering the exhaustion flag reported by the
// latest successful call.
type FuncSource[T any] struct {
	fn      PageFunc[T]
	endList bool
}

// NewFuncSource wraps fn into a DataSource.
func NewFuncSource[T any](fn PageFunc[T]) *FuncSource[T] {
	return &FuncSource[T]{fn: fn}
}

// LoadPage - implements DataSource.
func (s *FuncSource[T]) LoadPage(ctx context.Context, refresh bool) ([]T, error) {
	if s.fn == nil {
		return nil, fmt.Errorf("cannot load page: func source has no page function")
	}

	items, endList, err := s.fn(ctx, refresh)
	if err != nil {
		return nil, err
	}

	s.endList = endList

	return items, nil
}

// IsEndList - implements DataSource.
func (s *FuncSource[T]) IsEndList() bool {
	return s.endList
}

var _ DataSource[any] = (*FuncSource[any])(nil)

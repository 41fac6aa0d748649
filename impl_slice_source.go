package golistview

import "context"

// SliceSource serves pages out of an in-memory slice. It is the simplest
// DataSource implementation: handy in tests, previews and anywhere the full
// dataset is already on hand but the host still wants incremental rendering.
//
// The source keeps a read position inside the slice; refresh rewinds it to the
// beginning. It is not safe for concurrent use by multiple controllers.
type SliceSource[T any] struct {
	items    []T
	pageSize int
	pos      int
	endList  bool
}

// NewSliceSource wraps items into a paged source with DefaultPageSize.
// The slice is not copied; the caller must not mutate it while paging.
func NewSliceSource[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{
		items:    items,
		pageSize: DefaultPageSize,
	}
}

// WithPageSize sets the page size, normalized via NormalizePageSize.
func (s *SliceSource[T]) WithPageSize(pageSize int) *SliceSource[T] {
	if s == nil {
		s = new(SliceSource[T])
	}

	s.pageSize = NormalizePageSize(pageSize)

	return s
}

// LoadPage - implements DataSource.
func (s *SliceSource[T]) LoadPage(ctx context.Context, refresh bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if refresh {
		s.pos = 0
		s.endList = false
	}

	end := s.pos + s.pageSize
	if end >= len(s.items) {
		end = len(s.items)
	}

	page := s.items[s.pos:end]
	s.pos = end
	s.endList = s.pos >= len(s.items)

	return page, nil
}

// IsEndList - implements DataSource.
func (s *SliceSource[T]) IsEndList() bool {
	return s.endList
}

var _ DataSource[any] = (*SliceSource[any])(nil)

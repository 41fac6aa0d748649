package golistview

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// GORMSource pages a database table through a gorm query. Two strategies are
// supported, chosen by configuration:
//
//   - keyset: provide Getters via WithGetters. The source remembers the
//     boundary after each page and the next page selects rows strictly past
//     it. Stable under concurrent inserts, preferred for large tables.
//   - offset: omit WithGetters. The source advances a plain OFFSET. Simpler,
//     but rows inserted before the read position shift subsequent pages.
//
// Either way the source fetches one row beyond the page size; the extra row
// decides whether the page is the last one and is never returned.
//
// The query handle passed to NewGORMSource carries the model and any filters:
//
//	src := golistview.NewGORMSource[User](db.Model(&User{}).Where("age >= ?", 18)).
//		WithPageSize(20).
//		WithSort(golistview.OrderBy{Column: "id", Direction: golistview.DirectionASC}).
//		WithGetters(golistview.Getters[User]{"id": func(u User) any { return u.ID }})
type GORMSource[T any] struct {
	db       *gorm.DB
	pageSize int
	sort     Orderings
	getters  Getters[T]

	boundary Boundary
	offset   int
	endList  bool
}

// NewGORMSource creates a source over db with DefaultPageSize. Configure sort
// (mandatory) and getters (optional, enables keyset paging) before the first
// LoadPage call.
func NewGORMSource[T any](db *gorm.DB) *GORMSource[T] {
	return &GORMSource[T]{
		db:       db,
		pageSize: DefaultPageSize,
	}
}

// WithPageSize sets the page size, normalized via NormalizePageSize.
func (s *GORMSource[T]) WithPageSize(pageSize int) *GORMSource[T] {
	if s == nil {
		s = new(GORMSource[T])
	}

	s.pageSize = NormalizePageSize(pageSize)

	return s
}

// WithSort appends sort orderings without overwriting existing ones.
// A repeated column replaces its previous occurrence and moves to the end.
func (s *GORMSource[T]) WithSort(orderBy ...OrderBy) *GORMSource[T] {
	if s == nil {
		s = new(GORMSource[T])
	}

	for _, o := range orderBy {
		idx := slices.IndexFunc(s.sort, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			s.sort = slices.Delete(s.sort, idx, idx+1)
		}

		s.sort = append(s.sort, o)
	}

	return s
}

// WithGetters provides the per-column value extractors and switches the source
// to keyset paging. Every ordering column must have a getter.
//
// IMPORTANT:
// Keyset paging is only unambiguous when the ordering covers at least one
// unique column.
func (s *GORMSource[T]) WithGetters(getters Getters[T]) *GORMSource[T] {
	if s == nil {
		s = new(GORMSource[T])
	}

	s.getters = getters

	return s
}

// GetSort returns the orderings that will be applied to the dataset.
func (s *GORMSource[T]) GetSort() Orderings {
	if s == nil {
		return nil
	}

	return s.sort
}

// GetPageSize returns the normalized page size.
func (s *GORMSource[T]) GetPageSize() int {
	if s == nil {
		return 0
	}

	return s.pageSize
}

// LoadPage - implements DataSource. A refresh rewinds to the beginning of the
// dataset; otherwise the page following the previous one is returned.
func (s *GORMSource[T]) LoadPage(ctx context.Context, refresh bool) ([]T, error) {
	err := s.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot load page: %w", err)
	}

	if refresh {
		s.boundary = nil
		s.offset = 0
		s.endList = false
	}

	query := s.sort.Apply(s.db.WithContext(ctx))
	if s.keyset() {
		query = s.boundary.Apply(query)
	} else {
		query = query.Offset(s.offset)
	}

	// Fetch one extra row to determine if there is a next page.
	var rows []T
	err = query.Limit(s.pageSize + 1).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("cannot load page: %w", err)
	}

	s.endList = len(rows) <= s.pageSize
	if !s.endList {
		rows = rows[:s.pageSize]
	}

	if len(rows) > 0 {
		if s.keyset() {
			s.boundary, err = boundaryAfter(rows[len(rows)-1], s.sort, s.getters)
			if err != nil {
				return nil, fmt.Errorf("cannot advance keyset boundary: %w", err)
			}
		} else {
			s.offset += len(rows)
		}
	}

	return rows, nil
}

// IsEndList - implements DataSource.
func (s *GORMSource[T]) IsEndList() bool {
	return s.endList
}

func (s *GORMSource[T]) keyset() bool {
	return s.getters != nil
}

func (s *GORMSource[T]) validate() error {
	if s.db == nil {
		return fmt.Errorf("gorm source has no database handle")
	}

	err := s.sort.validate()
	if err != nil {
		return err
	}

	if s.keyset() {
		for _, orderBy := range s.sort {
			if _, ok := s.getters[orderBy.Column]; !ok {
				return fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
			}
		}
	}

	return nil
}

var _ DataSource[any] = (*GORMSource[any])(nil)

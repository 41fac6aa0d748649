package golistview

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_GORMSource_validate(t *testing.T) {
	db := &gorm.DB{}

	tests := []struct {
		name string
		src  *GORMSource[tUser]
		ok   bool
	}{
		{
			name: "no database handle",
			src: NewGORMSource[tUser](nil).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC}),
			ok: false,
		},
		{
			name: "no sort",
			src:  NewGORMSource[tUser](db),
			ok:   false,
		},
		{
			name: "invalid direction",
			src: NewGORMSource[tUser](db).
				WithSort(OrderBy{Column: "id", Direction: "sideways"}),
			ok: false,
		},
		{
			name: "missing getter for ordering column",
			src: NewGORMSource[tUser](db).
				WithSort(
					OrderBy{Column: "id", Direction: DirectionASC},
					OrderBy{Column: "name", Direction: DirectionASC},
				).
				WithGetters(Getters[tUser]{"id": func(u tUser) any { return u.ID }}),
			ok: false,
		},
		{
			name: "offset strategy needs no getters",
			src: NewGORMSource[tUser](db).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC}),
			ok: true,
		},
		{
			name: "keyset strategy with full getters",
			src: NewGORMSource[tUser](db).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC}).
				WithGetters(Getters[tUser]{"id": func(u tUser) any { return u.ID }}),
			ok: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.src.validate(); (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
			}
		})
	}
}

func Test_GORMSource_WithSort_dedup(t *testing.T) {
	src := NewGORMSource[tUser](nil).
		WithSort(OrderBy{Column: "id", Direction: DirectionASC}).
		WithSort(
			OrderBy{Column: "id", Direction: DirectionDESC},
			OrderBy{Column: "created_at", Direction: DirectionASC},
		)

	require.Equal(
		t,
		Orderings([]OrderBy{
			{Column: "id", Direction: DirectionDESC},
			{Column: "created_at", Direction: DirectionASC},
		}),
		src.GetSort(),
	)
}

func Test_GORMSource_LoadPage_offset(t *testing.T) {
	sqlMockFnList := []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
		newGORMMySQLMock,
		newGORMPostgresMock,
	}

	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			if err != nil {
				t.Fatalf("gorm open: %v", err)
			}

			src := NewGORMSource[tUser](db.Select("*").Table("users").Where("name = 'lol'")).
				WithPageSize(2).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC})

			ctx := context.Background()

			// First page: three rows come back for LIMIT 3, so more pages exist.
			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = [`'\"]lol[`'\"] ORDER BY id ASC LIMIT 3$").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
					AddRow(1, "a").AddRow(2, "b").AddRow(3, "c"))

			page, err := src.LoadPage(ctx, false)
			require.NoError(t, err)
			require.Len(t, page, 2, "lookahead row must be trimmed")
			require.Equal(t, uint(1), page[0].ID)
			require.Equal(t, uint(2), page[1].ID)
			require.False(t, src.IsEndList())

			// Second page advances the offset; a short result ends the list.
			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = [`'\"]lol[`'\"] ORDER BY id ASC LIMIT 3 OFFSET 2$").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "c"))

			page, err = src.LoadPage(ctx, false)
			require.NoError(t, err)
			require.Len(t, page, 1)
			require.Equal(t, uint(3), page[0].ID)
			require.True(t, src.IsEndList())

			// Refresh rewinds to the first page.
			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = [`'\"]lol[`'\"] ORDER BY id ASC LIMIT 3$").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a"))

			page, err = src.LoadPage(ctx, true)
			require.NoError(t, err)
			require.Len(t, page, 1)
			require.True(t, src.IsEndList())

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMSource_LoadPage_keyset(t *testing.T) {
	sqlMockFnList := []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
		newGORMMySQLMock,
		newGORMPostgresMock,
	}

	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			if err != nil {
				t.Fatalf("gorm open: %v", err)
			}

			src := NewGORMSource[tUser](db.Select("*").Table("users").Where("name = 'lol'")).
				WithPageSize(2).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC}).
				WithGetters(Getters[tUser]{"id": func(u tUser) any { return u.ID }})

			ctx := context.Background()

			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = [`'\"]lol[`'\"] ORDER BY id ASC LIMIT 3$").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
					AddRow(1, "a").AddRow(2, "b").AddRow(3, "c"))

			page, err := src.LoadPage(ctx, false)
			require.NoError(t, err)
			require.Len(t, page, 2)
			require.False(t, src.IsEndList())

			// Next page selects strictly past the boundary of the previous one.
			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = [`'\"]lol[`'\"] AND id > (?:\\$\\d|\\?) ORDER BY id ASC LIMIT 3$").
				WithArgs(2).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "c"))

			page, err = src.LoadPage(ctx, false)
			require.NoError(t, err)
			require.Len(t, page, 1)
			require.Equal(t, uint(3), page[0].ID)
			require.True(t, src.IsEndList())

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMSource_LoadPage_queryError(t *testing.T) {
	dialect, db, dbMock, err := newGORMMySQLMock()
	if err != nil {
		t.Fatalf("gorm open (%s): %v", dialect, err)
	}

	src := NewGORMSource[tUser](db.Select("*").Table("users")).
		WithPageSize(2).
		WithSort(OrderBy{Column: "id", Direction: DirectionASC})

	dbMock.ExpectQuery("^SELECT .*").WillReturnError(fmt.Errorf("connection reset"))

	_, err = src.LoadPage(context.Background(), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot load page")

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

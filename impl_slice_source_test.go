package golistview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SliceSource_LoadPage(t *testing.T) {
	tests := []struct {
		name      string
		items     []int
		pageSize  int
		wantPages [][]int
	}{
		{
			name:      "even split",
			items:     []int{1, 2, 3, 4},
			pageSize:  2,
			wantPages: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:      "short last page",
			items:     []int{1, 2, 3, 4, 5},
			pageSize:  2,
			wantPages: [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:      "single page",
			items:     []int{1},
			pageSize:  5,
			wantPages: [][]int{{1}},
		},
		{
			name:      "empty dataset",
			items:     nil,
			pageSize:  3,
			wantPages: [][]int{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSliceSource(tt.items).WithPageSize(tt.pageSize)
			ctx := context.Background()

			for i, want := range tt.wantPages {
				page, err := src.LoadPage(ctx, false)
				require.NoError(t, err)
				require.Len(t, page, len(want), "page %d", i)
				for j := range want {
					require.Equal(t, want[j], page[j])
				}

				wantEnd := i == len(tt.wantPages)-1
				require.Equal(t, wantEnd, src.IsEndList(), "endList after page %d", i)
			}

			// Exhausted source keeps serving empty pages.
			page, err := src.LoadPage(ctx, false)
			require.NoError(t, err)
			require.Empty(t, page)
			require.True(t, src.IsEndList())
		})
	}
}

func Test_SliceSource_refreshRewinds(t *testing.T) {
	src := NewSliceSource([]int{1, 2, 3}).WithPageSize(2)
	ctx := context.Background()

	page, err := src.LoadPage(ctx, false)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, page)

	page, err = src.LoadPage(ctx, false)
	require.NoError(t, err)
	require.Equal(t, []int{3}, page)
	require.True(t, src.IsEndList())

	page, err = src.LoadPage(ctx, true)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, page)
	require.False(t, src.IsEndList(), "refresh rewinds the exhaustion flag")
}

func Test_SliceSource_cancelledContext(t *testing.T) {
	src := NewSliceSource([]int{1, 2, 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.LoadPage(ctx, false)
	require.ErrorIs(t, err, context.Canceled)
}

func Test_SliceSource_pageSizeNormalized(t *testing.T) {
	src := NewSliceSource([]int{1}).WithPageSize(0)
	require.Equal(t, DefaultPageSize, src.pageSize)

	src = NewSliceSource([]int{1}).WithPageSize(MaxPageSize + 50)
	require.Equal(t, MaxPageSize, src.pageSize)
}

package golistview

// ColumnWidth returns the width of a single masonry column:
//
//	(totalWidth - spacing*(columnCount-1)) / columnCount
//
// IMPORTANT:
// The result is undefined for columnCount <= 0. The column count is validated
// once at construction (see NewListView), not here.
func ColumnWidth(totalWidth float64, columnCount int, spacing float64) float64 {
	return (totalWidth - spacing*float64(columnCount-1)) / float64(columnCount)
}

// Distribute assigns itemCount sequential item indices to columnCount columns
// round-robin: item i goes to column i mod columnCount. The result is
// deterministic, stable under repeated calls and independent of item content.
// Returns nil for columnCount <= 0.
//
// Example:
//
//	Distribute(7, 3) = [[0 3 6] [1 4] [2 5]]
//
// Placement is intentionally not height-balancing: shortest-column-first
// packing would need measured cell heights, which this package never sees.
func Distribute(itemCount, columnCount int) [][]int {
	if columnCount <= 0 {
		return nil
	}

	columns := make([][]int, columnCount)
	if itemCount <= 0 {
		return columns
	}

	// The first itemCount%columnCount columns receive one extra index.
	base := itemCount / columnCount
	for c := range columns {
		size := base
		if c < itemCount%columnCount {
			size++
		}

		columns[c] = make([]int, 0, size)
	}

	for i := 0; i < itemCount; i++ {
		columns[i%columnCount] = append(columns[i%columnCount], i)
	}

	return columns
}

// DistributeItems splits items into columnCount columns with the same
// round-robin placement as Distribute, carrying the items themselves instead
// of their indices. Returns nil for columnCount <= 0.
func DistributeItems[T any](items []T, columnCount int) [][]T {
	if columnCount <= 0 {
		return nil
	}

	columns := make([][]T, columnCount)
	for i := range items {
		columns[i%columnCount] = append(columns[i%columnCount], items[i])
	}

	return columns
}

// ColumnOffset returns the cross-axis offset of a column's leading edge: every
// column before it contributes its width plus one cross-axis gap.
func ColumnOffset(column int, columnWidth, crossAxisSpacing float64) float64 {
	return float64(column) * (columnWidth + crossAxisSpacing)
}

// ColumnHeights computes the stacked height of every column, assigning
// heights[i] to column i mod columnCount. Returns nil for columnCount <= 0.
//
// IMPORTANT:
// mainAxisSpacing is added after every cell, including the last one of a
// column. The rendered layout appends the gap below each cell unconditionally,
// and the computed heights match it.
func ColumnHeights(heights []float64, columnCount int, mainAxisSpacing float64) []float64 {
	if columnCount <= 0 {
		return nil
	}

	ret := make([]float64, columnCount)
	for i, h := range heights {
		ret[i%columnCount] += h + mainAxisSpacing
	}

	return ret
}

package matbuf

import (
	"github.com/YuminosukeSato/matbuf/pkg/errors"
)

// Mat is a non-owning view into a matrix buffer: the same flat values,
// shape and layout, but borrowed rather than owned. Views are cheap to copy
// by value and must not outlive the buffer they were taken from.
//
// A sub-range view is only representable along the layout's contiguous axis
// (rows for RowMajor, columns for ColMajor); a range along the other axis
// would not be a contiguous slice and is therefore only reachable by
// copying.
type Mat[T Data] struct {
	values []T
	nrow   int
	ncol   int
	layout Layout
}

// MatFromSlice borrows an existing flat buffer as a view. Returns a
// ShapeMismatchError when len(values) != nrow*ncol.
func MatFromSlice[T Data](values []T, nrow, ncol int, layout Layout) (Mat[T], error) {
	if len(values) != nrow*ncol {
		return Mat[T]{}, errors.NewShapeMismatchError("MatFromSlice", nrow, ncol, len(values))
	}
	return Mat[T]{values: values, nrow: nrow, ncol: ncol, layout: layout}, nil
}

// MatFromRow views a single row as a 1 x len(row) row-major matrix. This is
// the single-sample prediction path: one feature vector staged without a
// copy.
func MatFromRow[T Data](row []T) Mat[T] {
	return Mat[T]{values: row, nrow: 1, ncol: len(row), layout: RowMajor}
}

// NumRow returns the row count.
func (m Mat[T]) NumRow() int { return m.nrow }

// NumCol returns the column count.
func (m Mat[T]) NumCol() int { return m.ncol }

// Layout returns the physical layout tag.
func (m Mat[T]) Layout() Layout { return m.layout }

// Values returns the viewed flat slice in physical order.
func (m Mat[T]) Values() []T { return m.values }

// At returns the element at the logical coordinate (row, col), panicking on
// an out-of-range coordinate.
func (m Mat[T]) At(row, col int) T {
	assertRow(row, m.nrow)
	assertCol(col, m.ncol)
	return m.values[m.layout.Index(row, col, m.nrow, m.ncol)]
}

// Row returns row i of a row-major view as a contiguous slice.
func (m Mat[T]) Row(row int) []T {
	assertLayout("Row", m.layout, RowMajor)
	assertRow(row, m.nrow)
	return m.values[row*m.ncol:][:m.ncol]
}

// Col returns column j of a column-major view as a contiguous slice.
func (m Mat[T]) Col(col int) []T {
	assertLayout("Col", m.layout, ColMajor)
	assertCol(col, m.ncol)
	return m.values[col*m.nrow:][:m.nrow]
}

// Rows restricts a row-major view to a contiguous row range without
// copying. The range is normalized to half-open bounds and panics when
// inverted or past the row count.
func (m Mat[T]) Rows(r Range) Mat[T] {
	assertLayout("Rows", m.layout, RowMajor)
	start, end := r.normalize(m.nrow)
	nrow := end - start
	n := nrow * m.ncol
	return Mat[T]{
		values: m.values[start*m.ncol:][:n:n],
		nrow:   nrow,
		ncol:   m.ncol,
		layout: m.layout,
	}
}

// Cols restricts a column-major view to a contiguous column range without
// copying.
func (m Mat[T]) Cols(r Range) Mat[T] {
	assertLayout("Cols", m.layout, ColMajor)
	start, end := r.normalize(m.ncol)
	ncol := end - start
	n := ncol * m.nrow
	return Mat[T]{
		values: m.values[start*m.nrow:][:n:n],
		nrow:   m.nrow,
		ncol:   ncol,
		layout: m.layout,
	}
}

// Clone copies the view into a fresh owning buffer with the same shape and
// layout.
func (m Mat[T]) Clone() *MatBuf[T] {
	values := make([]T, len(m.values))
	copy(values, m.values)
	return &MatBuf[T]{values: values, nrow: m.nrow, ncol: m.ncol, layout: m.layout}
}

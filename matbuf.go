package matbuf

import (
	"fmt"

	"github.com/YuminosukeSato/matbuf/core/parallel"
	"github.com/YuminosukeSato/matbuf/pkg/errors"
)

// MatBuf is an owning, layout-aware matrix buffer: a flat contiguous value
// slice plus shape and a layout tag. It stages feature data in exactly the
// physical order an external numeric engine expects, so the buffer can be
// handed over as a raw pointer + dimensions + layout flag with no copy.
//
// Invariant: len(values) == nrow*ncol, established at construction and
// never broken afterwards (a MatBuf is never resized).
//
// A MatBuf is safe to share between concurrent readers once construction
// and mutation are done. It performs no internal locking; the caller must
// keep mutation exclusive.
type MatBuf[T Data] struct {
	values []T
	nrow   int
	ncol   int
	layout Layout
}

// New returns a zero-filled nrow x ncol buffer in the default column-major
// layout.
func New[T Data](nrow, ncol int) *MatBuf[T] {
	return &MatBuf[T]{
		values: make([]T, nrow*ncol),
		nrow:   nrow,
		ncol:   ncol,
		layout: ColMajor,
	}
}

// NewRowMajor returns a zero-filled nrow x ncol buffer in row-major layout.
func NewRowMajor[T Data](nrow, ncol int) *MatBuf[T] {
	m := New[T](nrow, ncol)
	m.layout = RowMajor
	return m
}

// FromSlice wraps an existing flat buffer without copying it. The buffer is
// owned by the returned matrix afterwards; the caller must not keep writing
// to it. Returns a ShapeMismatchError when len(values) != nrow*ncol.
func FromSlice[T Data](values []T, nrow, ncol int, layout Layout) (*MatBuf[T], error) {
	if len(values) != nrow*ncol {
		return nil, errors.NewShapeMismatchError("FromSlice", nrow, ncol, len(values))
	}
	return &MatBuf[T]{values: values, nrow: nrow, ncol: ncol, layout: layout}, nil
}

// FromRows builds a row-major matrix by concatenating fixed-width rows.
// The width is fixed by the caller up front; a row of any other length is a
// contract violation and panics. Use FromRowsAny for runtime-checked input.
func FromRows[T Data](ncol int, rows ...[]T) *MatBuf[T] {
	values := make([]T, 0, len(rows)*ncol)
	for i, row := range rows {
		if len(row) != ncol {
			panic(fmt.Sprintf("matbuf: row %d has %d columns, want %d", i, len(row), ncol))
		}
		values = append(values, row...)
	}
	return &MatBuf[T]{values: values, nrow: len(rows), ncol: ncol, layout: RowMajor}
}

// FromRowsAny builds a row-major matrix from rows whose widths are only
// known at runtime. The first row fixes the column count; a later row of a
// different length yields a ColumnCountMismatchError.
//
// Empty input is not an error: it returns (nil, nil), so callers can tell
// "nothing to stage" apart from malformed input.
func FromRowsAny[T Data](rows [][]T) (*MatBuf[T], error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ncol := len(rows[0])
	values := make([]T, 0, len(rows)*ncol)
	for i, row := range rows {
		if len(row) != ncol {
			return nil, errors.NewColumnCountMismatchError("FromRowsAny", ncol, len(row), i)
		}
		values = append(values, row...)
	}
	return &MatBuf[T]{values: values, nrow: len(rows), ncol: ncol, layout: RowMajor}, nil
}

// NumRow returns the row count.
func (m *MatBuf[T]) NumRow() int { return m.nrow }

// NumCol returns the column count.
func (m *MatBuf[T]) NumCol() int { return m.ncol }

// Layout returns the physical layout tag.
func (m *MatBuf[T]) Layout() Layout { return m.layout }

// Values returns the flat backing slice in physical order. Mutating it
// mutates the matrix.
func (m *MatBuf[T]) Values() []T { return m.values }

// At returns the element at the logical coordinate (row, col). Out-of-range
// coordinates panic; a silent out-of-bounds read here would corrupt a model
// downstream rather than crash, so the check is unconditional.
func (m *MatBuf[T]) At(row, col int) T {
	assertRow(row, m.nrow)
	assertCol(col, m.ncol)
	return m.values[m.layout.Index(row, col, m.nrow, m.ncol)]
}

// Set stores v at the logical coordinate (row, col), panicking on an
// out-of-range coordinate.
func (m *MatBuf[T]) Set(row, col int, v T) {
	assertRow(row, m.nrow)
	assertCol(col, m.ncol)
	m.values[m.layout.Index(row, col, m.nrow, m.ncol)] = v
}

// Row returns row i as a slice of the backing buffer. Only a row-major
// matrix stores rows contiguously, so calling Row on a column-major matrix
// panics.
func (m *MatBuf[T]) Row(row int) []T {
	return m.AsMat().Row(row)
}

// RowMut is Row with write access to the backing buffer.
func (m *MatBuf[T]) RowMut(row int) []T {
	assertLayout("RowMut", m.layout, RowMajor)
	assertRow(row, m.nrow)
	return m.values[row*m.ncol:][:m.ncol]
}

// Col returns column j as a slice of the backing buffer. Only a
// column-major matrix stores columns contiguously, so calling Col on a
// row-major matrix panics.
func (m *MatBuf[T]) Col(col int) []T {
	return m.AsMat().Col(col)
}

// ColMut is Col with write access to the backing buffer.
func (m *MatBuf[T]) ColMut(col int) []T {
	assertLayout("ColMut", m.layout, ColMajor)
	assertCol(col, m.ncol)
	return m.values[col*m.nrow:][:m.nrow]
}

// Rows returns a zero-copy view of a contiguous row range. Valid only for
// row-major matrices.
func (m *MatBuf[T]) Rows(r Range) Mat[T] {
	return m.AsMat().Rows(r)
}

// Cols returns a zero-copy view of a contiguous column range. Valid only
// for column-major matrices.
func (m *MatBuf[T]) Cols(r Range) Mat[T] {
	return m.AsMat().Cols(r)
}

// Map returns a new matrix of the same shape and layout with f applied to
// every element. The source is not touched; the result shares no storage
// with it.
func (m *MatBuf[T]) Map(f func(T) T) *MatBuf[T] {
	out := make([]T, len(m.values))
	for i, v := range m.values {
		out[i] = f(v)
	}
	return &MatBuf[T]{values: out, nrow: m.nrow, ncol: m.ncol, layout: m.layout}
}

// mapParallelThreshold is the element count above which MapParallel fans
// out. Below it the goroutine setup costs more than the work.
const mapParallelThreshold = 10000

// MapParallel is Map with the flat buffer chunked across CPU cores. Small
// matrices fall back to the sequential path.
func (m *MatBuf[T]) MapParallel(f func(T) T) *MatBuf[T] {
	out := make([]T, len(m.values))
	parallel.ParallelizeWithThreshold(len(m.values), mapParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f(m.values[i])
		}
	})
	return &MatBuf[T]{values: out, nrow: m.nrow, ncol: m.ncol, layout: m.layout}
}

// AsMat returns a non-owning view over the whole buffer. The view must not
// outlive mutation of the matrix it was taken from.
func (m *MatBuf[T]) AsMat() Mat[T] {
	return Mat[T]{values: m.values, nrow: m.nrow, ncol: m.ncol, layout: m.layout}
}

// String renders the logical grid; see Mat.String.
func (m *MatBuf[T]) String() string {
	return m.AsMat().String()
}

func assertRow(row, nrow int) {
	if row < 0 || row >= nrow {
		panic(fmt.Sprintf("matbuf: index out of bounds: the nrow is %d but the row is %d", nrow, row))
	}
}

func assertCol(col, ncol int) {
	if col < 0 || col >= ncol {
		panic(fmt.Sprintf("matbuf: index out of bounds: the ncol is %d but the col is %d", ncol, col))
	}
}

func assertLayout(op string, got, want Layout) {
	if got != want {
		panic(fmt.Sprintf("matbuf: %s requires %v layout, matrix is %v", op, want, got))
	}
}

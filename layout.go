package matbuf

import "fmt"

// Layout is the rule mapping a logical (row, column) coordinate to a
// physical offset in the flat value buffer.
//
// The zero value is ColMajor: numeric engines that walk one feature at a
// time want each column contiguous, so column-major is the default staging
// format.
type Layout uint8

const (
	// ColMajor stores each column contiguously: offset = col*nrow + row.
	ColMajor Layout = iota
	// RowMajor stores each row contiguously: offset = row*ncol + col.
	RowMajor
)

// Index maps a logical (row, col) coordinate to an offset in a flat buffer
// of shape nrow x ncol. It is the single source of truth for indexing;
// buffers and views must never compute offsets any other way.
func (l Layout) Index(row, col, nrow, ncol int) int {
	switch l {
	case RowMajor:
		return row*ncol + col
	case ColMajor:
		return col*nrow + row
	default:
		panic(fmt.Sprintf("matbuf: invalid layout (%d)", l))
	}
}

// String returns "RowMajor" or "ColMajor".
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "RowMajor"
	case ColMajor:
		return "ColMajor"
	default:
		return fmt.Sprintf("Layout(%d)", l)
	}
}

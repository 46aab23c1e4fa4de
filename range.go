package matbuf

import "fmt"

// Range selects a contiguous run of rows or columns. Construct one with
// Span, Closed, From, UpTo or All; the zero value behaves like All().
//
// Bounds are resolved against a concrete extent only when the range is
// applied, so the same Range value can slice matrices of different sizes.
type Range struct {
	start    int
	end      int
	hasStart bool
	hasEnd   bool
}

// Span returns the half-open range [start, end).
func Span(start, end int) Range {
	return Range{start: start, end: end, hasStart: true, hasEnd: true}
}

// Closed returns the inclusive range [start, end].
func Closed(start, end int) Range {
	return Span(start, end+1)
}

// From returns the range [start, extent).
func From(start int) Range {
	return Range{start: start, hasStart: true}
}

// UpTo returns the range [0, end).
func UpTo(end int) Range {
	return Range{end: end, hasEnd: true}
}

// All returns the unbounded range [0, extent).
func All() Range {
	return Range{}
}

// normalize resolves the bounds against extent into a concrete half-open
// pair. An inverted or out-of-range result is a caller contract violation
// and panics.
func (r Range) normalize(extent int) (start, end int) {
	start, end = 0, extent
	if r.hasStart {
		start = r.start
	}
	if r.hasEnd {
		end = r.end
	}
	if start > end {
		panic(fmt.Sprintf("matbuf: range start (%d) must not exceed end (%d)", start, end))
	}
	if end > extent {
		panic(fmt.Sprintf("matbuf: range out of bounds: the extent is %d but the range is %d..%d", extent, start, end))
	}
	return start, end
}

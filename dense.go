package matbuf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/matbuf/pkg/errors"
)

// ToDense bridges a float64 view to gonum for in-process math. A row-major
// view shares its storage with the returned Dense (gonum is row-major, so
// no copy is needed); a column-major view is copied through a transpose.
func ToDense(m Mat[float64]) *mat.Dense {
	if m.layout == RowMajor {
		return mat.NewDense(m.nrow, m.ncol, m.values)
	}
	// Column-major data read as row-major is the transpose of the logical
	// matrix; undo that with a copy.
	t := mat.NewDense(m.ncol, m.nrow, m.values)
	return mat.DenseCopyOf(t.T())
}

// DenseOf converts a view of any supported element type to a gonum Dense,
// widening (or narrowing) every element to float64. Non-float64 sources
// always copy and emit a DataConversionWarning so silent precision changes
// stay visible.
func DenseOf[T Data](m Mat[T]) *mat.Dense {
	if f64, ok := any(m).(Mat[float64]); ok {
		return ToDense(f64)
	}
	var zero T
	errors.Warn(errors.NewDataConversionWarning(
		fmt.Sprintf("%T", zero), "float64", "gonum mat.Dense only holds float64"))

	values := make([]float64, len(m.values))
	for i, v := range m.values {
		values[i] = float64(v)
	}
	return ToDense(Mat[float64]{values: values, nrow: m.nrow, ncol: m.ncol, layout: m.layout})
}

// FromDense copies a gonum Dense into a fresh row-major buffer.
func FromDense(d *mat.Dense) *MatBuf[float64] {
	nrow, ncol := d.Dims()
	out := NewRowMajor[float64](nrow, ncol)
	for row := 0; row < nrow; row++ {
		copy(out.RowMut(row), d.RawRowView(row))
	}
	return out
}

package matbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/matbuf/pkg/errors"
)

func TestToDenseRowMajorSharesStorage(t *testing.T) {
	m := FromRows(3, []float64{1, 2, 3}, []float64{4, 5, 6})
	d := ToDense(m.AsMat())

	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, d.At(1, 2))

	// Row-major conversion is zero-copy; a write through the buffer shows
	// up in the Dense.
	m.Set(0, 0, 42)
	assert.Equal(t, 42.0, d.At(0, 0))
}

func TestToDenseColMajor(t *testing.T) {
	m, err := FromSlice([]float64{1, 4, 2, 5, 3, 6}, 2, 3, ColMajor)
	require.NoError(t, err)

	d := ToDense(m.AsMat())
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, m.At(i, j), d.At(i, j), "at (%d,%d)", i, j)
		}
	}
}

func TestDenseOfFloat32Warns(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	m := FromRows(2, []float32{1, 2}, []float32{3, 4})
	d := DenseOf(m.AsMat())

	assert.Equal(t, 4.0, d.At(1, 1))
	require.Len(t, warned, 1)

	var conv *errors.DataConversionWarning
	assert.True(t, errors.As(warned[0], &conv))
	assert.Equal(t, "float64", conv.ToType)
}

func TestDenseOfFloat64NoWarning(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	m := FromRows(2, []float64{1, 2}, []float64{3, 4})
	DenseOf(m.AsMat())
	assert.Empty(t, warned)
}

func TestFromDenseRoundTrip(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	m := FromDense(d)

	assert.Equal(t, RowMajor, m.Layout())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Values())

	// FromDense copies; the buffer is independent of the Dense.
	d.Set(0, 0, 99)
	assert.Equal(t, 1.0, m.At(0, 0))
}

package dataset

import (
	"sync"
	"unsafe"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/matbuf"
	"github.com/YuminosukeSato/matbuf/pkg/errors"
)

// MemEngine is an in-memory Engine. It reads staged buffers straight from
// their raw addresses into gonum matrices, which makes it both a reference
// for how a native engine consumes the interop surface and a test double
// proving that the surface round-trips without corruption.
//
// Prediction is a stand-in: it scores each row with its feature mean, which
// is layout-independent and therefore exposes any indexing mistake.
type MemEngine struct {
	mu       sync.Mutex
	datasets []*memDataset
}

type memDataset struct {
	data   *mat.Dense
	fields map[string][]float64
}

// NewMemEngine returns an empty in-memory engine.
func NewMemEngine() *MemEngine {
	return &MemEngine{}
}

// CreateFromMat implements Engine. The buffer behind ptr is read in the
// physical order declared by isRowMajor; a column-major buffer is read as
// the transpose and copied back into logical order.
func (e *MemEngine) CreateFromMat(ptr unsafe.Pointer, dtype matbuf.DataType, nrow, ncol int32, isRowMajor int32, params string) (Handle, error) {
	if nrow <= 0 || ncol <= 0 {
		return 0, errors.ErrEmptyData
	}
	values, err := readValues(ptr, dtype, int(nrow)*int(ncol))
	if err != nil {
		return 0, err
	}

	var dense *mat.Dense
	if matbuf.IntToBool(isRowMajor) {
		dense = mat.NewDense(int(nrow), int(ncol), values)
	} else {
		t := mat.NewDense(int(ncol), int(nrow), values)
		dense = mat.DenseCopyOf(t.T())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.datasets = append(e.datasets, &memDataset{
		data:   dense,
		fields: make(map[string][]float64),
	})
	return Handle(len(e.datasets) - 1), nil
}

// SetField implements Engine.
func (e *MemEngine) SetField(h Handle, field string, ptr unsafe.Pointer, n int32, dtype matbuf.DataType) error {
	values, err := readValues(ptr, dtype, int(n))
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := e.dataset(h)
	if err != nil {
		return err
	}
	d.fields[field] = values
	return nil
}

// PredictForMat implements Engine, returning the per-row feature mean.
func (e *MemEngine) PredictForMat(h Handle, ptr unsafe.Pointer, dtype matbuf.DataType, nrow, ncol int32, isRowMajor int32) ([]float64, error) {
	e.mu.Lock()
	d, err := e.dataset(h)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	_, want := d.data.Dims()
	if want != int(ncol) {
		return nil, errors.Newf("feature count mismatch: dataset has %d, input has %d", want, ncol)
	}

	values, err := readValues(ptr, dtype, int(nrow)*int(ncol))
	if err != nil {
		return nil, err
	}

	out := make([]float64, nrow)
	rowMajor := matbuf.IntToBool(isRowMajor)
	for i := int32(0); i < nrow; i++ {
		sum := 0.0
		for j := int32(0); j < ncol; j++ {
			if rowMajor {
				sum += values[i*ncol+j]
			} else {
				sum += values[j*nrow+i]
			}
		}
		out[i] = sum / float64(ncol)
	}
	return out, nil
}

// NumData returns the row count of a staged dataset.
func (e *MemEngine) NumData(h Handle) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := e.dataset(h)
	if err != nil {
		return 0, err
	}
	r, _ := d.data.Dims()
	return r, nil
}

// NumFeature returns the column count of a staged dataset.
func (e *MemEngine) NumFeature(h Handle) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := e.dataset(h)
	if err != nil {
		return 0, err
	}
	_, c := d.data.Dims()
	return c, nil
}

// Data returns the staged matrix in logical (row-major) order.
func (e *MemEngine) Data(h Handle) (*mat.Dense, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := e.dataset(h)
	if err != nil {
		return nil, err
	}
	return d.data, nil
}

// GetField returns a staged field widened to float64, or ErrEmptyData when
// the field was never set.
func (e *MemEngine) GetField(h Handle, field string) ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := e.dataset(h)
	if err != nil {
		return nil, err
	}
	values, ok := d.fields[field]
	if !ok {
		return nil, errors.Wrapf(errors.ErrEmptyData, "field %q", field)
	}
	return values, nil
}

func (e *MemEngine) dataset(h Handle) (*memDataset, error) {
	if h < 0 || int(h) >= len(e.datasets) {
		return nil, errors.Newf("invalid dataset handle: %d", h)
	}
	return e.datasets[h], nil
}

// readValues widens a raw typed buffer into a fresh float64 slice. This is
// the engine-side copy; the staging side never copies.
func readValues(ptr unsafe.Pointer, dtype matbuf.DataType, n int) ([]float64, error) {
	out := make([]float64, n)
	switch dtype {
	case matbuf.Float32C:
		for i, v := range unsafe.Slice((*float32)(ptr), n) {
			out[i] = float64(v)
		}
	case matbuf.Float64C:
		copy(out, unsafe.Slice((*float64)(ptr), n))
	case matbuf.Int32C:
		for i, v := range unsafe.Slice((*int32)(ptr), n) {
			out[i] = float64(v)
		}
	case matbuf.Int64C:
		for i, v := range unsafe.Slice((*int64)(ptr), n) {
			out[i] = float64(v)
		}
	default:
		return nil, errors.Wrapf(errors.ErrTypeMismatch, "unknown data type code %d", dtype)
	}
	return out, nil
}

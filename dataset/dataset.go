// Package dataset stages matrix buffers and their per-row fields into an
// external numeric engine. The engine is an opaque collaborator reached
// through the Engine capability interface: it is given the raw buffer
// address, dimensions and layout flag, and never a copy of the data.
package dataset

import (
	"log/slog"
	"unsafe"

	"github.com/YuminosukeSato/matbuf"
	"github.com/YuminosukeSato/matbuf/pkg/errors"
	"github.com/YuminosukeSato/matbuf/pkg/log"
)

// Handle identifies a dataset held by an engine.
type Handle int

// Engine is the capability interface of the external numeric engine. An
// implementation reads the staged buffer in place; the caller keeps the
// backing matrix alive until the handle is released.
type Engine interface {
	// CreateFromMat consumes a feature matrix given by its raw address,
	// element type code, dimensions and layout flag.
	CreateFromMat(ptr unsafe.Pointer, dtype matbuf.DataType, nrow, ncol int32, isRowMajor int32, params string) (Handle, error)

	// SetField attaches a named per-row buffer (label, weight, ...) to a
	// staged dataset.
	SetField(h Handle, field string, ptr unsafe.Pointer, n int32, dtype matbuf.DataType) error

	// PredictForMat scores a feature matrix against a staged dataset and
	// returns one value per row.
	PredictForMat(h Handle, ptr unsafe.Pointer, dtype matbuf.DataType, nrow, ncol int32, isRowMajor int32) ([]float64, error)
}

// Field is a typed name for a per-row buffer attached to a dataset. The
// type parameter pins the element type the engine expects for that field,
// so a label buffer of the wrong type fails to compile instead of at the
// boundary.
type Field[T matbuf.Data] struct {
	name string
}

// Name returns the engine-side field name.
func (f Field[T]) Name() string { return f.name }

// The engine's field vocabulary.
var (
	Label     = Field[float32]{name: "label"}
	Weight    = Field[float32]{name: "weight"}
	InitScore = Field[float64]{name: "init_score"}
	Group     = Field[int32]{name: "group"}
)

type fieldData struct {
	dtype matbuf.DataType
	n     int
	ptr   unsafe.Pointer
	// keep holds the slice so its backing array stays alive while the
	// raw pointer is staged.
	keep any
}

// Dataset pairs a staged feature matrix with its per-row fields. The
// feature view is borrowed; the owning buffer must outlive the dataset and
// any engine handle staged from it.
type Dataset[T matbuf.Data] struct {
	features matbuf.Mat[T]
	fields   map[string]fieldData
	names    []string
}

// New wraps a feature view for staging.
func New[T matbuf.Data](features matbuf.Mat[T]) *Dataset[T] {
	return &Dataset[T]{
		features: features,
		fields:   make(map[string]fieldData),
	}
}

// NumRow returns the number of samples.
func (d *Dataset[T]) NumRow() int { return d.features.NumRow() }

// NumCol returns the number of features.
func (d *Dataset[T]) NumCol() int { return d.features.NumCol() }

// Features returns the staged feature view.
func (d *Dataset[T]) Features() matbuf.Mat[T] { return d.features }

// SetFeatureNames records the feature names reported alongside the matrix.
// The count must match the column count.
func (d *Dataset[T]) SetFeatureNames(names []string) error {
	if len(names) != d.features.NumCol() {
		return errors.NewFieldMismatchError("feature_names", d.features.NumCol(), len(names))
	}
	d.names = append([]string(nil), names...)
	return nil
}

// FeatureNames returns the recorded feature names, or nil.
func (d *Dataset[T]) FeatureNames() []string { return d.names }

// SetField attaches a per-row buffer to the dataset. Label, Weight and
// InitScore must have one value per row; Group is a run-length partition of
// the rows, so its values must sum to the row count instead.
func SetField[T, F matbuf.Data](d *Dataset[T], f Field[F], values []F) error {
	switch f.name {
	case Group.name:
		var sum int64
		for _, v := range values {
			sum += int64(v)
		}
		if sum != int64(d.NumRow()) {
			return errors.NewFieldMismatchError(f.name, d.NumRow(), int(sum))
		}
	default:
		if len(values) != d.NumRow() {
			return errors.NewFieldMismatchError(f.name, d.NumRow(), len(values))
		}
	}
	d.fields[f.name] = fieldData{
		dtype: matbuf.DataTypeOf[F](),
		n:     len(values),
		ptr:   unsafe.Pointer(unsafe.SliceData(values)),
		keep:  values,
	}
	return nil
}

// Stage hands the dataset to the engine: first the feature matrix as raw
// address + dims + layout flag, then each attached field. No element is
// copied on this side of the boundary.
func (d *Dataset[T]) Stage(e Engine, params string) (Handle, error) {
	m := d.features
	slog.Info("staging dataset",
		log.OperationKey, "stage",
		log.RowsKey, m.NumRow(),
		log.ColsKey, m.NumCol(),
		log.LayoutKey, m.Layout().String(),
		log.DataTypeKey, int32(m.DataType()),
	)

	h, err := e.CreateFromMat(m.DataPtr(), m.DataType(), int32(m.NumRow()), int32(m.NumCol()), m.IsRowMajor(), params)
	if err != nil {
		return 0, errors.Wrap(err, "stage features")
	}
	for name, fd := range d.fields {
		if err := e.SetField(h, name, fd.ptr, int32(fd.n), fd.dtype); err != nil {
			return 0, errors.Wrapf(err, "stage field %q", name)
		}
	}
	return h, nil
}

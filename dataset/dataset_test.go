package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/matbuf"
	"github.com/YuminosukeSato/matbuf/pkg/errors"
)

func stageRowMajor(t *testing.T) (*MemEngine, Handle, *matbuf.MatBuf[float32]) {
	t.Helper()

	features := matbuf.FromRows(3,
		[]float32{1, 2, 3},
		[]float32{4, 5, 6},
	)
	engine := NewMemEngine()
	h, err := New(features.AsMat()).Stage(engine, "")
	require.NoError(t, err)
	return engine, h, features
}

func TestStageRowMajor(t *testing.T) {
	engine, h, features := stageRowMajor(t)

	nrow, err := engine.NumData(h)
	require.NoError(t, err)
	ncol, err := engine.NumFeature(h)
	require.NoError(t, err)
	assert.Equal(t, 2, nrow)
	assert.Equal(t, 3, ncol)

	// The engine must see the logical matrix the buffer describes.
	data, err := engine.Data(h)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, float64(features.At(i, j)), data.At(i, j), "at (%d,%d)", i, j)
		}
	}
}

func TestStageColMajor(t *testing.T) {
	// [[1,2,3],[4,5,6]] staged column by column.
	features, err := matbuf.FromSlice([]float32{1, 4, 2, 5, 3, 6}, 2, 3, matbuf.ColMajor)
	require.NoError(t, err)

	engine := NewMemEngine()
	h, err := New(features.AsMat()).Stage(engine, "")
	require.NoError(t, err)

	data, err := engine.Data(h)
	require.NoError(t, err)
	assert.Equal(t, 1.0, data.At(0, 0))
	assert.Equal(t, 6.0, data.At(1, 2))
}

func TestStageSubView(t *testing.T) {
	features := matbuf.FromRows(2,
		[]float32{1, 2},
		[]float32{3, 4},
		[]float32{5, 6},
	)

	engine := NewMemEngine()
	h, err := New(features.Rows(matbuf.From(1))).Stage(engine, "")
	require.NoError(t, err)

	nrow, err := engine.NumData(h)
	require.NoError(t, err)
	assert.Equal(t, 2, nrow)

	data, err := engine.Data(h)
	require.NoError(t, err)
	assert.Equal(t, 3.0, data.At(0, 0))
}

func TestSetFieldAndGet(t *testing.T) {
	features := matbuf.FromRows(2, []float32{1, 2}, []float32{3, 4}, []float32{5, 6})
	ds := New(features.AsMat())

	require.NoError(t, SetField(ds, Label, []float32{0, 1, 1}))
	require.NoError(t, SetField(ds, Weight, []float32{1, 1, 2}))
	require.NoError(t, SetField(ds, Group, []int32{2, 1}))

	engine := NewMemEngine()
	h, err := ds.Stage(engine, "")
	require.NoError(t, err)

	label, err := engine.GetField(h, "label")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1}, label)

	group, err := engine.GetField(h, "group")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, group)
}

func TestSetFieldLengthMismatch(t *testing.T) {
	features := matbuf.FromRows(2, []float32{1, 2}, []float32{3, 4})
	ds := New(features.AsMat())

	err := SetField(ds, Label, []float32{0})
	require.Error(t, err)

	var fieldErr *errors.FieldMismatchError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "label", fieldErr.Field)
	assert.Equal(t, 2, fieldErr.Expected)
	assert.Equal(t, 1, fieldErr.Got)
}

func TestSetFieldGroupMustPartitionRows(t *testing.T) {
	features := matbuf.FromRows(1, []float32{1}, []float32{2}, []float32{3})
	ds := New(features.AsMat())

	require.NoError(t, SetField(ds, Group, []int32{1, 2}))
	require.Error(t, SetField(ds, Group, []int32{1, 1}))
}

func TestGetFieldUnset(t *testing.T) {
	engine, h, _ := stageRowMajor(t)

	_, err := engine.GetField(h, "weight")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestSetFeatureNames(t *testing.T) {
	features := matbuf.FromRows(2, []float32{1, 2})
	ds := New(features.AsMat())

	require.Error(t, ds.SetFeatureNames([]string{"only_one"}))
	require.NoError(t, ds.SetFeatureNames([]string{"f0", "f1"}))
	assert.Equal(t, []string{"f0", "f1"}, ds.FeatureNames())
}

func TestPredictForMatRowMeans(t *testing.T) {
	engine, h, features := stageRowMajor(t)

	m := features.AsMat()
	preds, err := engine.PredictForMat(h, m.DataPtr(), m.DataType(),
		int32(m.NumRow()), int32(m.NumCol()), m.IsRowMajor())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, preds)
}

func TestPredictForMatColMajorAgrees(t *testing.T) {
	engine, h, _ := stageRowMajor(t)

	// The same logical values staged column-major must score identically.
	cm, err := matbuf.FromSlice([]float32{1, 4, 2, 5, 3, 6}, 2, 3, matbuf.ColMajor)
	require.NoError(t, err)

	m := cm.AsMat()
	preds, err := engine.PredictForMat(h, m.DataPtr(), m.DataType(),
		int32(m.NumRow()), int32(m.NumCol()), m.IsRowMajor())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, preds)
}

func TestPredictSingleRow(t *testing.T) {
	engine, h, _ := stageRowMajor(t)

	row := matbuf.MatFromRow([]float32{3, 6, 9})
	preds, err := engine.PredictForMat(h, row.DataPtr(), row.DataType(),
		int32(row.NumRow()), int32(row.NumCol()), row.IsRowMajor())
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, preds)
}

func TestPredictFeatureCountMismatch(t *testing.T) {
	engine, h, _ := stageRowMajor(t)

	row := matbuf.MatFromRow([]float32{1, 2})
	_, err := engine.PredictForMat(h, row.DataPtr(), row.DataType(),
		int32(row.NumRow()), int32(row.NumCol()), row.IsRowMajor())
	assert.Error(t, err)
}

func TestInvalidHandle(t *testing.T) {
	engine := NewMemEngine()
	_, err := engine.NumData(Handle(3))
	assert.Error(t, err)
}

func TestCreateFromMatEmpty(t *testing.T) {
	features := matbuf.New[float64](0, 0)
	m := features.AsMat()

	engine := NewMemEngine()
	_, err := engine.CreateFromMat(m.DataPtr(), m.DataType(), 0, 0, m.IsRowMajor(), "")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestStageInt64Features(t *testing.T) {
	features := matbuf.FromRows(2, []int64{10, 20}, []int64{30, 40})
	engine := NewMemEngine()
	h, err := New(features.AsMat()).Stage(engine, "")
	require.NoError(t, err)

	data, err := engine.Data(h)
	require.NoError(t, err)
	assert.Equal(t, 40.0, data.At(1, 1))
}

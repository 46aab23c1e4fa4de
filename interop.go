package matbuf

import "unsafe"

// Data is the set of element types the external numeric engine accepts.
type Data interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// DataType is the engine's element type code, passed across the boundary
// alongside the raw buffer address.
type DataType int32

// Element type codes of the engine's C API.
const (
	Float32C DataType = 0
	Float64C DataType = 1
	Int32C   DataType = 2
	Int64C   DataType = 3
)

// DataTypeOf returns the engine type code for T.
func DataTypeOf[T Data]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32C
	case float64:
		return Float64C
	case int32:
		return Int32C
	case int64:
		return Int64C
	default:
		// ~-constrained named types land here; resolve by size and kind.
		switch unsafe.Sizeof(zero) {
		case 4:
			if isFloat[T]() {
				return Float32C
			}
			return Int32C
		default:
			if isFloat[T]() {
				return Float64C
			}
			return Int64C
		}
	}
}

func isFloat[T Data]() bool {
	// Integer division truncates to zero; float division keeps the fraction.
	return T(1)/T(2) != T(0)
}

// DataPtr returns the raw starting address of the viewed buffer. Together
// with NumRow, NumCol and IsRowMajor it is everything an external numeric
// routine needs to read the data in place; no transposition or copy ever
// happens on this path. The pointer is only valid while the owning buffer
// is alive.
func (m Mat[T]) DataPtr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(m.values))
}

// DataType returns the engine type code of the view's elements.
func (m Mat[T]) DataType() DataType {
	return DataTypeOf[T]()
}

// IsRowMajor returns the layout as the C int flag the engine expects:
// 1 for row-major, 0 for column-major.
func (m Mat[T]) IsRowMajor() int32 {
	return BoolToInt(m.layout == RowMajor)
}

// DataPtr returns the raw starting address of the backing buffer; see
// Mat.DataPtr.
func (m *MatBuf[T]) DataPtr() unsafe.Pointer {
	return m.AsMat().DataPtr()
}

// IsRowMajor returns the layout as a C int flag; see Mat.IsRowMajor.
func (m *MatBuf[T]) IsRowMajor() int32 {
	return m.AsMat().IsRowMajor()
}

// BoolToInt converts a bool to the C-style int flag used on the engine
// boundary.
func BoolToInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

// IntToBool converts a C-style int flag back to a bool.
func IntToBool(v int32) bool {
	return v != 0
}

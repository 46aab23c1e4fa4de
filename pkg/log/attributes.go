package log

// Standard attribute keys for staging operations. Using these keys keeps
// log analysis consistent across the library.
const (
	// RowsKey indicates the number of rows (samples) in a staged matrix.
	RowsKey = "data.rows"

	// ColsKey indicates the number of columns (features) in a staged matrix.
	ColsKey = "data.cols"

	// LayoutKey records the physical layout of a staged matrix.
	// Values: "RowMajor", "ColMajor".
	LayoutKey = "data.layout"

	// DataTypeKey records the element type code passed to the engine.
	DataTypeKey = "data.dtype"

	// FieldKey identifies a per-row field ("label", "weight", ...).
	FieldKey = "dataset.field"

	// OperationKey specifies the staging operation being performed.
	// Standard values: "stage", "set_field", "predict".
	OperationKey = "op"

	// EngineKey identifies the numeric engine consuming the buffer.
	EngineKey = "engine"
)

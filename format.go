package matbuf

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// String renders the logical (row, column) grid for diagnostics. The
// rendering walks coordinates through the layout mapping, so row-major and
// column-major buffers holding the same logical data print identically.
func (m Mat[T]) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 1, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "\t")
	for col := 0; col < m.ncol; col++ {
		fmt.Fprintf(w, "[%d]\t", col)
	}
	fmt.Fprintln(w)

	for row := 0; row < m.nrow; row++ {
		fmt.Fprintf(w, "%d\t", row)
		for col := 0; col < m.ncol; col++ {
			fmt.Fprintf(w, "%v\t", m.At(row, col))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return sb.String()
}

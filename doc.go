// Package matbuf provides typed, layout-aware matrix buffers for staging
// numeric feature data to an external numeric engine without copying.
//
// A MatBuf owns a flat contiguous value buffer plus its shape and a layout
// tag (row-major or column-major). Because the physical order is tracked
// explicitly, the buffer can be handed to a training or inference routine
// as a raw pointer + dimensions + layout flag exactly as it sits in memory
// — the whole point of the package is that feeding millions of values
// across that boundary never requires a transposition or copy.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/YuminosukeSato/matbuf"
//	)
//
//	func main() {
//	    // Two samples, three features, rows contiguous in memory.
//	    m := matbuf.FromRows(3,
//	        []float64{1, 2, 3},
//	        []float64{4, 5, 6},
//	    )
//
//	    fmt.Println(m.At(1, 2))      // 6
//	    fmt.Println(m.Row(0))        // [1 2 3]
//	    fmt.Println(m.Values())      // [1 2 3 4 5 6], the physical order
//
//	    // Zero-copy window over the first row only.
//	    head := m.Rows(matbuf.UpTo(1))
//	    fmt.Println(head.NumRow())   // 1
//	}
//
// # Packages
//
//   - matbuf: the matrix buffer, views, layout and range handling
//   - dataset: staging of a buffer plus per-row fields into a numeric engine
//   - pkg/errors: structured error types and warnings
//   - pkg/log: structured logging setup
//   - core/parallel: parallel execution helpers used by MapParallel
//
// # Concurrency
//
// A buffer is built once and never resized. After construction it may be
// shared freely between concurrent readers; mutation requires exclusive
// access, enforced by the caller rather than by internal locking.
package matbuf

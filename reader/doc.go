// Package reader parses PLY documents from files, streams or memory.
//
// A Reader is driven in three steps: ParseHeader decodes the schema,
// OnValue registers per-property callbacks, and Read streams every value of
// the body through them in declaration order. All values are delivered as
// float64 regardless of their declared type. For list properties the
// callback first receives the length (ValueIndex -1), then each value.
//
//	r, err := reader.OpenFromMemory(doc, nil)
//	hdr, err := r.ParseHeader()
//	n, err := r.OnValue("vertex", "x", func(arg reader.Argument) error {
//	    xs = append(xs, arg.Value)
//	    return nil
//	})
//	err = r.Read()
//
// A memory-backed handle behaves identically to a file-backed one: opening
// performs no parsing, and all document faults surface from ParseHeader or
// Read. Handles are not safe for concurrent use.
package reader

// Package writer serializes PLY documents to files, streams or memory.
//
// A Writer is driven in three steps: declare the schema (AddElement,
// AddProperty, AddListProperty, AddComment, AddObjInfo), emit it with
// WriteHeader, then feed every body value with one Write call each, in
// declaration order. A list property takes its length first, then that many
// values. Close flushes and, for memory-backed handles, publishes the total
// byte count.
//
//	buf := make([]byte, 1<<16)
//	var size int
//	w, err := writer.CreateToMemory(buf, &size, schema.ASCII, nil)
//	w.AddElement("vertex", 1)
//	w.AddProperty("x", schema.Float32)
//	w.WriteHeader()
//	w.Write(1.5)
//	w.Close() // size now holds the document length
//
// A memory-backed handle enforces its buffer's capacity as a hard bound: a
// write that would cross it fails, the handle degrades, and no byte beyond
// the capacity is ever touched. Handles are not safe for concurrent use.
package writer

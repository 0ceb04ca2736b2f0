// Package memio provides byte source and sink shims over caller-owned
// memory, so documents can be parsed from and serialized into buffers
// already resident in memory instead of going through file I/O.
//
// Buffer is the read side: a cursor over a fixed, length-delimited slice.
// FixedBuffer is the write side: an arena-style slice with a hard capacity
// bound; a write that would overrun it fails whole rather than truncating.
// Both are plain io.Reader/io.Writer implementations, so the reader and
// writer packages drive them exactly as they drive a file.
package memio

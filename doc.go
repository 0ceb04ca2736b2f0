// Package goply reads and writes PLY (Polygon File Format) documents.
//
// The library is a Go rework of the classic callback-driven PLY API: a
// reader parses the header into a schema and then streams every property
// value of every element instance through caller-registered callbacks; a
// writer is declared a schema, emits the header, and is then fed one value
// at a time in declaration order. ASCII and both binary storage modes are
// supported, for files and for caller-owned memory buffers.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	goply/           Root package with the Handle and ErrorHandler interfaces
//	├── schema/      PLY type system: scalar types, storage modes, header model
//	├── reader/      Header parsing and ASCII/binary body decoding
//	├── writer/      Schema declaration and header/body serialization
//	├── memio/       Memory-backed byte source/sink shims
//	├── errors/      Structured error types for debugging
//	└── cmd/plytool/ Inspect, convert and preview PLY files
//
// # Quick Start
//
// Read vertex positions from a file:
//
//	r, err := reader.Open("bunny.ply", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	if _, err := r.ParseHeader(); err != nil {
//	    log.Fatal(err)
//	}
//	var xs []float64
//	r.OnValue("vertex", "x", func(arg reader.Argument) error {
//	    xs = append(xs, arg.Value)
//	    return nil
//	})
//	if err := r.Read(); err != nil {
//	    log.Fatal(err)
//	}
//
// Serialize directly into a caller-owned buffer:
//
//	buf := make([]byte, 1<<20)
//	var size int
//	w, err := writer.CreateToMemory(buf, &size, schema.BinaryLittleEndian, nil)
//
// # Error Reporting
//
// Every constructor accepts an ErrorHandler. Faults are always returned as
// error values; when a handler is present it additionally receives a
// synchronous report, mirroring the error-callback convention of the C
// libraries this API descends from. File-backed and memory-backed handles
// report identically, so callers can treat both uniformly.
//
// # Thread Safety
//
// No handle is safe for concurrent use. Every read and write completes
// synchronously on the calling goroutine; callers needing parallelism open
// independent handles over disjoint buffers or files.
package goply

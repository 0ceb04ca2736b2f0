package memio

import (
	"errors"
	"io"
)

// ErrCapacity is returned when a write would advance past the buffer's
// fixed capacity. The failing write leaves the buffer untouched.
var ErrCapacity = errors.New("memio: buffer capacity exceeded")

// ErrClosed is returned for operations on a closed buffer.
var ErrClosed = errors.New("memio: buffer is closed")

// Buffer is a read-only view over a caller-owned byte slice. It does not
// copy the slice; the caller must keep it valid and unmodified for the
// Buffer's lifetime. Not safe for concurrent use.
type Buffer struct {
	data []byte
	off  int
}

var (
	_ io.Reader     = (*Buffer)(nil)
	_ io.ByteReader = (*Buffer)(nil)
	_ io.Seeker     = (*Buffer)(nil)
)

// NewBuffer creates a read view over data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the total length of the underlying slice.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Offset returns the cursor position, the index of the next unread byte.
func (b *Buffer) Offset() int {
	return b.off
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	c := b.data[b.off]
	b.off++
	return c, nil
}

// Seek implements io.Seeker. The cursor stays within [0, Len].
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.off) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.New("memio: invalid whence")
	}
	if abs < 0 || abs > int64(len(b.data)) {
		return 0, errors.New("memio: seek out of range")
	}
	b.off = int(abs)
	return abs, nil
}

// FixedBuffer writes into a caller-owned slice of fixed capacity, tracking
// how many bytes have been produced. A write that would cross the capacity
// fails whole: no partial bytes are stored, no byte at or beyond the
// capacity is ever modified, and the buffer is marked failed so subsequent
// writes are rejected. Growth is out of contract; the caller sizes the
// slice up front. Not safe for concurrent use.
type FixedBuffer struct {
	data   []byte
	off    int
	failed bool
	closed bool
}

var (
	_ io.Writer = (*FixedBuffer)(nil)
	_ io.Closer = (*FixedBuffer)(nil)
)

// NewFixedBuffer creates a write view over data. The slice's length is the
// capacity bound.
func NewFixedBuffer(data []byte) *FixedBuffer {
	return &FixedBuffer{data: data}
}

// Cap returns the capacity bound.
func (b *FixedBuffer) Cap() int {
	return len(b.data)
}

// Len returns the number of bytes written so far. After a capacity fault it
// reports the pre-fault count; after Close it keeps reporting the final size.
func (b *FixedBuffer) Len() int {
	return b.off
}

// Failed reports whether a write has been rejected for capacity.
func (b *FixedBuffer) Failed() bool {
	return b.failed
}

// Write implements io.Writer.
func (b *FixedBuffer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if b.failed {
		return 0, ErrCapacity
	}
	if len(p) > len(b.data)-b.off {
		b.failed = true
		return 0, ErrCapacity
	}
	n := copy(b.data[b.off:], p)
	b.off += n
	return n, nil
}

// Close implements io.Closer. Closing is idempotent; closing after a
// capacity fault is allowed and preserves the partial count.
func (b *FixedBuffer) Close() error {
	b.closed = true
	return nil
}

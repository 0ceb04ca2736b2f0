package writer

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/meshkit/goply"
	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/memio"
	"github.com/meshkit/goply/schema"
)

// Writer is a PLY write handle. A handle is driven through schema
// declaration (AddElement, AddProperty, ...), WriteHeader, one Write call
// per body value in declaration order, and Close. Not safe for concurrent
// use.
type Writer struct {
	out     io.Writer
	bw      *bufio.Writer // non-nil when out is buffered
	closer  io.Closer
	mem     *memio.FixedBuffer // non-nil for memory-backed handles
	outSize *int
	name    string
	handler goply.ErrorHandler
	mode    schema.StorageMode
	hdr     schema.Header

	headerWritten bool
	closed        bool
	degraded      bool

	// body cursor
	elem    int
	inst    int64
	prop    int
	pending int  // list values left in the current property; -1 means length not yet written
	started bool // a value has been written in the current ASCII instance line
}

var _ goply.Handle = (*Writer)(nil)

// New creates a write handle over an arbitrary byte sink. If dst is an
// io.Closer, Close closes it. A *memio.FixedBuffer sink gets the same
// capacity-fault accounting as CreateToMemory.
func New(dst io.Writer, mode schema.StorageMode, h goply.ErrorHandler) (*Writer, error) {
	w := &Writer{name: "(stream)", handler: h}
	if dst == nil {
		return nil, w.fail(plyerr.InvalidInput(plyerr.PhaseOpen, "nil sink"))
	}
	if !mode.Valid() {
		return nil, w.fail(plyerr.InvalidInput(plyerr.PhaseOpen, "invalid storage mode"))
	}
	w.out = dst
	w.mode = mode.Resolve()
	w.hdr.Format = w.mode
	w.hdr.Version = "1.0"
	w.pending = -1
	if fb, ok := dst.(*memio.FixedBuffer); ok {
		w.mem = fb
	}
	if c, ok := dst.(io.Closer); ok {
		w.closer = c
	}
	return w, nil
}

// Create creates a write handle over a new file. File output is buffered;
// Close flushes.
func Create(path string, mode schema.StorageMode, h goply.ErrorHandler) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		w := &Writer{name: path, handler: h}
		return nil, w.fail(plyerr.IO(plyerr.PhaseOpen, err))
	}
	bw := bufio.NewWriter(f)
	w, err := New(bw, mode, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.name = path
	w.bw = bw
	w.closer = f
	return w, nil
}

// CreateToMemory creates a write handle that serializes directly into the
// caller-owned buf. The buffer's length is the capacity bound: a write that
// would cross it fails, is reported through h, and leaves the handle in a
// failed state — the document does not fit and the caller must recreate the
// handle with a larger buffer. Close stores the number of bytes produced
// into *size exactly once; after a capacity failure that is the partial
// size.
//
// Writes are unbuffered so the capacity fault surfaces on the exact write
// that crosses the bound.
func CreateToMemory(buf []byte, size *int, mode schema.StorageMode, h goply.ErrorHandler) (*Writer, error) {
	w := &Writer{name: "(memory)", handler: h}
	if len(buf) == 0 {
		return nil, w.fail(plyerr.InvalidInput(plyerr.PhaseOpen, "nil or empty buffer"))
	}
	if size == nil {
		return nil, w.fail(plyerr.InvalidInput(plyerr.PhaseOpen, "nil output size slot"))
	}
	mem := memio.NewFixedBuffer(buf)
	w, err := New(mem, mode, h)
	if err != nil {
		return nil, err
	}
	w.name = "(memory)"
	w.mem = mem
	w.outSize = size
	return w, nil
}

// Name implements goply.Handle.
func (w *Writer) Name() string {
	return w.name
}

// Header returns the schema declared so far.
func (w *Writer) Header() *schema.Header {
	return &w.hdr
}

// Close flushes buffered output, closes the underlying sink and, for
// memory-backed handles, publishes the final byte count into the size slot
// supplied at construction. Closing twice is a no-op: the size slot is
// written exactly once. Closing after a capacity failure publishes the
// partial size produced before the fault.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var firstErr error
	if w.bw != nil && !w.degraded {
		if err := w.bw.Flush(); err != nil {
			firstErr = w.fail(plyerr.IO(plyerr.PhaseClose, err))
		}
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil && firstErr == nil {
			firstErr = w.fail(plyerr.IO(plyerr.PhaseClose, err))
		}
	}
	if w.mem != nil {
		if w.outSize != nil {
			*w.outSize = w.mem.Len()
		}
		Logger().Debug("memory document closed",
			zap.String("sink", w.name),
			zap.Int("bytes", w.mem.Len()),
			zap.Bool("failed", w.degraded))
	}
	return firstErr
}

// push writes raw bytes to the sink, translating capacity faults and
// degrading the handle on any error.
func (w *Writer) push(p []byte) error {
	if _, err := w.out.Write(p); err != nil {
		if errors.Is(err, memio.ErrCapacity) {
			if w.mem != nil {
				return w.degrade(plyerr.Capacity(w.mem.Len(), w.mem.Cap(), len(p)))
			}
			// Capacity-bounded sink without byte counters.
			return w.degrade(plyerr.Wrap(plyerr.PhaseWrite, plyerr.KindCapacity, err, "sink capacity exhausted"))
		}
		return w.degrade(plyerr.IO(plyerr.PhaseWrite, err))
	}
	return nil
}

func (w *Writer) pushString(s string) error {
	return w.push([]byte(s))
}

// fail reports err through the handle's ErrorHandler and returns it.
func (w *Writer) fail(err error) error {
	if w.handler != nil {
		w.handler.Report(w, err.Error())
	}
	return err
}

// degrade marks the handle failed and reports err. Later operations on a
// degraded handle error without reporting again, so a fault surfaces
// through the handler exactly once.
func (w *Writer) degrade(err error) error {
	w.degraded = true
	return w.fail(err)
}

func (w *Writer) degradedErr(phase plyerr.Phase) error {
	return plyerr.InvalidInput(phase, "handle is in a failed state")
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n\v\f")
}

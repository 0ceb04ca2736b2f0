package reader

import (
	"io"
	"os"

	"github.com/meshkit/goply"
	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/memio"
	"github.com/meshkit/goply/reader/internal/scan"
	"github.com/meshkit/goply/schema"
)

// Argument carries one decoded value into a Callback.
//
// For a scalar property Length is 1 and ValueIndex is 0. For a list
// property the callback first receives the list length itself (ValueIndex
// -1, Value holding the length), then each value with ValueIndex counting
// from 0 to Length-1.
type Argument struct {
	Element    *schema.Element
	Property   *schema.Property
	Instance   int64 // instance index within the element
	Length     int
	ValueIndex int
	Value      float64
}

// Callback receives decoded values during Read. Returning a non-nil error
// aborts the read; the error is wrapped and returned from Read.
type Callback func(arg Argument) error

type cbKey struct {
	element  string
	property string
}

// Reader is a PLY read handle. It is driven through ParseHeader, OnValue
// registrations and a single Read call. Not safe for concurrent use.
type Reader struct {
	sc       *scan.Scanner
	closer   io.Closer
	name     string
	handler  goply.ErrorHandler
	hdr      *schema.Header
	cbs      map[cbKey]Callback
	closed   bool
	degraded bool
	readDone bool
}

var _ goply.Handle = (*Reader)(nil)

// New creates a read handle over an arbitrary byte stream. No parsing
// happens until ParseHeader is called. If src is an io.Closer, Close closes
// it.
func New(src io.Reader, h goply.ErrorHandler) (*Reader, error) {
	if src == nil {
		r := &Reader{name: "(stream)", handler: h}
		return nil, r.fail(plyerr.InvalidInput(plyerr.PhaseOpen, "nil source"))
	}
	r := &Reader{
		sc:      scan.New(src),
		name:    "(stream)",
		handler: h,
		cbs:     make(map[cbKey]Callback),
	}
	if c, ok := src.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// Open creates a read handle over a file.
func Open(path string, h goply.ErrorHandler) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		r := &Reader{name: path, handler: h}
		return nil, r.fail(plyerr.IO(plyerr.PhaseOpen, err))
	}
	r, err := New(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.name = path
	return r, nil
}

// OpenFromMemory creates a read handle over a document already resident in
// memory. The buffer is not copied: the caller must keep it valid and
// unmodified until the handle is closed. The buffer is length-delimited; an
// embedded zero byte is data, not a terminator.
//
// No validation of the document happens here; a malformed buffer fails at
// ParseHeader or Read, exactly as a malformed file would.
func OpenFromMemory(buf []byte, h goply.ErrorHandler) (*Reader, error) {
	if buf == nil {
		r := &Reader{name: "(memory)", handler: h}
		return nil, r.fail(plyerr.InvalidInput(plyerr.PhaseOpen, "nil buffer"))
	}
	r, err := New(memio.NewBuffer(buf), h)
	if err != nil {
		return nil, err
	}
	r.name = "(memory)"
	return r, nil
}

// Name implements goply.Handle.
func (r *Reader) Name() string {
	return r.name
}

// Header returns the parsed header, or nil before ParseHeader.
func (r *Reader) Header() *schema.Header {
	return r.hdr
}

// OnValue registers a callback for one property and returns the element's
// declared instance count. ParseHeader must have been called first.
func (r *Reader) OnValue(element, property string, cb Callback) (int64, error) {
	if r.closed {
		return 0, r.fail(plyerr.ClosedHandle(plyerr.PhaseRead))
	}
	if r.hdr == nil {
		return 0, r.fail(plyerr.InvalidInput(plyerr.PhaseRead, "header not parsed"))
	}
	e := r.hdr.Element(element)
	if e == nil {
		return 0, r.fail(plyerr.NotFound(plyerr.PhaseRead, "element", element))
	}
	if e.Property(property) == nil {
		return 0, r.fail(plyerr.NotFound(plyerr.PhaseRead, "property", element+"."+property))
	}
	r.cbs[cbKey{element, property}] = cb
	return e.Count, nil
}

// Close releases the underlying source. Closing twice is a no-op.
// Operations on a closed handle fail with a closed-handle error.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			return r.fail(plyerr.IO(plyerr.PhaseClose, err))
		}
	}
	return nil
}

// fail reports err through the handle's ErrorHandler and returns it.
func (r *Reader) fail(err error) error {
	if r.handler != nil {
		r.handler.Report(r, err.Error())
	}
	return err
}

// degrade marks the handle unusable for further reads and reports err.
func (r *Reader) degrade(err error) error {
	r.degraded = true
	return r.fail(err)
}

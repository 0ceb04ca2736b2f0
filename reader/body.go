package reader

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"

	"go.uber.org/zap"

	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/schema"
)

// Read decodes the document body, invoking registered callbacks for every
// value in declaration order. Properties without a callback are decoded and
// discarded. Read may be called once; any fault leaves the handle degraded.
func (r *Reader) Read() error {
	if r.closed {
		return r.fail(plyerr.ClosedHandle(plyerr.PhaseRead))
	}
	if r.degraded {
		return r.fail(plyerr.InvalidInput(plyerr.PhaseRead, "handle is in a failed state"))
	}
	if r.hdr == nil {
		return r.fail(plyerr.InvalidInput(plyerr.PhaseRead, "header not parsed"))
	}
	if r.readDone {
		return r.fail(plyerr.InvalidInput(plyerr.PhaseRead, "body already read"))
	}

	for i := range r.hdr.Elements {
		if err := r.readElement(&r.hdr.Elements[i]); err != nil {
			return r.degrade(err)
		}
	}
	r.readDone = true
	Logger().Debug("body read", zap.String("source", r.name), zap.Int64("bytes", r.sc.Offset()))
	return nil
}

func (r *Reader) readElement(e *schema.Element) error {
	for inst := int64(0); inst < e.Count; inst++ {
		for p := range e.Properties {
			if err := r.readProperty(e, &e.Properties[p], inst); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reader) readProperty(e *schema.Element, p *schema.Property, inst int64) error {
	cb := r.cbs[cbKey{e.Name, p.Name}]

	if !p.IsList {
		v, err := r.readValue(e, p, p.Type)
		if err != nil {
			return err
		}
		return r.dispatch(cb, Argument{
			Element: e, Property: p, Instance: inst,
			Length: 1, ValueIndex: 0, Value: v,
		})
	}

	lf, err := r.readValue(e, p, p.LengthType)
	if err != nil {
		return err
	}
	length := int64(lf)
	if length < 0 {
		return plyerr.New(plyerr.PhaseRead, plyerr.KindInvalidData).
			At(e.Name, p.Name).
			Offset(r.sc.Offset()).
			Detail("negative list length %d", length).
			Build()
	}
	arg := Argument{
		Element: e, Property: p, Instance: inst,
		Length: int(length), ValueIndex: -1, Value: lf,
	}
	if err := r.dispatch(cb, arg); err != nil {
		return err
	}
	for i := int64(0); i < length; i++ {
		v, err := r.readValue(e, p, p.Type)
		if err != nil {
			return err
		}
		arg.ValueIndex = int(i)
		arg.Value = v
		if err := r.dispatch(cb, arg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) dispatch(cb Callback, arg Argument) error {
	if cb == nil {
		return nil
	}
	if err := cb(arg); err != nil {
		return plyerr.New(plyerr.PhaseRead, plyerr.KindAborted).
			At(arg.Element.Name, arg.Property.Name).
			Offset(r.sc.Offset()).
			Detail("callback aborted the read").
			Cause(err).
			Build()
	}
	return nil
}

func (r *Reader) readValue(e *schema.Element, p *schema.Property, t schema.Type) (float64, error) {
	if r.hdr.Format == schema.ASCII {
		return r.readASCIIValue(e, p, t)
	}
	return r.readBinaryValue(e, p, t)
}

func (r *Reader) readASCIIValue(e *schema.Element, p *schema.Property, t schema.Type) (float64, error) {
	tok, err := r.sc.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, plyerr.UnexpectedEOF(plyerr.PhaseRead, e.Name, p.Name)
		}
		return 0, plyerr.IO(plyerr.PhaseRead, err)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, plyerr.New(plyerr.PhaseRead, plyerr.KindTypeMismatch).
			At(e.Name, p.Name).
			Offset(r.sc.Offset()).
			Detail("expected a %s, got %q", t, tok).
			Build()
	}
	return v, nil
}

func (r *Reader) readBinaryValue(e *schema.Element, p *schema.Property, t schema.Type) (float64, error) {
	var buf [8]byte
	if err := r.sc.ReadFull(buf[:t.Size()]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, plyerr.UnexpectedEOF(plyerr.PhaseRead, e.Name, p.Name)
		}
		return 0, plyerr.IO(plyerr.PhaseRead, err)
	}
	return decodeBinary(buf[:t.Size()], t, r.hdr.Format.ByteOrder()), nil
}

func decodeBinary(b []byte, t schema.Type, order binary.ByteOrder) float64 {
	switch t {
	case schema.Int8:
		return float64(int8(b[0]))
	case schema.UInt8:
		return float64(b[0])
	case schema.Int16:
		return float64(int16(order.Uint16(b)))
	case schema.UInt16:
		return float64(order.Uint16(b))
	case schema.Int32:
		return float64(int32(order.Uint32(b)))
	case schema.UInt32:
		return float64(order.Uint32(b))
	case schema.Float32:
		return float64(math.Float32frombits(order.Uint32(b)))
	case schema.Float64:
		return math.Float64frombits(order.Uint64(b))
	}
	return 0
}

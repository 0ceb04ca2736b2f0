package writer

import (
	"errors"
	"math"
	"strconv"

	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/schema"
)

// Write emits the next body value. Values are supplied one at a time in
// declaration order: every property of every instance of every element,
// with a list property taking its length first, then that many values.
// The value is converted to the property's declared type; an integer
// property rejects values outside its range.
func (w *Writer) Write(value float64) error {
	if w.closed {
		return w.fail(plyerr.ClosedHandle(plyerr.PhaseWrite))
	}
	if w.degraded {
		return w.degradedErr(plyerr.PhaseWrite)
	}
	if !w.headerWritten {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseWrite, "header not written"))
	}
	if w.elem >= len(w.hdr.Elements) {
		return w.fail(plyerr.New(plyerr.PhaseWrite, plyerr.KindOutOfBounds).
			Detail("all declared values already written").
			Build())
	}

	e := &w.hdr.Elements[w.elem]
	p := &e.Properties[w.prop]

	if p.IsList && w.pending < 0 {
		return w.writeListLength(e, p, value)
	}

	if err := w.writeValue(e, p, p.Type, value); err != nil {
		return err
	}
	if p.IsList {
		w.pending--
		if w.pending > 0 {
			return nil
		}
	}
	return w.advance()
}

func (w *Writer) writeListLength(e *schema.Element, p *schema.Property, value float64) error {
	if math.IsNaN(value) || value < 0 || value >= math.MaxInt64 || value != math.Trunc(value) {
		return w.fail(plyerr.New(plyerr.PhaseWrite, plyerr.KindInvalidInput).
			At(e.Name, p.Name).
			Value(value).
			Detail("list length must be a non-negative integer, got %v", value).
			Build())
	}
	n := int64(value)
	if err := w.writeValue(e, p, p.LengthType, value); err != nil {
		return err
	}
	if n == 0 {
		return w.advance()
	}
	w.pending = int(n)
	return nil
}

// advance moves the body cursor past the just-completed property.
func (w *Writer) advance() error {
	w.pending = -1
	w.prop++
	e := &w.hdr.Elements[w.elem]
	if w.prop < len(e.Properties) {
		return nil
	}
	w.prop = 0
	if w.mode == schema.ASCII {
		if err := w.pushString("\n"); err != nil {
			return err
		}
	}
	w.started = false
	w.inst++
	if w.inst >= e.Count {
		w.inst = 0
		w.elem++
		w.skipEmptyElements()
	}
	return nil
}

// skipEmptyElements moves the cursor past elements that take no body
// values: zero instances, or no properties.
func (w *Writer) skipEmptyElements() {
	for w.elem < len(w.hdr.Elements) {
		e := &w.hdr.Elements[w.elem]
		if e.Count > 0 && len(e.Properties) > 0 {
			return
		}
		w.elem++
	}
}

func (w *Writer) writeValue(e *schema.Element, p *schema.Property, t schema.Type, value float64) error {
	if w.mode == schema.ASCII {
		return w.writeASCIIValue(e, p, t, value)
	}
	return w.writeBinaryValue(e, p, t, value)
}

func (w *Writer) writeASCIIValue(e *schema.Element, p *schema.Property, t schema.Type, value float64) error {
	s, err := formatASCII(t, value)
	if err != nil {
		return w.fail(plyerr.Overflow(plyerr.PhaseWrite, e.Name, p.Name, value, t.String()))
	}
	if w.started {
		s = " " + s
	}
	if err := w.pushString(s); err != nil {
		return err
	}
	w.started = true
	return nil
}

func formatASCII(t schema.Type, value float64) (string, error) {
	switch t {
	case schema.Float32:
		return strconv.FormatFloat(value, 'g', -1, 32), nil
	case schema.Float64:
		return strconv.FormatFloat(value, 'g', -1, 64), nil
	}
	n, err := toInt(t, value)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

func (w *Writer) writeBinaryValue(e *schema.Element, p *schema.Property, t schema.Type, value float64) error {
	order := w.mode.ByteOrder()
	var buf [8]byte

	switch t {
	case schema.Float32:
		order.PutUint32(buf[:4], math.Float32bits(float32(value)))
	case schema.Float64:
		order.PutUint64(buf[:8], math.Float64bits(value))
	default:
		n, err := toInt(t, value)
		if err != nil {
			return w.fail(plyerr.Overflow(plyerr.PhaseWrite, e.Name, p.Name, value, t.String()))
		}
		switch t {
		case schema.Int8, schema.UInt8:
			buf[0] = byte(n)
		case schema.Int16, schema.UInt16:
			order.PutUint16(buf[:2], uint16(n))
		case schema.Int32, schema.UInt32:
			order.PutUint32(buf[:4], uint32(n))
		}
	}
	return w.push(buf[:t.Size()])
}

var intRanges = map[schema.Type][2]int64{
	schema.Int8:   {math.MinInt8, math.MaxInt8},
	schema.UInt8:  {0, math.MaxUint8},
	schema.Int16:  {math.MinInt16, math.MaxInt16},
	schema.UInt16: {0, math.MaxUint16},
	schema.Int32:  {math.MinInt32, math.MaxInt32},
	schema.UInt32: {0, math.MaxUint32},
}

// toInt truncates value toward zero and range-checks it against t.
func toInt(t schema.Type, value float64) (int64, error) {
	if math.IsNaN(value) {
		return 0, errRange
	}
	r := intRanges[t]
	v := math.Trunc(value)
	if v < float64(r[0]) || v > float64(r[1]) {
		return 0, errRange
	}
	return int64(v), nil
}

var errRange = errors.New("value out of range")

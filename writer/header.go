package writer

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/schema"
)

// AddElement declares a new element with the given instance count. Later
// AddProperty calls attach to it. Elements appear in the document in
// declaration order.
func (w *Writer) AddElement(name string, count int64) error {
	if err := w.declarable(); err != nil {
		return err
	}
	if !validName(name) {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "invalid element name "+strconv.Quote(name)))
	}
	if count < 0 {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "negative instance count"))
	}
	if w.hdr.Element(name) != nil {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "duplicate element "+strconv.Quote(name)))
	}
	w.hdr.Elements = append(w.hdr.Elements, schema.Element{Name: name, Count: count})
	return nil
}

// AddProperty declares a scalar property on the most recently added element.
func (w *Writer) AddProperty(name string, t schema.Type) error {
	return w.addProperty(schema.Property{Name: name, Type: t})
}

// AddListProperty declares a list property on the most recently added
// element. The length type must be an integer type.
func (w *Writer) AddListProperty(name string, lengthType, valueType schema.Type) error {
	return w.addProperty(schema.Property{
		Name:       name,
		Type:       valueType,
		IsList:     true,
		LengthType: lengthType,
	})
}

func (w *Writer) addProperty(p schema.Property) error {
	if err := w.declarable(); err != nil {
		return err
	}
	if len(w.hdr.Elements) == 0 {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "property declared before any element"))
	}
	if !validName(p.Name) {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "invalid property name "+strconv.Quote(p.Name)))
	}
	if err := p.Validate(); err != nil {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, err.Error()))
	}
	e := &w.hdr.Elements[len(w.hdr.Elements)-1]
	if e.Property(p.Name) != nil {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "duplicate property "+strconv.Quote(p.Name)))
	}
	e.Properties = append(e.Properties, p)
	return nil
}

// AddComment adds a comment line to the header.
func (w *Writer) AddComment(text string) error {
	if err := w.declarable(); err != nil {
		return err
	}
	if strings.ContainsAny(text, "\r\n") {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "comment contains a line break"))
	}
	w.hdr.Comments = append(w.hdr.Comments, text)
	return nil
}

// AddObjInfo adds an obj_info line to the header.
func (w *Writer) AddObjInfo(text string) error {
	if err := w.declarable(); err != nil {
		return err
	}
	if strings.ContainsAny(text, "\r\n") {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "obj_info contains a line break"))
	}
	w.hdr.ObjInfo = append(w.hdr.ObjInfo, text)
	return nil
}

func (w *Writer) declarable() error {
	if w.closed {
		return w.fail(plyerr.ClosedHandle(plyerr.PhaseHeader))
	}
	if w.degraded {
		return w.degradedErr(plyerr.PhaseHeader)
	}
	if w.headerWritten {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "header already written"))
	}
	return nil
}

// WriteHeader serializes the declared schema and freezes it. Body values
// are accepted afterwards.
func (w *Writer) WriteHeader() error {
	if err := w.declarable(); err != nil {
		return err
	}
	if err := w.hdr.Validate(); err != nil {
		return w.fail(plyerr.InvalidInput(plyerr.PhaseHeader, err.Error()))
	}

	var b strings.Builder
	b.WriteString("ply\n")
	b.WriteString("format " + w.mode.String() + " " + w.hdr.Version + "\n")
	for _, c := range w.hdr.Comments {
		b.WriteString("comment " + c + "\n")
	}
	for _, o := range w.hdr.ObjInfo {
		b.WriteString("obj_info " + o + "\n")
	}
	for _, e := range w.hdr.Elements {
		b.WriteString("element " + e.Name + " " + strconv.FormatInt(e.Count, 10) + "\n")
		for _, p := range e.Properties {
			if p.IsList {
				b.WriteString("property list " + p.LengthType.String() + " " + p.Type.String() + " " + p.Name + "\n")
			} else {
				b.WriteString("property " + p.Type.String() + " " + p.Name + "\n")
			}
		}
	}
	b.WriteString("end_header\n")

	if err := w.pushString(b.String()); err != nil {
		return err
	}
	w.headerWritten = true
	w.skipEmptyElements()
	Logger().Debug("header written",
		zap.String("sink", w.name),
		zap.String("format", w.mode.String()),
		zap.Int("elements", len(w.hdr.Elements)))
	return nil
}

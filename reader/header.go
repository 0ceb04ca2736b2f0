package reader

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/schema"
)

// ParseHeader reads the document header: the "ply" magic line, the format
// declaration, any comments and obj_info lines, the element and property
// declarations, and the closing end_header line. It may be called once.
func (r *Reader) ParseHeader() (*schema.Header, error) {
	if r.closed {
		return nil, r.fail(plyerr.ClosedHandle(plyerr.PhaseHeader))
	}
	if r.degraded {
		return nil, r.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "handle is in a failed state"))
	}
	if r.hdr != nil {
		return nil, r.fail(plyerr.InvalidInput(plyerr.PhaseHeader, "header already parsed"))
	}

	hdr, err := r.parseHeader()
	if err != nil {
		return nil, r.degrade(err)
	}
	r.hdr = hdr
	Logger().Debug("header parsed",
		zap.String("source", r.name),
		zap.String("format", hdr.Format.String()),
		zap.Int("elements", len(hdr.Elements)))
	return hdr, nil
}

func (r *Reader) parseHeader() (*schema.Header, error) {
	line, err := r.sc.Line()
	if err != nil {
		return nil, r.headerErr("missing magic line", err)
	}
	if line != "ply" {
		return nil, plyerr.InvalidData(plyerr.PhaseHeader, r.sc.Offset(), "not a PLY document: first line is not \"ply\"")
	}

	hdr := &schema.Header{}
	haveFormat := false
	for {
		line, err := r.sc.Line()
		if err != nil {
			return nil, r.headerErr("input ended before end_header", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if haveFormat {
				return nil, r.syntaxErr("duplicate format line")
			}
			if len(fields) != 3 {
				return nil, r.syntaxErr("format line needs a mode and a version")
			}
			mode, err := schema.ParseStorageMode(fields[1])
			if err != nil {
				return nil, r.headerErr(err.Error(), nil)
			}
			hdr.Format = mode
			hdr.Version = fields[2]
			haveFormat = true

		case "comment":
			hdr.Comments = append(hdr.Comments, strings.TrimPrefix(strings.TrimPrefix(line, "comment"), " "))

		case "obj_info":
			hdr.ObjInfo = append(hdr.ObjInfo, strings.TrimPrefix(strings.TrimPrefix(line, "obj_info"), " "))

		case "element":
			if len(fields) != 3 {
				return nil, r.syntaxErr("element line needs a name and a count")
			}
			count, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil || count < 0 {
				return nil, r.syntaxErr("invalid element count " + strconv.Quote(fields[2]))
			}
			hdr.Elements = append(hdr.Elements, schema.Element{Name: fields[1], Count: count})

		case "property":
			if len(hdr.Elements) == 0 {
				return nil, r.syntaxErr("property declared before any element")
			}
			prop, err := parseProperty(fields)
			if err != nil {
				return nil, r.headerErr(err.Error(), nil)
			}
			e := &hdr.Elements[len(hdr.Elements)-1]
			e.Properties = append(e.Properties, prop)

		case "end_header":
			if !haveFormat {
				return nil, r.syntaxErr("end_header before format line")
			}
			if err := hdr.Validate(); err != nil {
				return nil, r.headerErr(err.Error(), nil)
			}
			return hdr, nil

		default:
			return nil, r.syntaxErr("unknown header keyword " + strconv.Quote(fields[0]))
		}
	}
}

func parseProperty(fields []string) (schema.Property, error) {
	if len(fields) >= 2 && fields[1] == "list" {
		if len(fields) != 5 {
			return schema.Property{}, errors.New("list property needs a length type, a value type and a name")
		}
		lengthType, err := schema.ParseType(fields[2])
		if err != nil {
			return schema.Property{}, err
		}
		valueType, err := schema.ParseType(fields[3])
		if err != nil {
			return schema.Property{}, err
		}
		return schema.Property{Name: fields[4], Type: valueType, IsList: true, LengthType: lengthType}, nil
	}
	if len(fields) != 3 {
		return schema.Property{}, errors.New("property line needs a type and a name")
	}
	t, err := schema.ParseType(fields[1])
	if err != nil {
		return schema.Property{}, err
	}
	return schema.Property{Name: fields[2], Type: t}, nil
}

func (r *Reader) syntaxErr(detail string) error {
	return plyerr.InvalidData(plyerr.PhaseHeader, r.sc.Offset(), detail)
}

func (r *Reader) headerErr(detail string, cause error) error {
	if cause != nil && errors.Is(cause, io.EOF) {
		return plyerr.New(plyerr.PhaseHeader, plyerr.KindUnexpectedEOF).
			Offset(r.sc.Offset()).
			Detail("%s", detail).
			Build()
	}
	return plyerr.New(plyerr.PhaseHeader, plyerr.KindInvalidData).
		Offset(r.sc.Offset()).
		Detail("%s", detail).
		Cause(cause).
		Build()
}

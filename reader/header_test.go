package reader

import (
	"errors"
	"strings"
	"testing"

	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/schema"
)

const cubeHeader = `ply
format ascii 1.0
comment made by anonymous
comment this file is a cube
obj_info scanned at night
element vertex 8
property float x
property float y
property float z
element face 6
property list uchar int vertex_indices
end_header
`

func TestParseHeader(t *testing.T) {
	r, err := New(strings.NewReader(cubeHeader), nil)
	if err != nil {
		t.Fatal(err)
	}
	hdr, err := r.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if hdr.Format != schema.ASCII {
		t.Errorf("format: got %v", hdr.Format)
	}
	if hdr.Version != "1.0" {
		t.Errorf("version: got %q", hdr.Version)
	}
	if len(hdr.Comments) != 2 || hdr.Comments[1] != "this file is a cube" {
		t.Errorf("comments: got %q", hdr.Comments)
	}
	if len(hdr.ObjInfo) != 1 || hdr.ObjInfo[0] != "scanned at night" {
		t.Errorf("obj_info: got %q", hdr.ObjInfo)
	}

	v := hdr.Element("vertex")
	if v == nil || v.Count != 8 || len(v.Properties) != 3 {
		t.Fatalf("vertex element: got %+v", v)
	}
	if v.Properties[0].Type != schema.Float32 || v.Properties[0].Name != "x" {
		t.Errorf("vertex.x: got %+v", v.Properties[0])
	}

	f := hdr.Element("face")
	if f == nil || f.Count != 6 {
		t.Fatalf("face element: got %+v", f)
	}
	p := f.Properties[0]
	if !p.IsList || p.LengthType != schema.UInt8 || p.Type != schema.Int32 || p.Name != "vertex_indices" {
		t.Errorf("face list property: got %+v", p)
	}

	if r.Header() != hdr {
		t.Error("Header() does not return the parsed header")
	}
}

func TestParseHeaderCRLF(t *testing.T) {
	doc := strings.ReplaceAll(cubeHeader, "\n", "\r\n")
	r, _ := New(strings.NewReader(doc), nil)
	hdr, err := r.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader with CRLF: %v", err)
	}
	if len(hdr.Elements) != 2 {
		t.Errorf("elements: got %d", len(hdr.Elements))
	}
}

func TestParseHeaderCanonicalTypeNames(t *testing.T) {
	doc := `ply
format binary_big_endian 1.0
element vertex 1
property float32 x
property uint8 red
element face 0
property list uint32 int32 vertex_indices
end_header
`
	r, _ := New(strings.NewReader(doc), nil)
	hdr, err := r.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Format != schema.BinaryBigEndian {
		t.Errorf("format: got %v", hdr.Format)
	}
	v := hdr.Element("vertex")
	if v.Properties[1].Type != schema.UInt8 {
		t.Errorf("red: got %v", v.Properties[1].Type)
	}
	f := hdr.Element("face")
	if f.Properties[0].LengthType != schema.UInt32 {
		t.Errorf("list length type: got %v", f.Properties[0].LengthType)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind plyerr.Kind
	}{
		{"bad magic", "plz\nformat ascii 1.0\nend_header\n", plyerr.KindInvalidData},
		{"empty input", "", plyerr.KindUnexpectedEOF},
		{"no end_header", "ply\nformat ascii 1.0\n", plyerr.KindUnexpectedEOF},
		{"missing format", "ply\nend_header\n", plyerr.KindInvalidData},
		{"duplicate format", "ply\nformat ascii 1.0\nformat ascii 1.0\nend_header\n", plyerr.KindInvalidData},
		{"unknown mode", "ply\nformat binary_middle_endian 1.0\nend_header\n", plyerr.KindInvalidData},
		{"unknown keyword", "ply\nformat ascii 1.0\nfrobnicate\nend_header\n", plyerr.KindInvalidData},
		{"orphan property", "ply\nformat ascii 1.0\nproperty float x\nend_header\n", plyerr.KindInvalidData},
		{"bad count", "ply\nformat ascii 1.0\nelement vertex lots\nend_header\n", plyerr.KindInvalidData},
		{"negative count", "ply\nformat ascii 1.0\nelement vertex -4\nend_header\n", plyerr.KindInvalidData},
		{"bad type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n", plyerr.KindInvalidData},
		{"float list length", "ply\nformat ascii 1.0\nelement face 1\nproperty list float int vertex_indices\nend_header\n", plyerr.KindInvalidData},
		{"duplicate element", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement vertex 1\nproperty float y\nend_header\n", plyerr.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reported := 0
			r, err := New(strings.NewReader(tt.doc), handlerFunc(func(msg string) { reported++ }))
			if err != nil {
				t.Fatal(err)
			}
			_, err = r.ParseHeader()
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *plyerr.Error
			if !errors.As(err, &pe) {
				t.Fatalf("error type: %T", err)
			}
			if pe.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s (err: %v)", pe.Kind, tt.kind, err)
			}
			if reported != 1 {
				t.Errorf("handler reports: got %d, want 1", reported)
			}

			// A failed parse degrades the handle.
			if err := r.Read(); err == nil {
				t.Error("Read after failed parse: expected error")
			}
		})
	}
}

func TestParseHeaderTwice(t *testing.T) {
	r, _ := New(strings.NewReader(cubeHeader), nil)
	if _, err := r.ParseHeader(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ParseHeader(); err == nil {
		t.Error("second ParseHeader: expected error")
	}
}

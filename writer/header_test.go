package writer

import (
	"errors"
	"strings"
	"testing"

	plyerr "github.com/meshkit/goply/errors"
	"github.com/meshkit/goply/schema"
)

func TestWriteHeaderOutput(t *testing.T) {
	buf := make([]byte, 1024)
	var size int
	w, err := CreateToMemory(buf, &size, schema.ASCII, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.AddComment("made by goply"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddObjInfo("unit cube"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddElement("vertex", 8); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"x", "y", "z"} {
		if err := w.AddProperty(name, schema.Float32); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.AddElement("face", 6); err != nil {
		t.Fatal(err)
	}
	if err := w.AddListProperty("vertex_indices", schema.UInt8, schema.Int32); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	want := `ply
format ascii 1.0
comment made by goply
obj_info unit cube
element vertex 8
property float32 x
property float32 y
property float32 z
element face 6
property list uint8 int32 vertex_indices
end_header
`
	if got := string(buf[:size]); got != want {
		t.Errorf("header:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteHeaderNativeModeResolves(t *testing.T) {
	buf := make([]byte, 1024)
	var size int
	w, err := CreateToMemory(buf, &size, schema.BinaryNative, nil)
	if err != nil {
		t.Fatal(err)
	}
	declareVertex(t, w, 0)
	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	w.Close()

	got := string(buf[:size])
	wantMode := schema.BinaryNative.Resolve().String()
	if wantMode != "binary_little_endian" && wantMode != "binary_big_endian" {
		t.Fatalf("resolved mode: %q", wantMode)
	}
	wantLine := "format " + wantMode + " 1.0\n"
	if !strings.Contains(got, wantLine) {
		t.Errorf("header %q does not contain %q", got, wantLine)
	}
}

func TestDeclarationErrors(t *testing.T) {
	invalid := &plyerr.Error{Phase: plyerr.PhaseHeader, Kind: plyerr.KindInvalidInput}

	tests := []struct {
		name    string
		declare func(w *Writer) error
	}{
		{"property before element", func(w *Writer) error {
			return w.AddProperty("x", schema.Float32)
		}},
		{"empty element name", func(w *Writer) error {
			return w.AddElement("", 1)
		}},
		{"element name with space", func(w *Writer) error {
			return w.AddElement("my vertex", 1)
		}},
		{"negative count", func(w *Writer) error {
			return w.AddElement("vertex", -1)
		}},
		{"duplicate element", func(w *Writer) error {
			if err := w.AddElement("vertex", 1); err != nil {
				return err
			}
			return w.AddElement("vertex", 2)
		}},
		{"duplicate property", func(w *Writer) error {
			if err := w.AddElement("vertex", 1); err != nil {
				return err
			}
			if err := w.AddProperty("x", schema.Float32); err != nil {
				return err
			}
			return w.AddProperty("x", schema.Float64)
		}},
		{"float list length type", func(w *Writer) error {
			if err := w.AddElement("face", 1); err != nil {
				return err
			}
			return w.AddListProperty("vertex_indices", schema.Float32, schema.Int32)
		}},
		{"comment with newline", func(w *Writer) error {
			return w.AddComment("two\nlines")
		}},
		{"obj_info with newline", func(w *Writer) error {
			return w.AddObjInfo("two\r\nlines")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var size int
			w, err := CreateToMemory(make([]byte, 1024), &size, schema.ASCII, nil)
			if err != nil {
				t.Fatal(err)
			}
			if err := tt.declare(w); !errors.Is(err, invalid) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestDeclarationAfterWriteHeader(t *testing.T) {
	var size int
	w, _ := CreateToMemory(make([]byte, 1024), &size, schema.ASCII, nil)
	declareVertex(t, w, 1)
	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}

	if err := w.AddElement("face", 1); err == nil {
		t.Error("AddElement after WriteHeader: expected error")
	}
	if err := w.AddComment("late"); err == nil {
		t.Error("AddComment after WriteHeader: expected error")
	}
	if err := w.WriteHeader(); err == nil {
		t.Error("second WriteHeader: expected error")
	}
}

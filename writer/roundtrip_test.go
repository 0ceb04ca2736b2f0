package writer

import (
	"testing"

	"github.com/meshkit/goply/reader"
	"github.com/meshkit/goply/schema"
)

// TestRoundTrip serializes a document into memory in every storage mode and
// reads it back, requiring the exact values out that went in.
func TestRoundTrip(t *testing.T) {
	modes := []schema.StorageMode{
		schema.ASCII,
		schema.BinaryLittleEndian,
		schema.BinaryBigEndian,
		schema.BinaryNative,
	}

	vertices := [][2]float64{{1, 2.5}, {-3, 40}, {0.25, -0.125}}
	faces := [][]float64{{0, 1, 2}, {2, 1, 0}}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			buf := make([]byte, 4096)
			var size int
			w, err := CreateToMemory(buf, &size, mode, nil)
			if err != nil {
				t.Fatal(err)
			}
			if err := w.AddComment("round trip"); err != nil {
				t.Fatal(err)
			}
			if err := w.AddElement("vertex", int64(len(vertices))); err != nil {
				t.Fatal(err)
			}
			if err := w.AddProperty("x", schema.Float32); err != nil {
				t.Fatal(err)
			}
			if err := w.AddProperty("y", schema.Float64); err != nil {
				t.Fatal(err)
			}
			if err := w.AddElement("face", int64(len(faces))); err != nil {
				t.Fatal(err)
			}
			if err := w.AddListProperty("vertex_indices", schema.UInt8, schema.Int32); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteHeader(); err != nil {
				t.Fatal(err)
			}
			for _, v := range vertices {
				for _, f := range v {
					if err := w.Write(f); err != nil {
						t.Fatal(err)
					}
				}
			}
			for _, f := range faces {
				if err := w.Write(float64(len(f))); err != nil {
					t.Fatal(err)
				}
				for _, idx := range f {
					if err := w.Write(idx); err != nil {
						t.Fatal(err)
					}
				}
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			r, err := reader.OpenFromMemory(buf[:size], nil)
			if err != nil {
				t.Fatal(err)
			}
			hdr, err := r.ParseHeader()
			if err != nil {
				t.Fatalf("ParseHeader: %v", err)
			}
			if len(hdr.Comments) != 1 || hdr.Comments[0] != "round trip" {
				t.Errorf("comments: %q", hdr.Comments)
			}

			var xs, ys []float64
			n, err := r.OnValue("vertex", "x", func(arg reader.Argument) error {
				xs = append(xs, arg.Value)
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if n != int64(len(vertices)) {
				t.Errorf("vertex count: got %d", n)
			}
			r.OnValue("vertex", "y", func(arg reader.Argument) error {
				ys = append(ys, arg.Value)
				return nil
			})
			var indices []float64
			r.OnValue("face", "vertex_indices", func(arg reader.Argument) error {
				if arg.ValueIndex >= 0 {
					indices = append(indices, arg.Value)
				}
				return nil
			})
			if err := r.Read(); err != nil {
				t.Fatalf("Read: %v", err)
			}

			for i, v := range vertices {
				if float64(float32(v[0])) != xs[i] {
					t.Errorf("x[%d]: got %v, want %v", i, xs[i], v[0])
				}
				if v[1] != ys[i] {
					t.Errorf("y[%d]: got %v, want %v", i, ys[i], v[1])
				}
			}
			want := []float64{0, 1, 2, 2, 1, 0}
			if len(indices) != len(want) {
				t.Fatalf("indices: got %v", indices)
			}
			for i := range want {
				if indices[i] != want[i] {
					t.Errorf("indices[%d]: got %v, want %v", i, indices[i], want[i])
				}
			}
		})
	}
}

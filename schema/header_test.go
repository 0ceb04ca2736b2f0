package schema

import "testing"

func validHeader() *Header {
	return &Header{
		Format:  ASCII,
		Version: "1.0",
		Elements: []Element{
			{
				Name:  "vertex",
				Count: 8,
				Properties: []Property{
					{Name: "x", Type: Float32},
					{Name: "y", Type: Float32},
					{Name: "z", Type: Float32},
				},
			},
			{
				Name:  "face",
				Count: 6,
				Properties: []Property{
					{Name: "vertex_indices", Type: Int32, IsList: true, LengthType: UInt8},
				},
			},
		},
	}
}

func TestHeaderLookup(t *testing.T) {
	h := validHeader()

	e := h.Element("face")
	if e == nil {
		t.Fatal("Element(face): got nil")
	}
	if e.Count != 6 {
		t.Errorf("face count: got %d, want 6", e.Count)
	}
	if h.Element("edge") != nil {
		t.Error("Element(edge): expected nil")
	}

	p := e.Property("vertex_indices")
	if p == nil {
		t.Fatal("Property(vertex_indices): got nil")
	}
	if !p.IsList || p.LengthType != UInt8 {
		t.Errorf("vertex_indices: got %+v", p)
	}
	if e.Property("nx") != nil {
		t.Error("Property(nx): expected nil")
	}
}

func TestHeaderValidate(t *testing.T) {
	if err := validHeader().Validate(); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Header)
	}{
		{"negative count", func(h *Header) { h.Elements[0].Count = -1 }},
		{"duplicate element", func(h *Header) { h.Elements[1].Name = "vertex" }},
		{"duplicate property", func(h *Header) { h.Elements[0].Properties[1].Name = "x" }},
		{"empty element name", func(h *Header) { h.Elements[0].Name = "" }},
		{"empty property name", func(h *Header) { h.Elements[0].Properties[0].Name = "" }},
		{"float list length", func(h *Header) { h.Elements[1].Properties[0].LengthType = Float32 }},
		{"invalid value type", func(h *Header) { h.Elements[0].Properties[0].Type = Type(42) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeader()
			tt.mutate(h)
			if err := h.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

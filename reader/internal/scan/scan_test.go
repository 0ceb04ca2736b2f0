package scan

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLineTerminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unix", "ply\nformat ascii 1.0\n", []string{"ply", "format ascii 1.0"}},
		{"dos", "ply\r\nformat ascii 1.0\r\n", []string{"ply", "format ascii 1.0"}},
		{"mac", "ply\rformat ascii 1.0\r", []string{"ply", "format ascii 1.0"}},
		{"mixed", "ply\r\nformat ascii 1.0\n", []string{"ply", "format ascii 1.0"}},
		{"no final terminator", "ply\nend_header", []string{"ply", "end_header"}},
		{"empty lines", "a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(strings.NewReader(tt.input))
			for i, want := range tt.want {
				got, err := s.Line()
				if err != nil {
					t.Fatalf("line %d: %v", i, err)
				}
				if got != want {
					t.Errorf("line %d: got %q, want %q", i, got, want)
				}
			}
			if _, err := s.Line(); !errors.Is(err, io.EOF) {
				t.Errorf("after last line: got %v, want EOF", err)
			}
		})
	}
}

func TestToken(t *testing.T) {
	s := New(strings.NewReader("  1.5\t-2 \n 3e4\nlast"))
	want := []string{"1.5", "-2", "3e4", "last"}
	for i, w := range want {
		got, err := s.Token()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if got != w {
			t.Errorf("token %d: got %q, want %q", i, got, w)
		}
	}
	if _, err := s.Token(); !errors.Is(err, io.EOF) {
		t.Errorf("after last token: got %v, want EOF", err)
	}
}

func TestReadFull(t *testing.T) {
	s := New(strings.NewReader("abcdef"))
	buf := make([]byte, 4)
	if err := s.ReadFull(buf); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if string(buf) != "abcd" {
		t.Errorf("ReadFull: got %q", buf)
	}
	if s.Offset() != 4 {
		t.Errorf("Offset: got %d, want 4", s.Offset())
	}
	if err := s.ReadFull(buf); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short ReadFull: got %v, want ErrUnexpectedEOF", err)
	}
}

func TestOffsetAcrossModes(t *testing.T) {
	// A header line followed by binary payload: the scanner's offset must
	// point at the first payload byte after the line is consumed.
	s := New(strings.NewReader("end_header\n\x01\x02\x03"))
	if _, err := s.Line(); err != nil {
		t.Fatal(err)
	}
	if s.Offset() != 11 {
		t.Fatalf("offset after line: got %d, want 11", s.Offset())
	}
	b, err := s.ReadByte()
	if err != nil || b != 0x01 {
		t.Errorf("first payload byte: got 0x%02x, %v", b, err)
	}
}

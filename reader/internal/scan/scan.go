// Package scan provides a position-tracked byte scanner shared by the
// header parser and both body decoders. Header lines, ASCII tokens and
// fixed-width binary reads all consume from the same buffered cursor, so
// a binary body picks up at exactly the byte after end_header.
package scan

import (
	"bufio"
	"errors"
	"io"
)

// Scanner wraps an io.Reader with buffering and byte-offset tracking.
type Scanner struct {
	r   *bufio.Reader
	off int64
}

// New creates a Scanner over r.
func New(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.off
}

// ReadByte reads a single byte and advances the offset.
func (s *Scanner) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.off++
	return b, nil
}

// ReadFull reads exactly len(p) bytes. A short read is reported as
// io.ErrUnexpectedEOF.
func (s *Scanner) ReadFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.off += int64(n)
	if errors.Is(err, io.EOF) && n > 0 {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Line reads one header line, consuming any of the three line terminators
// (\n, \r\n, \r) and returning the line without it. io.EOF with a non-empty
// line means the input ended without a terminator; the line is still
// returned with a nil error, and the next call reports io.EOF.
func (s *Scanner) Line() (string, error) {
	var buf []byte
	for {
		b, err := s.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if b == '\n' {
			return string(buf), nil
		}
		if b == '\r' {
			// Swallow the \n of a \r\n pair.
			if next, err := s.r.Peek(1); err == nil && next[0] == '\n' {
				s.r.Discard(1)
				s.off++
			}
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

// Token skips whitespace (including line breaks) and reads one
// whitespace-delimited token. io.EOF is returned when no token remains.
func (s *Scanner) Token() (string, error) {
	var b byte
	var err error
	for {
		b, err = s.ReadByte()
		if err != nil {
			return "", err
		}
		if !isSpace(b) {
			break
		}
	}
	buf := []byte{b}
	for {
		b, err = s.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return string(buf), nil
			}
			return "", err
		}
		if isSpace(b) {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

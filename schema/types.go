package schema

import (
	"encoding/binary"
	"fmt"
)

// Type is one of the eight PLY scalar types.
type Type int

const (
	Int8 Type = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
)

var typeNames = [...]string{
	Int8:    "int8",
	UInt8:   "uint8",
	Int16:   "int16",
	UInt16:  "uint16",
	Int32:   "int32",
	UInt32:  "uint32",
	Float32: "float32",
	Float64: "float64",
}

// Legacy names from the original PLY specification. Both spellings are
// accepted on input; typeNames is the canonical output spelling.
var legacyNames = map[string]Type{
	"char":   Int8,
	"uchar":  UInt8,
	"short":  Int16,
	"ushort": UInt16,
	"int":    Int32,
	"uint":   UInt32,
	"float":  Float32,
	"double": Float64,

	"int8":    Int8,
	"uint8":   UInt8,
	"int16":   Int16,
	"uint16":  UInt16,
	"int32":   Int32,
	"uint32":  UInt32,
	"float32": Float32,
	"float64": Float64,
}

// ParseType parses a scalar type name in either canonical or legacy spelling.
func ParseType(name string) (Type, error) {
	t, ok := legacyNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown property type %q", name)
	}
	return t, nil
}

// String returns the canonical name of the type.
func (t Type) String() string {
	if t < Int8 || t > Float64 {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the eight scalar types.
func (t Type) Valid() bool {
	return t >= Int8 && t <= Float64
}

// Size returns the encoded size of the type in bytes.
func (t Type) Size() int {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// Integer reports whether t is an integer type. Only integer types may be
// used as list length types.
func (t Type) Integer() bool {
	return t >= Int8 && t <= UInt32
}

// StorageMode selects how a document's body is encoded.
type StorageMode int

const (
	ASCII StorageMode = iota
	BinaryLittleEndian
	BinaryBigEndian
	// BinaryNative resolves to the host byte order at use. It never appears
	// in a parsed header; it is a convenience for writer construction.
	BinaryNative
)

// ParseStorageMode parses the mode token of a header format line.
func ParseStorageMode(name string) (StorageMode, error) {
	switch name {
	case "ascii":
		return ASCII, nil
	case "binary_little_endian":
		return BinaryLittleEndian, nil
	case "binary_big_endian":
		return BinaryBigEndian, nil
	}
	return 0, fmt.Errorf("unknown storage mode %q", name)
}

// String returns the header spelling of the mode.
func (m StorageMode) String() string {
	switch m.Resolve() {
	case ASCII:
		return "ascii"
	case BinaryLittleEndian:
		return "binary_little_endian"
	case BinaryBigEndian:
		return "binary_big_endian"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is a known storage mode.
func (m StorageMode) Valid() bool {
	return m >= ASCII && m <= BinaryNative
}

// Resolve maps BinaryNative to the host's byte order; other modes are
// returned unchanged.
func (m StorageMode) Resolve() StorageMode {
	if m != BinaryNative {
		return m
	}
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1 {
		return BinaryLittleEndian
	}
	return BinaryBigEndian
}

// ByteOrder returns the byte order of a binary mode, or nil for ASCII.
func (m StorageMode) ByteOrder() binary.ByteOrder {
	switch m.Resolve() {
	case BinaryLittleEndian:
		return binary.LittleEndian
	case BinaryBigEndian:
		return binary.BigEndian
	}
	return nil
}

// Package schema models the PLY type system and document header.
//
// A Header declares a storage mode plus an ordered list of Elements, each
// with an instance count and ordered Properties. Properties are scalars of
// one of the eight PLY types, or lists with an integer length type. Both the
// canonical type spellings (int8, float32, ...) and the legacy ones from the
// original format description (char, float, ...) parse; output always uses
// the canonical spelling.
package schema

package schema

import "fmt"

// Property describes one property of an element. A scalar property has just a
// value type; a list property additionally carries an integer length type
// encoded before the values of each instance.
type Property struct {
	Name       string
	Type       Type // value type
	IsList     bool
	LengthType Type // meaningful only when IsList
}

// Validate checks the property's type constraints.
func (p *Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("property with empty name")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("property %q: invalid value type", p.Name)
	}
	if p.IsList {
		if !p.LengthType.Valid() {
			return fmt.Errorf("property %q: invalid list length type", p.Name)
		}
		if !p.LengthType.Integer() {
			return fmt.Errorf("property %q: list length type %s is not an integer type", p.Name, p.LengthType)
		}
	}
	return nil
}

// Element describes one element of a document and its declared instance count.
type Element struct {
	Name       string
	Count      int64
	Properties []Property
}

// Property returns the named property, or nil.
func (e *Element) Property(name string) *Property {
	for i := range e.Properties {
		if e.Properties[i].Name == name {
			return &e.Properties[i]
		}
	}
	return nil
}

// Header is the parsed or declared schema of a PLY document.
type Header struct {
	Format   StorageMode
	Version  string
	Comments []string
	ObjInfo  []string
	Elements []Element
}

// Element returns the named element, or nil.
func (h *Header) Element(name string) *Element {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i]
		}
	}
	return nil
}

// Validate checks structural constraints: non-negative counts, unique
// element and property names, and valid property types.
func (h *Header) Validate() error {
	if !h.Format.Valid() {
		return fmt.Errorf("invalid storage mode")
	}
	seen := make(map[string]bool, len(h.Elements))
	for i := range h.Elements {
		e := &h.Elements[i]
		if e.Name == "" {
			return fmt.Errorf("element with empty name")
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate element %q", e.Name)
		}
		seen[e.Name] = true
		if e.Count < 0 {
			return fmt.Errorf("element %q: negative instance count %d", e.Name, e.Count)
		}
		props := make(map[string]bool, len(e.Properties))
		for j := range e.Properties {
			p := &e.Properties[j]
			if err := p.Validate(); err != nil {
				return fmt.Errorf("element %q: %w", e.Name, err)
			}
			if props[p.Name] {
				return fmt.Errorf("element %q: duplicate property %q", e.Name, p.Name)
			}
			props[p.Name] = true
		}
	}
	return nil
}

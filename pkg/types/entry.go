// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Attr is one XML attribute of an export entry, kept as raw text.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Entry is one top-level child of the export document's root element.
// Attrs preserves source order; keys need not be uniform across entries
// with the same tag.
type Entry struct {
	// Tag is the element name (e.g. "Record", "Workout").
	Tag string `json:"tag" yaml:"tag"`

	// Attrs lists the element's attributes in document order.
	Attrs []Attr `json:"attrs" yaml:"attrs"`
}

// Attr returns the value of the named attribute and whether it was present.
func (e Entry) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// WithAttr returns a copy of e whose named attribute is set to value.
// The receiver's attribute slice is never modified.
func (e Entry) WithAttr(name, value string) Entry {
	attrs := make([]Attr, len(e.Attrs), len(e.Attrs)+1)
	copy(attrs, e.Attrs)
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return Entry{Tag: e.Tag, Attrs: attrs}
		}
	}
	return Entry{Tag: e.Tag, Attrs: append(attrs, Attr{Name: name, Value: value})}
}

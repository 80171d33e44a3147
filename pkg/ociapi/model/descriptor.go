package model

import (
	"github.com/iancoleman/strcase"
)

// Attribute maps a logical snake_case attribute name to its wire key and declared type.
type Attribute struct {
	Name    string
	WireKey string
	Type    Type

	// Default is applied by Build when the attribute is absent under both spellings.
	Default    any
	HasDefault bool
}

// Attr declares an attribute whose wire key is the lower camel case form of name.
func Attr(name string, t Type) Attribute {
	return Attribute{
		Name:    name,
		WireKey: strcase.ToLowerCamel(name),
		Type:    t,
	}
}

// Wire overrides the derived wire key.
func (a Attribute) Wire(key string) Attribute {
	a.WireKey = key
	return a
}

// WithDefault sets the value Build applies when the attribute is not supplied.
func (a Attribute) WithDefault(v any) Attribute {
	a.Default = v
	a.HasDefault = true
	return a
}

// Descriptor is the static attribute table of one model type. Descriptors are
// built at package initialization and never mutated afterwards.
type Descriptor struct {
	name   string
	attrs  []Attribute
	byName map[string]int
	byWire map[string]int

	// discriminator and subtypes are set on the root of a polymorphic family.
	discriminator string
	subtypes      map[string]string

	// base and kind are set on subtypes.
	base string
	kind string
}

// NewDescriptor declares a model type. Attribute order is preserved for encoding.
func NewDescriptor(name string, attrs ...Attribute) *Descriptor {
	d := &Descriptor{
		name:   name,
		attrs:  make([]Attribute, 0, len(attrs)),
		byName: make(map[string]int, len(attrs)),
		byWire: make(map[string]int, len(attrs)),
	}
	for _, a := range attrs {
		d.add(a)
	}
	return d
}

func (d *Descriptor) add(a Attribute) {
	if idx, ok := d.byName[a.Name]; ok {
		// subtypes may redeclare a parent attribute, the last declaration wins
		delete(d.byWire, d.attrs[idx].WireKey)
		d.attrs[idx] = a
		d.byWire[a.WireKey] = idx
		return
	}
	d.byName[a.Name] = len(d.attrs)
	d.byWire[a.WireKey] = len(d.attrs)
	d.attrs = append(d.attrs, a)
}

// Discriminated turns d into the root of a polymorphic family. attr names the
// discriminator attribute and subtypes maps discriminator values to type names.
func (d *Descriptor) Discriminated(attr string, subtypes map[string]string) *Descriptor {
	if _, ok := d.byName[attr]; !ok {
		panic("model: discriminator " + attr + " is not an attribute of " + d.name)
	}
	d.discriminator = attr
	d.subtypes = make(map[string]string, len(subtypes))
	for k, v := range subtypes {
		d.subtypes[k] = v
	}
	return d
}

// Extend declares a subtype of the polymorphic root d. The subtype carries every
// attribute of d followed by attrs, and kind is its discriminator value.
func (d *Descriptor) Extend(name, kind string, attrs ...Attribute) *Descriptor {
	if d.discriminator == "" {
		panic("model: " + d.name + " is not a polymorphic root")
	}
	sub := NewDescriptor(name, d.attrs...)
	for _, a := range attrs {
		sub.add(a)
	}
	sub.discriminator = d.discriminator
	sub.base = d.name
	sub.kind = kind
	return sub
}

func (d *Descriptor) Name() string {
	return d.name
}

// Attributes returns a copy of the attribute table.
func (d *Descriptor) Attributes() []Attribute {
	out := make([]Attribute, len(d.attrs))
	copy(out, d.attrs)
	return out
}

// Attribute looks up an attribute by its snake_case name.
func (d *Descriptor) Attribute(name string) (Attribute, bool) {
	idx, ok := d.byName[name]
	if !ok {
		return Attribute{}, false
	}
	return d.attrs[idx], true
}

// AttributeByWireKey looks up an attribute by its wire key.
func (d *Descriptor) AttributeByWireKey(key string) (Attribute, bool) {
	idx, ok := d.byWire[key]
	if !ok {
		return Attribute{}, false
	}
	return d.attrs[idx], true
}

// Discriminator returns the discriminator attribute of a polymorphic family
// member, or "" for plain types.
func (d *Descriptor) Discriminator() string {
	return d.discriminator
}

// IsPolymorphicRoot reports whether d selects subtypes during decode.
func (d *Descriptor) IsPolymorphicRoot() bool {
	return d.discriminator != "" && d.base == ""
}

// Base returns the root type name of a subtype.
func (d *Descriptor) Base() string {
	return d.base
}

// Kind returns the discriminator value a subtype represents.
func (d *Descriptor) Kind() string {
	return d.kind
}

// Subtype returns the type name registered for a discriminator value.
func (d *Descriptor) Subtype(value string) (string, bool) {
	name, ok := d.subtypes[value]
	return name, ok
}

// Subtypes returns a copy of the discriminator table.
func (d *Descriptor) Subtypes() map[string]string {
	out := make(map[string]string, len(d.subtypes))
	for k, v := range d.subtypes {
		out[k] = v
	}
	return out
}

// IsA reports whether d is name or a subtype of name.
func (d *Descriptor) IsA(name string) bool {
	return d.name == name || (d.base != "" && d.base == name)
}

func (d *Descriptor) index(name string) (int, bool) {
	idx, ok := d.byName[name]
	return idx, ok
}

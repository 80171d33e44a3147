package model

import (
	"encoding/binary"
	"time"

	"github.com/davegardnerisme/deephash"
	"github.com/google/go-cmp/cmp"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/pkg/errors"
)

// Instance holds one value per attribute of its descriptor. An attribute is
// unset until it is assigned; assigning nil makes it an explicit null, which is
// emitted by Encode.
type Instance struct {
	desc   *Descriptor
	values []any
	set    []bool
	sink   Sink
}

func newInstance(d *Descriptor, sink Sink) *Instance {
	inst := &Instance{
		desc:   d,
		values: make([]any, len(d.attrs)),
		set:    make([]bool, len(d.attrs)),
		sink:   sink,
	}
	if d.kind != "" {
		idx, _ := d.index(d.discriminator)
		inst.values[idx] = d.kind
		inst.set[idx] = true
	}
	return inst
}

// New returns an empty instance of d that discards enum diagnostics. Subtypes
// start with their discriminator attribute populated.
func (d *Descriptor) New() *Instance {
	return newInstance(d, nil)
}

func (i *Instance) Descriptor() *Descriptor {
	return i.desc
}

func (i *Instance) TypeName() string {
	return i.desc.name
}

// Set assigns v to the named attribute. Values are normalized to the declared
// type; enum values outside the declared set are stored as UnknownEnumValue.
func (i *Instance) Set(name string, v any) error {
	idx, ok := i.desc.index(name)
	if !ok {
		return errors.Wrapf(ErrUnknownAttribute, "%s.%s", i.desc.name, name)
	}
	return i.assign(idx, v)
}

// MustSet is Set for statically known attributes and values.
func (i *Instance) MustSet(name string, v any) *Instance {
	if err := i.Set(name, v); err != nil {
		panic(err)
	}
	return i
}

// SetNull marks the attribute as explicitly null.
func (i *Instance) SetNull(name string) error {
	return i.Set(name, nil)
}

// Unset reverts the attribute to never having been assigned.
func (i *Instance) Unset(name string) {
	if idx, ok := i.desc.index(name); ok {
		i.values[idx] = nil
		i.set[idx] = false
	}
}

func (i *Instance) assign(idx int, v any) error {
	a := i.desc.attrs[idx]
	n, ok := normalize(v, a.Type, func(raw string) {
		if i.sink != nil {
			i.sink.EnumCoerced(Coercion{Type: i.desc.name, Attribute: a.Name, Value: raw})
		}
	})
	if !ok {
		return &InvalidValueError{Type: i.desc.name, Attribute: a.Name, Declared: a.Type, Value: v}
	}
	i.values[idx] = n
	i.set[idx] = true
	return nil
}

// Get returns the attribute value and whether it was ever assigned.
func (i *Instance) Get(name string) (any, bool) {
	idx, ok := i.desc.index(name)
	if !ok || !i.set[idx] {
		return nil, false
	}
	return i.values[idx], true
}

// IsSet reports whether the attribute was assigned, including to null.
func (i *Instance) IsSet(name string) bool {
	_, ok := i.Get(name)
	return ok
}

// IsNull reports whether the attribute was explicitly assigned null.
func (i *Instance) IsNull(name string) bool {
	v, ok := i.Get(name)
	return ok && v == nil
}

func (i *Instance) String(name string) string {
	v, _ := i.Get(name)
	s, _ := v.(string)
	return s
}

func (i *Instance) Int(name string) int64 {
	v, _ := i.Get(name)
	n, _ := v.(int64)
	return n
}

func (i *Instance) Float(name string) float64 {
	v, _ := i.Get(name)
	f, _ := v.(float64)
	return f
}

func (i *Instance) Bool(name string) bool {
	v, _ := i.Get(name)
	b, _ := v.(bool)
	return b
}

func (i *Instance) Time(name string) time.Time {
	v, _ := i.Get(name)
	t, _ := v.(time.Time)
	return t
}

func (i *Instance) Date(name string) openapi_types.Date {
	v, _ := i.Get(name)
	d, _ := v.(openapi_types.Date)
	return d
}

func (i *Instance) Model(name string) *Instance {
	v, _ := i.Get(name)
	m, _ := v.(*Instance)
	return m
}

func (i *Instance) List(name string) []any {
	v, _ := i.Get(name)
	l, _ := v.([]any)
	return l
}

func (i *Instance) Map(name string) map[string]any {
	v, _ := i.Get(name)
	m, _ := v.(map[string]any)
	return m
}

// Strings returns a list<string> attribute.
func (i *Instance) Strings(name string) []string {
	var out []string
	for _, v := range i.List(name) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap returns a map<string,string> attribute.
func (i *Instance) StringMap(name string) map[string]string {
	m := i.Map(name)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Equal reports structural equality: same type, same set attributes, equal values.
func (i *Instance) Equal(o *Instance) bool {
	if i == nil || o == nil {
		return i == o
	}
	if i.desc.name != o.desc.name {
		return false
	}
	nested := cmp.Comparer(func(a, b *Instance) bool {
		return a.Equal(b)
	})
	for idx := range i.values {
		if i.set[idx] != o.set[idx] {
			return false
		}
		if !cmp.Equal(i.values[idx], o.values[idx], nested) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal.
func (i *Instance) Hash() uint64 {
	sum := deephash.Hash(hashable(i))
	if len(sum) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(sum)
}

// hashable flattens an instance into maps and slices of exported values; time
// values carry no exported fields so they are rendered as text.
func hashable(v any) any {
	switch t := v.(type) {
	case *Instance:
		if t == nil {
			return nil
		}
		out := map[string]any{"": t.desc.name}
		for idx, a := range t.desc.attrs {
			if t.set[idx] {
				out[a.WireKey] = hashable(t.values[idx])
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for idx, e := range t {
			out[idx] = hashable(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = hashable(e)
		}
		return out
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case openapi_types.Date:
		return t.Format(openapi_types.DateFormat)
	}
	return v
}

// Package model converts between generic JSON documents and typed model
// instances described by static Descriptors.
//
// Decoding is lenient: unknown keys are ignored, malformed optional values are
// dropped and unknown enum values become UnknownEnumValue. Encoding emits only
// the attributes that were assigned, so "never set" and "set to null" survive a
// round trip.
package model

import (
	"github.com/pkg/errors"
)

// Codec is the marshaling engine for the types of one registry.
type Codec struct {
	registry *Registry
	sink     Sink
}

type CodecOption func(*Codec)

// WithSink routes enum coercion diagnostics to sink.
func WithSink(sink Sink) CodecOption {
	return func(c *Codec) {
		c.sink = sink
	}
}

func NewCodec(registry *Registry, opts ...CodecOption) *Codec {
	c := &Codec{registry: registry}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Codec) Registry() *Registry {
	return c.registry
}

func (c *Codec) lookup(name string) (*Descriptor, error) {
	d, ok := c.registry.Lookup(name)
	if !ok {
		return nil, errors.Wrap(ErrUnknownType, name)
	}
	return d, nil
}

// New returns an empty instance of the named type.
func (c *Codec) New(typeName string) (*Instance, error) {
	d, err := c.lookup(typeName)
	if err != nil {
		return nil, err
	}
	return newInstance(d, c.sink), nil
}

// ResolveSubtype returns the concrete type a document of the polymorphic root
// typeName decodes to. Unknown or missing discriminator values resolve to the
// root itself.
func (c *Codec) ResolveSubtype(doc map[string]any, typeName string) (string, error) {
	d, err := c.lookup(typeName)
	if err != nil {
		return "", err
	}
	return c.resolve(doc, d).name, nil
}

func (c *Codec) resolve(doc map[string]any, d *Descriptor) *Descriptor {
	if !d.IsPolymorphicRoot() {
		return d
	}
	a, _ := d.Attribute(d.discriminator)
	value, _ := doc[a.WireKey].(string)
	name, ok := d.subtypes[value]
	if !ok {
		return d
	}
	sub, ok := c.registry.Lookup(name)
	if !ok {
		return d
	}
	return sub
}

// Decode builds an instance of typeName from a wire document. The only error is
// an unregistered type name; problems with the document itself never fail.
func (c *Codec) Decode(doc map[string]any, typeName string) (*Instance, error) {
	d, err := c.lookup(typeName)
	if err != nil {
		return nil, err
	}
	return c.decode(doc, d), nil
}

// DecodeList decodes every element of a JSON array. Elements that are not
// objects are skipped.
func (c *Codec) DecodeList(items []any, typeName string) ([]*Instance, error) {
	d, err := c.lookup(typeName)
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, len(items))
	for _, item := range items {
		doc, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, c.decode(doc, d))
	}
	return out, nil
}

func (c *Codec) decode(doc map[string]any, d *Descriptor) *Instance {
	d = c.resolve(doc, d)
	inst := newInstance(d, c.sink)
	for idx, a := range d.attrs {
		raw, present := doc[a.WireKey]
		if !present {
			continue
		}
		if raw == nil {
			inst.values[idx] = nil
			inst.set[idx] = true
			continue
		}
		v, ok := c.fromWire(raw, a.Type)
		if !ok {
			continue
		}
		// the value has the declared shape; assign still applies enum coercion
		_ = inst.assign(idx, v)
	}
	return inst
}

// fromWire turns nested documents into instances so the result can be normalized.
func (c *Codec) fromWire(raw any, t Type) (any, bool) {
	switch t.Kind {
	case KindModel:
		doc, ok := raw.(map[string]any)
		if !ok {
			return nil, false
		}
		d, ok := c.registry.Lookup(t.Model)
		if !ok {
			return nil, false
		}
		return c.decode(doc, d), true
	case KindList:
		items, ok := raw.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, len(items))
		for i, item := range items {
			if item == nil {
				continue
			}
			v, ok := c.fromWire(item, *t.Elem)
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	case KindMap:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			if item == nil {
				out[k] = nil
				continue
			}
			v, ok := c.fromWire(item, *t.Elem)
			if !ok {
				return nil, false
			}
			out[k] = v
		}
		return out, true
	}
	return raw, true
}

// Encode renders inst as a wire document containing every assigned attribute.
func (c *Codec) Encode(inst *Instance) map[string]any {
	return Encode(inst)
}

// Encode renders inst as a wire document containing every assigned attribute.
// It needs no registry because instances carry their descriptor.
func Encode(inst *Instance) map[string]any {
	if inst == nil {
		return nil
	}
	doc := make(map[string]any, len(inst.values))
	for idx, a := range inst.desc.attrs {
		if !inst.set[idx] && inst.values[idx] == nil {
			continue
		}
		doc[a.WireKey] = toWire(inst.values[idx])
	}
	return doc
}

func toWire(v any) any {
	switch t := v.(type) {
	case *Instance:
		if t == nil {
			return nil
		}
		return Encode(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toWire(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = toWire(e)
		}
		return out
	}
	return v
}

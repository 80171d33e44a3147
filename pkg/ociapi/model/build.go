package model

import (
	"github.com/pkg/errors"
)

// Build constructs an instance of typeName from caller supplied attributes.
// Each attribute may be keyed by its snake_case name or by its wire key, but not
// both. Nested models may be given as instances or as attribute maps, which are
// built recursively. Keys that name no attribute are ignored.
func (c *Codec) Build(typeName string, attrs map[string]any) (*Instance, error) {
	d, err := c.lookup(typeName)
	if err != nil {
		return nil, err
	}
	return c.build(attrs, d)
}

func (c *Codec) build(attrs map[string]any, d *Descriptor) (*Instance, error) {
	d, err := c.resolveAttrs(attrs, d)
	if err != nil {
		return nil, err
	}

	inst := newInstance(d, c.sink)
	for idx, a := range d.attrs {
		v, present, err := lookupBoth(attrs, d, a)
		if err != nil {
			return nil, err
		}
		if !present {
			if a.HasDefault {
				if err := inst.assign(idx, a.Default); err != nil {
					return nil, err
				}
			}
			continue
		}

		if d.kind != "" && a.Name == d.discriminator {
			if s, _ := v.(string); s != d.kind {
				return nil, errors.Wrapf(ErrInvalidArgument, "%s: %s must be %q, got %v", d.name, a.Name, d.kind, v)
			}
			continue
		}

		v, err = c.buildValue(v, a.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", d.name, a.Name)
		}
		if err := inst.assign(idx, v); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// resolveAttrs picks the subtype of a polymorphic root from the discriminator,
// accepting either spelling of it.
func (c *Codec) resolveAttrs(attrs map[string]any, d *Descriptor) (*Descriptor, error) {
	if !d.IsPolymorphicRoot() {
		return d, nil
	}
	a, _ := d.Attribute(d.discriminator)
	v, present, err := lookupBoth(attrs, d, a)
	if err != nil || !present {
		return d, err
	}
	value, _ := v.(string)
	if name, ok := d.subtypes[value]; ok {
		if sub, ok := c.registry.Lookup(name); ok {
			return sub, nil
		}
	}
	return d, nil
}

func lookupBoth(attrs map[string]any, d *Descriptor, a Attribute) (any, bool, error) {
	bySnake, snake := attrs[a.Name]
	byWire, wire := attrs[a.WireKey]
	if snake && wire && a.Name != a.WireKey {
		return nil, false, &AmbiguousAttributeError{Type: d.name, Attribute: a.Name, WireKey: a.WireKey}
	}
	if snake {
		return bySnake, true, nil
	}
	return byWire, wire, nil
}

func (c *Codec) buildValue(v any, t Type) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t.Kind {
	case KindModel:
		attrs, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		d, err := c.lookup(t.Model)
		if err != nil {
			return nil, err
		}
		return c.build(attrs, d)
	case KindList:
		items, ok := v.([]any)
		if !ok {
			return v, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			built, err := c.buildValue(item, *t.Elem)
			if err != nil {
				return nil, err
			}
			out[i] = built
		}
		return out, nil
	case KindMap:
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			built, err := c.buildValue(item, *t.Elem)
			if err != nil {
				return nil, err
			}
			out[k] = built
		}
		return out, nil
	}
	return v, nil
}

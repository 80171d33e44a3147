package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Registry resolves type names to descriptors. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	types map[string]*Descriptor
}

// NewRegistry indexes descriptors by name and checks that every nested model
// type and subtype they reference is present.
func NewRegistry(descriptors ...*Descriptor) (*Registry, error) {
	r := &Registry{types: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, dup := r.types[d.name]; dup {
			return nil, errors.Errorf("duplicate model type %s", d.name)
		}
		r.types[d.name] = d
	}

	for _, d := range descriptors {
		for _, sub := range d.subtypes {
			s, ok := r.types[sub]
			if !ok {
				return nil, errors.Errorf("%s: subtype %s is not registered", d.name, sub)
			}
			if s.base != d.name {
				return nil, errors.Errorf("%s: subtype %s does not extend it", d.name, sub)
			}
		}
		for _, a := range d.attrs {
			if err := r.checkType(a.Type); err != nil {
				return nil, errors.Wrapf(err, "%s.%s", d.name, a.Name)
			}
		}
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for package-level registries.
func MustNewRegistry(descriptors ...*Descriptor) *Registry {
	r, err := NewRegistry(descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) checkType(t Type) error {
	switch t.Kind {
	case KindModel:
		if _, ok := r.types[t.Model]; !ok {
			return errors.Wrap(ErrUnknownType, t.Model)
		}
	case KindList, KindMap:
		if t.Elem == nil {
			return errors.Errorf("%s without element type", t.Kind)
		}
		return r.checkType(*t.Elem)
	case KindEnum:
		if t.Enum == nil {
			return errors.New("enum without value set")
		}
	}
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.types[name]
	return d, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

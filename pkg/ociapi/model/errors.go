package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument classifies usage errors made while constructing models.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownType is returned when a type name is not in the registry.
	ErrUnknownType = errors.New("unknown model type")

	// ErrUnknownAttribute is returned when an attribute name is not declared by the type.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// AmbiguousAttributeError is returned by Build when one attribute is supplied
// under both its snake_case name and its wire key.
type AmbiguousAttributeError struct {
	Type      string
	Attribute string
	WireKey   string
}

func (e *AmbiguousAttributeError) Error() string {
	return fmt.Sprintf("%s: attribute %q supplied as both %q and %q", e.Type, e.Attribute, e.Attribute, e.WireKey)
}

func (e *AmbiguousAttributeError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// InvalidValueError is returned when a value cannot be stored in an attribute
// of the declared type.
type InvalidValueError struct {
	Type      string
	Attribute string
	Declared  Type
	Value     any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: attribute %q expects %s, got %T", e.Type, e.Attribute, e.Declared, e.Value)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidArgument
}

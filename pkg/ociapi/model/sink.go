package model

import (
	log "github.com/sirupsen/logrus"
)

// Coercion describes an enum value that was mapped to UnknownEnumValue.
type Coercion struct {
	Type      string
	Attribute string
	Value     string
}

// Sink receives diagnostics from the codec. A nil Sink is valid and discards
// everything.
type Sink interface {
	EnumCoerced(Coercion)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Coercion)

func (f SinkFunc) EnumCoerced(c Coercion) {
	f(c)
}

type logrusSink struct {
	logger log.FieldLogger
}

// LogrusSink reports coercions at debug level on logger.
func LogrusSink(logger log.FieldLogger) Sink {
	return logrusSink{logger: logger}
}

func (s logrusSink) EnumCoerced(c Coercion) {
	s.logger.WithFields(log.Fields{
		"type":      c.Type,
		"attribute": c.Attribute,
		"value":     c.Value,
	}).Debugf("Unknown value for '%s', mapping to '%s'", c.Attribute, UnknownEnumValue)
}

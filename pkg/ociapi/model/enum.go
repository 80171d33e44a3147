package model

// UnknownEnumValue is substituted for any enum value the client does not know
// about. Newer services may return values older clients have never seen.
const UnknownEnumValue = "UNKNOWN_ENUM_VALUE"

// EnumSet is a closed set of legal values for an enum-constrained attribute.
type EnumSet struct {
	name    string
	ordered []string
	values  map[string]struct{}
}

// NewEnumSet returns the set of values declared for the named enum.
func NewEnumSet(name string, values ...string) *EnumSet {
	e := &EnumSet{
		name:    name,
		ordered: make([]string, 0, len(values)),
		values:  make(map[string]struct{}, len(values)),
	}
	for _, v := range values {
		if _, dup := e.values[v]; dup {
			continue
		}
		e.values[v] = struct{}{}
		e.ordered = append(e.ordered, v)
	}
	return e
}

func (e *EnumSet) Name() string {
	return e.name
}

// Values returns the declared values in declaration order, without the sentinel.
func (e *EnumSet) Values() []string {
	out := make([]string, len(e.ordered))
	copy(out, e.ordered)
	return out
}

// Contains reports whether v is a declared value. The sentinel is always accepted.
func (e *EnumSet) Contains(v string) bool {
	if v == UnknownEnumValue {
		return true
	}
	_, ok := e.values[v]
	return ok
}

// Coerce returns v if it is a declared value, otherwise UnknownEnumValue and false.
func (e *EnumSet) Coerce(v string) (string, bool) {
	if e.Contains(v) {
		return v, true
	}
	return UnknownEnumValue, false
}

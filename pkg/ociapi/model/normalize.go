package model

import (
	"math"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// number is satisfied by encoding/json.Number and jsoniter.Number.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// normalize converts v into the canonical in-memory representation of t:
// int64 for integers, float64 for numbers, time.Time for timestamps,
// openapi_types.Date for dates, []any for lists and map[string]any for maps.
// Enum values outside the declared set become UnknownEnumValue and are reported
// through coerced.
func normalize(v any, t Type, coerced func(string)) (any, bool) {
	if v == nil {
		return nil, true
	}
	switch t.Kind {
	case KindAny:
		return v, true
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		if t.Enum == nil {
			return s, true
		}
		out, known := t.Enum.Coerce(s)
		if !known && coerced != nil {
			coerced(s)
		}
		return out, true
	case KindInteger:
		return toInt64(v)
	case KindNumber:
		return toFloat64(v)
	case KindBoolean:
		b, ok := v.(bool)
		return b, ok
	case KindTimestamp:
		return toTime(v)
	case KindDate:
		return toDate(v)
	case KindModel:
		inst, ok := v.(*Instance)
		if !ok {
			return nil, false
		}
		if inst == nil {
			return nil, true
		}
		return inst, inst.desc.IsA(t.Model)
	case KindList:
		return normalizeList(v, *t.Elem, coerced)
	case KindMap:
		return normalizeMap(v, *t.Elem, coerced)
	}
	return nil, false
}

func normalizeList(v any, elem Type, coerced func(string)) (any, bool) {
	var items []any
	switch l := v.(type) {
	case []any:
		items = l
	case []string:
		items = make([]any, len(l))
		for i, s := range l {
			items[i] = s
		}
	case []*Instance:
		items = make([]any, len(l))
		for i, m := range l {
			items[i] = m
		}
	default:
		return nil, false
	}

	out := make([]any, len(items))
	for i, item := range items {
		n, ok := normalize(item, elem, coerced)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func normalizeMap(v any, elem Type, coerced func(string)) (any, bool) {
	out := make(map[string]any)
	switch m := v.(type) {
	case map[string]any:
		for k, item := range m {
			n, ok := normalize(item, elem, coerced)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
	case map[string]string:
		for k, item := range m {
			n, ok := normalize(item, elem, coerced)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
	default:
		return nil, false
	}
	return out, true
}

func toInt64(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	case number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return integral(f)
	}
	return nil, false
}

// integral rejects floats outside [-2^63, 2^63); float64(math.MaxInt64) rounds
// up to 2^63, which int64 cannot hold.
func integral(f float64) (any, bool) {
	if f != math.Trunc(f) || f >= 1<<63 || f < -(1<<63) {
		return nil, false
	}
	return int64(f), true
}

func toFloat64(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case number:
		f, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func toTime(v any) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil, false
		}
		return parsed, true
	}
	return nil, false
}

func toDate(v any) (any, bool) {
	switch d := v.(type) {
	case openapi_types.Date:
		return d, true
	case time.Time:
		return openapi_types.Date{Time: d}, true
	case string:
		parsed, err := time.Parse(openapi_types.DateFormat, d)
		if err != nil {
			return nil, false
		}
		return openapi_types.Date{Time: parsed}, true
	}
	return nil, false
}

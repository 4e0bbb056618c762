package mustache

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

// Enumerates the shapes a context value may take.
const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is the renderer's only input data type: a tagged union over the
// shapes a data context may contain. The zero Value has KindNil, which is
// falsy and renders as empty output. Values are immutable by convention;
// the renderer never modifies one.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

// String returns a Value holding a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a Value holding a numeric scalar.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a Value holding a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a Value holding an ordered sequence.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map returns a Value holding a string-keyed mapping. The map is used as-is;
// callers must not modify it after handing it over.
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload, or "" when v is not a string.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload, or 0 when v is not a number.
func (v Value) Num() float64 { return v.num }

// Bool returns the boolean payload, or false when v is not a boolean.
func (v Value) Bool() bool { return v.b }

// Len returns the element count for lists and maps, and 0 for every other
// kind.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Items returns the list payload, or nil when v is not a list.
func (v Value) Items() []Value { return v.list }

// Key looks name up in a map value. It reports false for non-map values and
// missing keys alike.
func (v Value) Key(name string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	item, ok := v.m[name]
	return item, ok
}

// Truthy reports whether v renders a section body: false for nil, false
// booleans, empty strings, zero numbers and empty collections.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0
	case KindBool:
		return v.b
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.m) > 0
	default:
		return false
	}
}

// stringify converts v to its variable-output form. Scalars stringify
// directly; booleans, collections and nil are not valid variable targets
// and produce empty output.
func (v Value) stringify() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// FromAny converts a value produced by a generic decoder (encoding/json,
// yaml.v3) into a Value. It accepts nil, booleans, strings, Go integer and
// float types, []any and map[string]any, recursively. A Value passes
// through unchanged.
func FromAny(src any) (Value, error) {
	switch src := src.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return src, nil
	case string:
		return String(src), nil
	case bool:
		return Bool(src), nil
	case float64:
		return Number(src), nil
	case float32:
		return Number(float64(src)), nil
	case int:
		return Number(float64(src)), nil
	case int64:
		return Number(float64(src)), nil
	case uint64:
		return Number(float64(src)), nil
	case []any:
		items := make([]Value, 0, len(src))
		for i, raw := range src {
			item, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, item)
		}
		return List(items...), nil
	case map[string]any:
		m := make(map[string]Value, len(src))
		for key, raw := range src {
			item, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			m[key] = item
		}
		return Map(m), nil
	default:
		return Value{}, fmt.Errorf("unsupported context value type %T", src)
	}
}

// AsAny converts v back into the generic form used by encoding/json and
// yaml.v3, for serializing an extracted context.
func (v Value) AsAny() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.AsAny()
		}
		return items
	case KindMap:
		m := make(map[string]any, len(v.m))
		for key, item := range v.m {
			m[key] = item.AsAny()
		}
		return m
	default:
		return nil
	}
}

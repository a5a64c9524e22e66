package rich

import "encoding/json"

// ValueKind tags the active variant of a dynamically-typed Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a dynamically-typed node: a closed tagged union with one arm per
// supported shape. The zero Value is null. Values are built once, during
// decoding, and are immutable afterwards.
type Value struct {
	kind ValueKind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  map[string]Value
	keys []string // object keys in encounter order
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number builds a number value from its textual representation.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array builds an array value from items in order.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Member is one object entry used by Object.
type Member struct {
	Key   string
	Value Value
}

// Object builds an object value; member order is preserved as encounter
// order. Later duplicates overwrite earlier values but keep the original
// position.
func Object(members ...Member) Value {
	obj := make(map[string]Value, len(members))
	keys := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := obj[m.Key]; !ok {
			keys = append(keys, m.Key)
		}
		obj[m.Key] = m.Value
	}
	return Value{kind: KindObject, obj: obj, keys: keys}
}

// Kind reports the active variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean arm; valid only when Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the number arm; valid only when Kind is KindNumber.
func (v Value) Number() json.Number { return v.num }

// Text returns the string arm; valid only when Kind is KindString.
func (v Value) Text() string { return v.str }

// Items returns the array arm; valid only when Kind is KindArray. The slice
// is shared, not copied; callers must not mutate it.
func (v Value) Items() []Value { return v.arr }

// Len returns the number of children of an array or object node.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Keys returns object keys in encounter order. The slice is shared, not
// copied.
func (v Value) Keys() []string { return v.keys }

// Field looks up an object member by key.
func (v Value) Field(key string) (Value, bool) {
	f, ok := v.obj[key]
	return f, ok
}

// Equal reports deep structural equality. Object key order does not
// participate; numbers compare by their textual representation.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, f := range v.obj {
			of, ok := other.obj[k]
			if !ok || !f.Equal(of) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts the value into the equivalent any tree
// (nil/bool/json.Number/string/[]any/map[string]any), copying containers.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, it := range v.arr {
			out[i] = it.Interface()
		}
		return out
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, f := range v.obj {
			m[k] = f.Interface()
		}
		return m
	default:
		return nil
	}
}

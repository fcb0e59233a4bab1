// Package jvalue defines the in-memory JSON value representation consumed
// and produced by the jsonpath query engine.
//
// A Value is the tagged union Null | Bool | Number | String | Array |
// Object. Object preserves the order in which its members were added, so
// that evaluation results have a deterministic, reproducible member order
// instead of depending on Go's randomized map iteration.
package jvalue

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Kind identifies which alternative of the Value union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
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

// NumberKind identifies which internal representation a Number value holds.
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberUint
	NumberFloat
)

// A Number is a JSON numeric value. It keeps track of whether it was built
// from a signed integer, an unsigned integer, or a floating-point value, but
// Equal and ordering comparisons always operate on the numeric value itself.
type Number struct {
	kind NumberKind
	i    int64
	u    uint64
	f    float64
}

// Int returns a Number holding a signed 64-bit integer.
func Int(v int64) Number { return Number{kind: NumberInt, i: v} }

// Uint returns a Number holding an unsigned 64-bit integer.
func Uint(v uint64) Number { return Number{kind: NumberUint, u: v} }

// Float returns a Number holding a 64-bit float.
func Float(v float64) Number { return Number{kind: NumberFloat, f: v} }

// Kind reports which representation n was built with.
func (n Number) Kind() NumberKind { return n.kind }

// Float64 coerces n to a float64, the representation every ordering
// comparator operates on (spec.md §4.5: "compare as floating-point").
func (n Number) Float64() float64 {
	switch n.kind {
	case NumberInt:
		return float64(n.i)
	case NumberUint:
		return float64(n.u)
	default:
		return n.f
	}
}

func (n Number) String() string {
	switch n.kind {
	case NumberInt:
		return fmt.Sprintf("%d", n.i)
	case NumberUint:
		return fmt.Sprintf("%d", n.u)
	default:
		return fmt.Sprintf("%g", n.f)
	}
}

// equal reports whether n and other denote the same numeric value,
// regardless of internal representation.
func (n Number) equal(other Number) bool {
	if n.kind == NumberFloat || other.kind == NumberFloat {
		return n.Float64() == other.Float64()
	}
	if n.kind == NumberInt && other.kind == NumberInt {
		return n.i == other.i
	}
	if n.kind == NumberUint && other.kind == NumberUint {
		return n.u == other.u
	}
	// Mixed signed/unsigned integers: compare via float64, which is exact
	// for every value that fits in an int64/uint64 pair that matters here.
	return n.Float64() == other.Float64()
}

// A Member is a single key/value pair of an Object, in the position it was
// added.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  []Value
	obj  []Member
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// NewBool returns a Value holding a boolean.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewNumber returns a Value holding a Number.
func NewNumber(n Number) Value { return Value{kind: KindNumber, num: n} }

// NewString returns a Value holding a string.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewArray returns a Value holding an array of elements, in order.
func NewArray(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// NewObject returns a Value holding an object with the given members, in
// the order given.
func NewObject(members ...Member) Value {
	return Value{kind: KindObject, obj: members}
}

// Kind reports which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns v's boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns v's numeric payload. Only meaningful when Kind() == KindNumber.
func (v Value) Number() Number { return v.num }

// Str returns v's string payload. Only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.str }

// Array returns v's element slice. Only meaningful when Kind() == KindArray.
// The returned slice must not be mutated by callers.
func (v Value) Array() []Value { return v.arr }

// Object returns v's members, in insertion order. Only meaningful when
// Kind() == KindObject. The returned slice must not be mutated by callers.
func (v Value) Object() []Member { return v.obj }

// Find returns the value of the first member of v named key, and true, or
// the zero Value and false if v is not an object or has no such member.
func (v Value) Find(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len reports the length of v: the number of elements for an array, the
// number of members for an object, the rune count for a string, and 0 for
// everything else (used by the `size` filter comparator, spec.md §4.5).
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	case KindString:
		return len([]rune(v.str))
	default:
		return 0
	}
}

// Equal reports whether v and other are structurally equal JSON values,
// the semantics required by the `==`/`!=`/`in`/`nin`/... comparators in
// spec.md §4.5.
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
		return v.num.equal(other.num)
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
		for _, m := range v.obj {
			ov, ok := other.Find(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromAny converts a Go value of the shape produced by
// encoding/json.Unmarshal into an any (nil, bool, float64, string, []any,
// map[string]any), as well as int64 and uint64, into a Value tree. Any other
// type, json.Number included, is an error.
//
// A decoded map has no recoverable insertion order, so FromAny sorts its
// keys before building the resulting Object. This is the one place the
// "deterministic... object iteration order" guarantee in spec.md §5 is
// necessarily approximated, since nothing downstream of encoding/json can
// recover the order the keys appeared in the source text.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null, nil
	case bool:
		return NewBool(t), nil
	case float64:
		return NewNumber(Float(t)), nil
	case int64:
		return NewNumber(Int(t)), nil
	case uint64:
		return NewNumber(Uint(t)), nil
	case string:
		return NewString(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = ev
		}
		return NewArray(elems...), nil
	case map[string]any:
		keys := maps.Keys(t)
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			mv, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Member{Key: k, Value: mv}
		}
		return NewObject(members...), nil
	default:
		return Value{}, fmt.Errorf("jvalue: unsupported Go type %T", v)
	}
}

// ToAny converts v back into the plain Go representation accepted by
// encoding/json.Marshal.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		switch v.num.kind {
		case NumberInt:
			return v.num.i
		case NumberUint:
			return v.num.u
		default:
			return v.num.f
		}
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = ToAny(e)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for _, m := range v.obj {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	default:
		return nil
	}
}

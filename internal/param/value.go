package param

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Value is an immutable tagged value. The zero Value is invalid; use one of
// the constructors.
type Value struct {
	typ    Type
	num    float64
	str    string
	b      bool
	ints   []int64
	floats []float64
	ref    uint64
}

// Outputs is the ordered result of one node evaluation. Slices returned by a
// graph are shared with its cache and must not be modified.
type Outputs []Value

func NumberValue(v float64) Value { return Value{typ: Number, num: v} }

func StringValue(v string) Value { return Value{typ: String, str: v} }

func BoolValue(v bool) Value { return Value{typ: Bool, b: v} }

// IntArrayValue copies v.
func IntArrayValue(v []int64) Value { return Value{typ: IntArray, ints: slices.Clone(v)} }

// FloatArrayValue copies v.
func FloatArrayValue(v []float64) Value { return Value{typ: FloatArray, floats: slices.Clone(v)} }

// NodeRefValue references the node with the given identifier.
func NodeRefValue(id uint64) Value { return Value{typ: NodeRef, ref: id} }

func EmptyValue() Value { return Value{typ: Empty} }

// Type returns the tag of the value.
func (v Value) Type() Type { return v.typ }

func (v Value) AsNumber() (float64, bool) { return v.num, v.typ == Number }

func (v Value) AsString() (string, bool) { return v.str, v.typ == String }

func (v Value) AsBool() (bool, bool) { return v.b, v.typ == Bool }

// AsIntArray returns a copy of the payload.
func (v Value) AsIntArray() ([]int64, bool) {
	if v.typ != IntArray {
		return nil, false
	}
	return slices.Clone(v.ints), true
}

// AsFloatArray returns a copy of the payload.
func (v Value) AsFloatArray() ([]float64, bool) {
	if v.typ != FloatArray {
		return nil, false
	}
	return slices.Clone(v.floats), true
}

func (v Value) AsNodeRef() (uint64, bool) { return v.ref, v.typ == NodeRef }

// Equal reports whether both values carry the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case Number:
		return v.num == o.num
	case String:
		return v.str == o.str
	case Bool:
		return v.b == o.b
	case IntArray:
		return slices.Equal(v.ints, o.ints)
	case FloatArray:
		return slices.Equal(v.floats, o.floats)
	case NodeRef:
		return v.ref == o.ref
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.typ {
	case Number:
		return "Number(" + strconv.FormatFloat(v.num, 'g', -1, 64) + ")"
	case String:
		return "String(" + strconv.Quote(v.str) + ")"
	case Bool:
		return "Bool(" + strconv.FormatBool(v.b) + ")"
	case IntArray:
		parts := make([]string, len(v.ints))
		for i, n := range v.ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return "IntArray[" + strings.Join(parts, ", ") + "]"
	case FloatArray:
		parts := make([]string, len(v.floats))
		for i, n := range v.floats {
			parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return "FloatArray[" + strings.Join(parts, ", ") + "]"
	case NodeRef:
		return fmt.Sprintf("NodeRef(%d)", v.ref)
	case Empty:
		return "Empty"
	default:
		return "Invalid"
	}
}

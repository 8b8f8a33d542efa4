// This file converts parameter values to and from the cty values a host
// runtime sees.

package host

import (
	"fmt"
	"math"
	"math/big"

	"github.com/vk/nodegrid/internal/param"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToCty converts a parameter value to its host representation. Arrays become
// lists of numbers and node references become numbers. cty cannot hold NaN,
// so a NaN number or array element becomes a null number.
func ToCty(v param.Value) cty.Value {
	switch v.Type() {
	case param.Number:
		n, _ := v.AsNumber()
		return numberVal(n)
	case param.String:
		s, _ := v.AsString()
		return cty.StringVal(s)
	case param.Bool:
		b, _ := v.AsBool()
		return cty.BoolVal(b)
	case param.IntArray:
		ints, _ := v.AsIntArray()
		elems := make([]cty.Value, len(ints))
		for i, n := range ints {
			elems[i] = cty.NumberIntVal(n)
		}
		return numberList(elems)
	case param.FloatArray:
		floats, _ := v.AsFloatArray()
		elems := make([]cty.Value, len(floats))
		for i, n := range floats {
			elems[i] = numberVal(n)
		}
		return numberList(elems)
	case param.NodeRef:
		ref, _ := v.AsNodeRef()
		return cty.NumberUIntVal(ref)
	case param.Empty:
		return cty.EmptyObjectVal
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func numberVal(n float64) cty.Value {
	if math.IsNaN(n) {
		return cty.NullVal(cty.Number)
	}
	return cty.NumberFloatVal(n)
}

func numberList(elems []cty.Value) cty.Value {
	if len(elems) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	return cty.ListVal(elems)
}

// FromCty converts a host value to a parameter value, inferring the tag from
// the cty type. Lists and tuples of numbers become FloatArray, or IntArray
// when every element is an integer that fits in int64.
func FromCty(v cty.Value) (param.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return param.Value{}, fmt.Errorf("%w: value is null or unknown", ErrInvalidValue)
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return param.StringValue(v.AsString()), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return param.Value{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return param.NumberValue(f), nil

	case ty == cty.Bool:
		return param.BoolValue(v.True()), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		if !numericElements(ty) {
			return param.Value{}, fmt.Errorf("%w: arrays must contain only numbers, got %s", ErrInvalidValue, ty.FriendlyName())
		}
		list, err := convert.Convert(v, cty.List(cty.Number))
		if err != nil {
			return param.Value{}, fmt.Errorf("%w: arrays must contain only numbers: %v", ErrInvalidValue, err)
		}
		return arrayFromList(list)

	case ty.IsObjectType() && len(ty.AttributeTypes()) == 0:
		return param.EmptyValue(), nil

	default:
		return param.Value{}, fmt.Errorf("%w: unsupported type %s", ErrInvalidValue, ty.FriendlyName())
	}
}

func numericElements(ty cty.Type) bool {
	if ty.IsTupleType() {
		for _, et := range ty.TupleElementTypes() {
			if et != cty.Number {
				return false
			}
		}
		return true
	}
	return ty.ElementType() == cty.Number
}

// arrayFromList builds an IntArray when every element is an exact int64 and
// a FloatArray otherwise. An empty list is a FloatArray.
func arrayFromList(list cty.Value) (param.Value, error) {
	var floats []float64
	ints := make([]int64, 0, list.LengthInt())
	allInts := true

	for it := list.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || !elem.IsKnown() {
			return param.Value{}, fmt.Errorf("%w: array element is null or unknown", ErrInvalidValue)
		}
		bf := elem.AsBigFloat()
		f, _ := bf.Float64()
		floats = append(floats, f)
		if allInts {
			if n, acc := bf.Int64(); acc == big.Exact && bf.IsInt() {
				ints = append(ints, n)
			} else {
				allInts = false
			}
		}
	}

	if allInts && len(ints) > 0 {
		return param.IntArrayValue(ints), nil
	}
	return param.FloatArrayValue(floats), nil
}

// ToNative converts a cty value to plain Go values: string, float64, bool,
// []any and map[string]any. Null and unknown values become nil.
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert cty.Number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for native conversion: %s", ty.FriendlyName())
	}
}

// FromNative converts plain Go values into a cty value. Slices of any become
// tuples and maps of any become objects; other values have their type
// implied. NaN and infinite floats are rejected.
func FromNative(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return cty.NilVal, fmt.Errorf("%w: number must be finite, got %v", ErrInvalidValue, t)
		}
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return cty.NilVal, fmt.Errorf("%w: number must be finite, got %v", ErrInvalidValue, t)
		}
	case []any:
		elems := make([]cty.Value, len(t))
		for i, e := range t {
			cv, err := FromNative(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in element %d: %w", i, err)
			}
			elems[i] = cv
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(t))
		for k, e := range t {
			cv, err := FromNative(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", k, err)
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: unable to infer type: %v", ErrInvalidValue, err)
	}
	out, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return out, nil
}

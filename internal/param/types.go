// Package param defines the parameter type system shared by every node: the
// type tags that classify ports, the tagged value union that flows along
// links, and the descriptors that make up a node's schema.
//
// Types are compared by tag only. There is no implicit coercion between
// tags, and array tags carry no nested element description beyond the tag
// itself.
package param

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Type is the tag of a port or value.
type Type int

const (
	// Invalid is the zero Type and never appears in a valid schema.
	Invalid Type = iota
	IntArray
	FloatArray
	String
	Number
	Bool
	// NodeRef carries the identifier of another node in the same graph.
	NodeRef
	// Empty is a value with no payload.
	Empty
)

var typeTokens = map[Type]string{
	IntArray:   "int_array",
	FloatArray: "float_array",
	String:     "string",
	Number:     "number",
	Bool:       "bool",
	NodeRef:    "node",
	Empty:      "empty",
}

// String returns the manifest token for the type.
func (t Type) String() string {
	if s, ok := typeTokens[t]; ok {
		return s
	}
	return fmt.Sprintf("invalid(%d)", int(t))
}

// GoName returns the identifier of the constant in this package, used by
// code generators.
func (t Type) GoName() string {
	switch t {
	case IntArray:
		return "IntArray"
	case FloatArray:
		return "FloatArray"
	case String:
		return "String"
	case Number:
		return "Number"
	case Bool:
		return "Bool"
	case NodeRef:
		return "NodeRef"
	case Empty:
		return "Empty"
	default:
		return "Invalid"
	}
}

// Valid reports whether t is one of the declared tags.
func (t Type) Valid() bool {
	_, ok := typeTokens[t]
	return ok
}

// ParseType maps a manifest token to its tag. Unknown tokens are an error.
func ParseType(token string) (Type, error) {
	for t, s := range typeTokens {
		if s == token {
			return t, nil
		}
	}
	return Invalid, fmt.Errorf("unknown parameter type %q", token)
}

// Compatible reports whether a source output of type source may feed a
// target input of type target.
func Compatible(source, target Type) bool {
	return source.Valid() && source == target
}

// CtyType returns the cty type used to represent values of this tag to a host.
func (t Type) CtyType() cty.Type {
	switch t {
	case IntArray, FloatArray:
		return cty.List(cty.Number)
	case String:
		return cty.String
	case Number, NodeRef:
		return cty.Number
	case Bool:
		return cty.Bool
	case Empty:
		return cty.EmptyObject
	default:
		return cty.DynamicPseudoType
	}
}

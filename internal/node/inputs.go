package node

import (
	"errors"
	"fmt"

	"github.com/vk/nodegrid/internal/param"
)

var (
	// ErrMissingInput is returned when a required input has no incoming link.
	ErrMissingInput = errors.New("input is not connected")
	// ErrWrongType is returned when an input carries an unexpected tag.
	ErrWrongType = errors.New("input has the wrong type")
)

// InputError reports which slot failed extraction.
type InputError struct {
	Index int
	Want  param.Type
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %d (%s): %v", e.Index, e.Want, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Inputs is the slot vector handed to Node.Eval.
type Inputs []*param.Value

// Present reports whether slot i has a value.
func (in Inputs) Present(i int) bool {
	return i >= 0 && i < len(in) && in[i] != nil
}

// Value returns slot i and checks its tag.
func (in Inputs) Value(i int, want param.Type) (param.Value, error) {
	if !in.Present(i) {
		return param.Value{}, &InputError{Index: i, Want: want, Err: ErrMissingInput}
	}
	v := *in[i]
	if v.Type() != want {
		return param.Value{}, &InputError{Index: i, Want: want, Err: fmt.Errorf("%w: got %s", ErrWrongType, v.Type())}
	}
	return v, nil
}

func (in Inputs) Number(i int) (float64, error) {
	v, err := in.Value(i, param.Number)
	if err != nil {
		return 0, err
	}
	n, _ := v.AsNumber()
	return n, nil
}

func (in Inputs) String(i int) (string, error) {
	v, err := in.Value(i, param.String)
	if err != nil {
		return "", err
	}
	s, _ := v.AsString()
	return s, nil
}

func (in Inputs) Bool(i int) (bool, error) {
	v, err := in.Value(i, param.Bool)
	if err != nil {
		return false, err
	}
	b, _ := v.AsBool()
	return b, nil
}

// BoolOr returns def when slot i is unconnected.
func (in Inputs) BoolOr(i int, def bool) (bool, error) {
	if !in.Present(i) {
		return def, nil
	}
	return in.Bool(i)
}

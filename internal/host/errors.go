package host

import (
	"errors"
	"fmt"

	"github.com/vk/nodegrid/internal/nodegraph"
)

// Code identifies a class of failure to the embedding runtime. Codes are
// stable; messages are not.
type Code string

const (
	CodeSourceNodeNotFound Code = "source_node_not_found"
	CodeTargetNodeNotFound Code = "target_node_not_found"
	CodeSelfConnect        Code = "self_connect"
	CodeParameterMismatch  Code = "parameter_mismatch"
	CodePortOutOfRange     Code = "port_out_of_range"
	CodeLinkNotFound       Code = "link_not_found"
	CodeNodeNotFound       Code = "node_not_found"
	CodeCycleDetected      Code = "cycle_detected"
	CodeExecFailure        Code = "exec_failure"
	CodeUnknownNodeType    Code = "unknown_node_type"
	CodeInvalidValue       Code = "invalid_value"
	CodeNotSettable        Code = "not_settable"
	CodeInternal           Code = "internal"
)

var (
	// ErrUnknownNodeType is returned by Session.Add for unregistered names.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrInvalidValue is returned when a host value cannot be represented
	// as a parameter value.
	ErrInvalidValue = errors.New("invalid value")
)

// Error is the only error type a Session returns.
type Error struct {
	Code    Code
	Message string
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// codes is checked in order. Exec failures come before port range errors
// because a short node output reports both.
var codes = []struct {
	err  error
	code Code
}{
	{nodegraph.ErrCycleDetected, CodeCycleDetected},
	{nodegraph.ErrExecFailure, CodeExecFailure},
	{nodegraph.ErrSourceNodeNotFound, CodeSourceNodeNotFound},
	{nodegraph.ErrTargetNodeNotFound, CodeTargetNodeNotFound},
	{nodegraph.ErrSelfConnect, CodeSelfConnect},
	{nodegraph.ErrParameterMismatch, CodeParameterMismatch},
	{nodegraph.ErrPortOutOfRange, CodePortOutOfRange},
	{nodegraph.ErrLinkNotFound, CodeLinkNotFound},
	{nodegraph.ErrNodeNotFound, CodeNodeNotFound},
	{nodegraph.ErrNotSettable, CodeNotSettable},
	{ErrUnknownNodeType, CodeUnknownNodeType},
	{ErrInvalidValue, CodeInvalidValue},
}

// translate wraps err in an *Error. Errors matching none of the known kinds
// get the fallback code.
func translate(err error, fallback Code) *Error {
	if err == nil {
		return nil
	}
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return &Error{Code: c.code, Message: err.Error(), Err: err}
		}
	}
	return &Error{Code: fallback, Message: err.Error(), Err: err}
}

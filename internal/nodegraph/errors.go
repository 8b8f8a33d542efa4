package nodegraph

import (
	"errors"
	"fmt"

	"github.com/vk/nodegrid/internal/node"
)

var (
	ErrSourceNodeNotFound = errors.New("source node not found")
	ErrTargetNodeNotFound = errors.New("target node not found")
	ErrSelfConnect        = errors.New("source node is the same as the target node")
	ErrParameterMismatch  = errors.New("parameter types do not match")
	ErrPortOutOfRange     = errors.New("port index out of range")

	// ErrLinkNotFound is returned by Disconnect when the input had no link.
	ErrLinkNotFound = errors.New("no link at input port")

	ErrNodeNotFound  = errors.New("node not found")
	ErrExecFailure   = errors.New("node evaluation failed")
	ErrCycleDetected = errors.New("cycle detected")

	ErrNotSettable = errors.New("node does not accept configuration")
)

// ConnectError is returned by Connect.
type ConnectError struct {
	Source node.Port
	Target node.Port
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s -> %s: %v", e.Source, e.Target, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// DisconnectError is returned by Disconnect.
type DisconnectError struct {
	Target node.Port
	Err    error
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("disconnect %s: %v", e.Target, e.Err)
}

func (e *DisconnectError) Unwrap() error { return e.Err }

// EvalError is returned by Outputs. Err is the kind (ErrNodeNotFound,
// ErrCycleDetected or ErrExecFailure); Cause carries the node's own failure
// for ErrExecFailure. errors.Is matches both.
type EvalError struct {
	Node  node.ID
	Err   error
	Cause error
}

func (e *EvalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("node %d: %v: %v", e.Node, e.Err, e.Cause)
	}
	return fmt.Sprintf("node %d: %v", e.Node, e.Err)
}

func (e *EvalError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

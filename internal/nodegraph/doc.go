// Package nodegraph implements a mutable dataflow graph of typed nodes,
// evaluated lazily with per-node memoization.
//
// # Structure
//
// A Graph owns three things:
//   - an arena of node instances with their schemas, indexed by node.ID
//   - a link table mapping each connected input port to its single source
//     output port, plus the reverse fan-out index from source to targets
//   - an outputstore.Store caching the last successful outputs of each node
//
// # Evaluation
//
// Outputs pulls values through the link table. Sources that are not cached
// are evaluated first, using an explicit worklist instead of recursion, so
// evaluation depth does not depend on the Go call stack. A per-call visiting
// set detects cycles and reports ErrCycleDetected.
//
// Only successful results are cached. A failing node is evaluated again on
// the next read.
//
// # Invalidation
//
// Invalidating a node drops its cache entry and the entries of every node
// reachable from it through the fan-out index. Connect, Disconnect and
// Configure invalidate the affected node this way, so no reader can observe
// a value computed from a link that no longer exists.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent use. Confine it to one goroutine.
package nodegraph

// Package outputstore defines the interface of the memoized results cache
// that backs graph evaluation.
//
// # Why Output Store Exists
//
// The store separates cached evaluation results from the graph's structure
// (nodes and links). The graph decides when an entry is valid; the store only
// remembers what was computed. Keeping the two apart lets tests observe cache
// state directly and lets a different backend be swapped in without touching
// the evaluator.
//
// # Lifecycle
//
//  1. Created empty alongside a graph.
//  2. Populated lazily, one entry per node, on the first successful read.
//  3. Entries are removed by invalidation (explicit, on relinking, or on
//     reconfiguration of a node) and recreated on the next read.
//  4. Discarded together with the graph.
//
// Failed evaluations are never stored.
package outputstore

import (
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// Store holds the last successful outputs of each node.
//
// Implementations are used from a single goroutine and need no locking.
type Store interface {
	// Get returns the cached outputs of a node and whether an entry exists.
	// The returned slice is shared and must not be modified.
	Get(id node.ID) (param.Outputs, bool)

	// Set records the outputs of a node, replacing any previous entry.
	Set(id node.ID, outputs param.Outputs)

	// Delete drops the entry for a node. It reports whether an entry existed.
	Delete(id node.ID) bool

	// Len returns the number of cached entries.
	Len() int
}

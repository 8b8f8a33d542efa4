package inmemorystore

import (
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/outputstore"
	"github.com/vk/nodegrid/internal/param"
)

// Store is a map-backed outputstore.Store.
type Store struct {
	outputs map[node.ID]param.Outputs
}

// New creates a new, empty in-memory output store.
func New() outputstore.Store {
	return &Store{outputs: make(map[node.ID]param.Outputs)}
}

// Get returns the cached outputs of a node.
func (s *Store) Get(id node.ID) (param.Outputs, bool) {
	out, ok := s.outputs[id]
	return out, ok
}

// Set records the outputs of a node.
func (s *Store) Set(id node.ID, outputs param.Outputs) {
	s.outputs[id] = outputs
}

// Delete drops the cached outputs of a node.
func (s *Store) Delete(id node.ID) bool {
	if _, ok := s.outputs[id]; !ok {
		return false
	}
	delete(s.outputs, id)
	return true
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return len(s.outputs)
}

// Package inmemorystore provides an ephemeral, in-memory implementation of
// the outputstore.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** Created fresh for each graph, never persisted
//   - **Single-owner:** Graph evaluation is synchronous, so a plain map is used
//   - **Fast Lookups:** O(1) average case for get, set and delete
package inmemorystore

// Package host is the boundary between a node graph and an embedding
// runtime. A Session owns one graph, resolves node types through a registry,
// and exposes operations that never panic and only ever fail with an *Error
// carrying a stable code. Values cross the boundary as cty values.
package host

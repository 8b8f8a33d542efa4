// Package registry provides the central "glue" for the node library.
//
// The Registry maps node type names (e.g. "add") to the descriptors that
// create them. It is an explicit value constructed at startup and handed to
// whatever builds graphs; there is no package-level registry.
//
// Modules also hand their manifest source to the registry. During startup
// the registry is validated to ensure that the registered descriptors and
// the manifests they were generated from are perfectly in sync, catching
// generated code that was not refreshed after a manifest change.
package registry

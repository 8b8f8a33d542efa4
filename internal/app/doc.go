// Package app contains the core application logic. It wires the node
// registry, reads graph scripts and runs them in an embedded JavaScript
// runtime, decoupled from any specific entrypoint like a CLI.
package app

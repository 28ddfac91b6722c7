// Package app wires one build invocation together: it locates and loads the
// manifest, discovers sources, builds the graph and runs it, decoupled from
// the CLI that triggers it.
package app

// Package graph holds the build graph: an arena of nodes, each pairing one
// action with an ordered list of prerequisite nodes.
//
// # Handles, not pointers
//
// Nodes are addressed by NodeID, a stable index into the arena. A dependency
// list is a []NodeID, so a prerequisite shared by several dependents (the
// "create target directory" step every compile needs) is one node referenced
// by many lists rather than a copy per dependent.
//
// # Acyclic by construction
//
// Add only accepts dependencies that are already in the arena. A node can
// therefore only point at nodes created before it, and no sequence of Add
// calls can produce a cycle. The graph performs no runtime cycle detection.
//
// # Lifecycle
//
//  1. Created empty by the builder for one build invocation
//  2. Populated bottom-up with Add, then given a root with SetRoot
//  3. Walked by the executor
//  4. Discarded; nothing is persisted between runs
package graph

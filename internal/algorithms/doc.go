// Package algorithms turns reference implementations of classic algorithms
// into step sequences for replay.
//
// Each generator is an instrumented version of the textbook algorithm: it
// performs the real computation on a working copy of the input and records a
// step.Step at every compare, swap, visit, relaxation, or table write. The
// first step of every sequence shows the (clamped) input exactly as given;
// the last step shows the finished state and, where the algorithm produces
// a scalar, carries it in Result.
//
// Generators are pure and deterministic. They are registered once at init
// into a table keyed by ID; Resolve substitutes DefaultID for unknown ids
// so a stale or mistyped id never surfaces as an error in the UI.
//
// Families:
//
//	sorting     bubble, selection, insertion, merge, quick, heap
//	searching   linear, binary
//	graph       bfs, dfs, dijkstra (graph derived from the array when not given)
//	dynamic     fibonacci, 0/1 knapsack, coin change
package algorithms

// Package hierarchy provides a derivation graph over symbolic error tags.
//
// Tags form a directed acyclic "derives-from" relation built at
// configuration time with Derive and queried on every dispatch with
// Ancestors, Descendants, and IsA. The graph is safe for unbounded
// concurrent readers; writes take an exclusive lock and are expected
// to happen only during pipeline setup.
package hierarchy

package hierarchy

import (
	"fmt"
	"sync"
)

// Tag is a symbolic identifier attached to an error's structured payload.
type Tag string

// CycleError is returned by Derive when the requested edge would make the
// derivation relation cyclic. The graph is left unchanged.
type CycleError struct {
	Child  Tag
	Parent Tag
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("hierarchy: deriving %q from %q would create a cycle", e.Child, e.Parent)
}

// Hierarchy records "child derives from parent" edges between tags.
// The zero value is not usable; call New.
type Hierarchy struct {
	mu       sync.RWMutex
	parents  map[Tag]map[Tag]struct{}
	children map[Tag]map[Tag]struct{}
}

// New creates an empty hierarchy.
func New() *Hierarchy {
	return &Hierarchy{
		parents:  make(map[Tag]map[Tag]struct{}),
		children: make(map[Tag]map[Tag]struct{}),
	}
}

// Derive records that child derives from parent. Adding an existing edge is
// a no-op. An edge that would make the relation cyclic (including
// self-derivation) is rejected with *CycleError and the graph is untouched.
func (h *Hierarchy) Derive(child, parent Tag) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if child == parent {
		return &CycleError{Child: child, Parent: parent}
	}
	if _, ok := h.parents[child][parent]; ok {
		return nil
	}
	// The edge child->parent is cyclic iff child is already reachable
	// upward from parent.
	if h.reachableLocked(parent, child, h.parents) {
		return &CycleError{Child: child, Parent: parent}
	}

	if h.parents[child] == nil {
		h.parents[child] = make(map[Tag]struct{})
	}
	h.parents[child][parent] = struct{}{}

	if h.children[parent] == nil {
		h.children[parent] = make(map[Tag]struct{})
	}
	h.children[parent][child] = struct{}{}
	return nil
}

// Ancestors returns every tag reachable from tag by following parent edges,
// excluding tag itself. The result is a fresh set owned by the caller.
func (h *Hierarchy) Ancestors(tag Tag) map[Tag]struct{} {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closureLocked(tag, h.parents)
}

// Descendants returns every tag reachable from tag by following child edges,
// excluding tag itself.
func (h *Hierarchy) Descendants(tag Tag) map[Tag]struct{} {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closureLocked(tag, h.children)
}

// IsA reports whether ancestor is tag itself or one of its ancestors.
func (h *Hierarchy) IsA(tag, ancestor Tag) bool {
	if tag == ancestor {
		return true
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reachableLocked(tag, ancestor, h.parents)
}

// closureLocked walks the transitive closure of tag over the given edge map.
func (h *Hierarchy) closureLocked(tag Tag, edges map[Tag]map[Tag]struct{}) map[Tag]struct{} {
	result := make(map[Tag]struct{})
	stack := []Tag{tag}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range edges[current] {
			if _, seen := result[next]; seen {
				continue
			}
			result[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return result
}

// reachableLocked reports whether target is reachable from start over the
// given edge map, excluding start itself.
func (h *Hierarchy) reachableLocked(start, target Tag, edges map[Tag]map[Tag]struct{}) bool {
	stack := []Tag{start}
	seen := map[Tag]struct{}{start: {}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range edges[current] {
			if next == target {
				return true
			}
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return false
}

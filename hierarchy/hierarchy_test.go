package hierarchy

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestHierarchy_Derive_Simple(t *testing.T) {
	h := New()
	if err := h.Derive("timeout", "transient"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	anc := h.Ancestors("timeout")
	if _, ok := anc["transient"]; !ok {
		t.Errorf("expected 'transient' in ancestors, got %v", anc)
	}
	if _, ok := anc["timeout"]; ok {
		t.Error("ancestors must not contain the tag itself")
	}

	desc := h.Descendants("transient")
	if _, ok := desc["timeout"]; !ok {
		t.Errorf("expected 'timeout' in descendants, got %v", desc)
	}
}

func TestHierarchy_Derive_Idempotent(t *testing.T) {
	h := New()
	if err := h.Derive("a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Derive("a", "b"); err != nil {
		t.Fatalf("re-deriving the same edge should be a no-op, got %v", err)
	}
	if got := len(h.Ancestors("a")); got != 1 {
		t.Errorf("expected 1 ancestor, got %d", got)
	}
}

func TestHierarchy_Derive_Transitive(t *testing.T) {
	h := New()
	mustDerive(t, h, "socket-timeout", "timeout")
	mustDerive(t, h, "timeout", "transient")
	mustDerive(t, h, "transient", "fault")

	anc := h.Ancestors("socket-timeout")
	for _, want := range []Tag{"timeout", "transient", "fault"} {
		if _, ok := anc[want]; !ok {
			t.Errorf("expected %q in transitive ancestors, got %v", want, anc)
		}
	}

	desc := h.Descendants("fault")
	for _, want := range []Tag{"transient", "timeout", "socket-timeout"} {
		if _, ok := desc[want]; !ok {
			t.Errorf("expected %q in transitive descendants, got %v", want, desc)
		}
	}
}

func TestHierarchy_Derive_CycleRejected(t *testing.T) {
	h := New()
	mustDerive(t, h, "a", "b")

	err := h.Derive("b", "a")
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if cycleErr.Child != "b" || cycleErr.Parent != "a" {
		t.Errorf("unexpected cycle edge: %+v", cycleErr)
	}

	// Prior relations stay intact.
	if _, ok := h.Ancestors("a")["b"]; !ok {
		t.Error("existing edge a->b should survive the rejected derive")
	}
	if len(h.Ancestors("b")) != 0 {
		t.Error("rejected derive must not add edges")
	}
}

func TestHierarchy_Derive_SelfCycleRejected(t *testing.T) {
	h := New()
	err := h.Derive("a", "a")
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError for self-derivation, got %v", err)
	}
}

func TestHierarchy_Derive_LongCycleRejected(t *testing.T) {
	h := New()
	mustDerive(t, h, "a", "b")
	mustDerive(t, h, "b", "c")
	mustDerive(t, h, "c", "d")

	if err := h.Derive("d", "a"); err == nil {
		t.Fatal("expected cycle rejection for d->a closing a 4-edge loop")
	}
	if len(h.Ancestors("d")) != 0 {
		t.Error("rejected derive must leave the graph unchanged")
	}
}

func TestHierarchy_MultipleParents(t *testing.T) {
	h := New()
	mustDerive(t, h, "conflict", "client-fault")
	mustDerive(t, h, "conflict", "retryable")

	anc := h.Ancestors("conflict")
	if len(anc) != 2 {
		t.Fatalf("expected 2 ancestors, got %v", anc)
	}
}

func TestHierarchy_IsA(t *testing.T) {
	h := New()
	mustDerive(t, h, "timeout", "transient")
	mustDerive(t, h, "transient", "fault")

	tests := []struct {
		tag      Tag
		ancestor Tag
		want     bool
	}{
		{"timeout", "timeout", true},
		{"timeout", "transient", true},
		{"timeout", "fault", true},
		{"fault", "timeout", false},
		{"timeout", "unknown", false},
	}
	for _, tc := range tests {
		if got := h.IsA(tc.tag, tc.ancestor); got != tc.want {
			t.Errorf("IsA(%q, %q) = %v, want %v", tc.tag, tc.ancestor, got, tc.want)
		}
	}
}

func TestHierarchy_UnknownTag(t *testing.T) {
	h := New()
	if got := len(h.Ancestors("missing")); got != 0 {
		t.Errorf("expected no ancestors for unknown tag, got %d", got)
	}
	if got := len(h.Descendants("missing")); got != 0 {
		t.Errorf("expected no descendants for unknown tag, got %d", got)
	}
}

func TestHierarchy_ConcurrentReaders(t *testing.T) {
	h := New()
	for i := 0; i < 20; i++ {
		mustDerive(t, h, Tag(fmt.Sprintf("child-%d", i)), "root")
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(h.Descendants("root")) != 20 {
					t.Error("unexpected descendant count under concurrent reads")
					return
				}
				_ = h.Ancestors("child-3")
				_ = h.IsA("child-7", "root")
			}
		}()
	}
	wg.Wait()
}

func mustDerive(t *testing.T, h *Hierarchy, child, parent Tag) {
	t.Helper()
	if err := h.Derive(child, parent); err != nil {
		t.Fatalf("Derive(%q, %q): %v", child, parent, err)
	}
}

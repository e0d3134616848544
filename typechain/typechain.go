package typechain

import (
	"reflect"
	"sync"
)

// Descriptor identifies an error's runtime type.
type Descriptor = reflect.Type

// DescriptorOf returns the runtime type descriptor of err, or nil for a nil
// error.
func DescriptorOf(err error) Descriptor {
	if err == nil {
		return nil
	}
	return reflect.TypeOf(err)
}

// Registry holds declared direct-supertype relations between error types.
// Registration happens at configuration time; lookups are read-only and safe
// for unbounded concurrent readers.
type Registry struct {
	mu      sync.RWMutex
	parents map[Descriptor]Descriptor
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{parents: make(map[Descriptor]Descriptor)}
}

// Register declares parent as the direct supertype of child, using sample
// error values to capture the runtime types. Re-registering a child replaces
// its previous parent.
func (r *Registry) Register(child, parent error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parents[DescriptorOf(child)] = DescriptorOf(parent)
}

// SuperTypes returns the declared chain of strict supertypes of t, nearest
// first. A registration loop is cut off at the first repeated type.
func (r *Registry) SuperTypes(t Descriptor) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chain []Descriptor
	seen := map[Descriptor]struct{}{t: {}}
	for {
		parent, ok := r.parents[t]
		if !ok || parent == nil {
			return chain
		}
		if _, repeated := seen[parent]; repeated {
			return chain
		}
		seen[parent] = struct{}{}
		chain = append(chain, parent)
		t = parent
	}
}

// SuperTypesOf is a convenience form of SuperTypes for an error value.
func (r *Registry) SuperTypesOf(err error) []Descriptor {
	return r.SuperTypes(DescriptorOf(err))
}

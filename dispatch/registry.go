package dispatch

import (
	"fmt"
	"net/http"

	"github.com/kbukum/errdispatch/hierarchy"
	"github.com/kbukum/errdispatch/typechain"
)

// Handler converts an error and the failing request into a response, or
// into a replacement error for the pipeline to re-dispatch. It must return
// exactly one of the two.
type Handler func(err error, req *http.Request) (*Response, error)

// Wrap intercepts every handler invocation. It receives the already-resolved
// handler and may call it zero, one, or more times.
type Wrap func(next Handler, err error, req *http.Request) (*Response, error)

// ConfigurationError reports a registry that cannot satisfy dispatch, most
// importantly a missing default handler. It is never recovered from
// automatically.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dispatch: configuration error: %s", e.Reason)
}

// Registry maps identifiers (tags and runtime error types) to handlers,
// plus the reserved default handler and wrap function. Build it at
// configuration time; it is treated as immutable during dispatch.
type Registry struct {
	byTag          map[hierarchy.Tag]Handler
	byType         map[typechain.Descriptor]Handler
	defaultHandler Handler
	wrap           Wrap
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byTag:  make(map[hierarchy.Tag]Handler),
		byType: make(map[typechain.Descriptor]Handler),
	}
}

// On registers a handler for an exact tag and returns the receiver.
func (r *Registry) On(tag hierarchy.Tag, h Handler) *Registry {
	r.byTag[tag] = h
	return r
}

// OnType registers a handler for the runtime type of sample and returns the
// receiver.
func (r *Registry) OnType(sample error, h Handler) *Registry {
	r.byType[typechain.DescriptorOf(sample)] = h
	return r
}

// Default registers the reserved default handler and returns the receiver.
func (r *Registry) Default(h Handler) *Registry {
	r.defaultHandler = h
	return r
}

// Wrap registers the reserved wrap function and returns the receiver.
func (r *Registry) Wrap(w Wrap) *Registry {
	r.wrap = w
	return r
}

// Merge overlays overrides onto a copy of r. Entries in overrides win,
// including its default handler and wrap function when set. Neither input
// is modified.
func (r *Registry) Merge(overrides *Registry) *Registry {
	merged := NewRegistry()
	merged.defaultHandler = r.defaultHandler
	merged.wrap = r.wrap
	for tag, h := range r.byTag {
		merged.byTag[tag] = h
	}
	for desc, h := range r.byType {
		merged.byType[desc] = h
	}
	if overrides == nil {
		return merged
	}
	for tag, h := range overrides.byTag {
		merged.byTag[tag] = h
	}
	for desc, h := range overrides.byType {
		merged.byType[desc] = h
	}
	if overrides.defaultHandler != nil {
		merged.defaultHandler = overrides.defaultHandler
	}
	if overrides.wrap != nil {
		merged.wrap = overrides.wrap
	}
	return merged
}

// Validate reports whether the registry can serve every dispatch. A registry
// without a default handler fails with *ConfigurationError.
func (r *Registry) Validate() error {
	if r.defaultHandler == nil {
		return &ConfigurationError{Reason: "no default handler registered"}
	}
	return nil
}

package dispatch

import (
	"net/http"

	"github.com/kbukum/errdispatch/hierarchy"
	"github.com/kbukum/errdispatch/typechain"
)

// Outcome is the tagged result of one dispatch cycle: either a terminal
// response or a replacement error requiring re-dispatch, never both.
type Outcome struct {
	Response *Response
	Err      error
}

// Dispatcher resolves errors to handlers against a registry, consulting the
// tag hierarchy and the type registry. It is safe for concurrent use once
// constructed.
type Dispatcher struct {
	registry *Registry
	tags     *hierarchy.Hierarchy
	types    *typechain.Registry
}

// New creates a dispatcher. The tag hierarchy and type registry may be nil
// when the corresponding lookups are not needed. Construction fails with
// *ConfigurationError if the registry has no default handler.
func New(registry *Registry, tags *hierarchy.Hierarchy, types *typechain.Registry) (*Dispatcher, error) {
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = hierarchy.New()
	}
	if types == nil {
		types = typechain.NewRegistry()
	}
	return &Dispatcher{registry: registry, tags: tags, types: types}, nil
}

// Resolve finds the single handler for err by trying, in order: exact tag,
// exact runtime type, a handler registered on an ancestor of the error's
// tag, the declared supertype chain nearest-first, and finally the default
// handler. A missing default is a *ConfigurationError.
func (d *Dispatcher) Resolve(err error) (Handler, error) {
	tag, hasTag := TagOf(err)

	if hasTag {
		if h, ok := d.registry.byTag[tag]; ok {
			return h, nil
		}
	}

	desc := typechain.DescriptorOf(err)
	if h, ok := d.registry.byType[desc]; ok {
		return h, nil
	}

	if hasTag {
		// A specific tag dispatches to a handler registered on any broader
		// ancestor tag. Iteration order over equally-matching registered
		// tags is unspecified.
		ancestors := d.tags.Ancestors(tag)
		for registered, h := range d.registry.byTag {
			if _, ok := ancestors[registered]; ok {
				return h, nil
			}
		}
	}

	for _, super := range d.types.SuperTypes(desc) {
		if h, ok := d.registry.byType[super]; ok {
			return h, nil
		}
	}

	if d.registry.defaultHandler == nil {
		return nil, &ConfigurationError{Reason: "no default handler registered"}
	}
	return d.registry.defaultHandler, nil
}

// Dispatch resolves and invokes the handler for err, through the registered
// wrap function when present. The returned error is only ever a
// *ConfigurationError; application errors are absorbed into the Outcome.
func (d *Dispatcher) Dispatch(err error, req *http.Request) (Outcome, error) {
	handler, resolveErr := d.Resolve(err)
	if resolveErr != nil {
		return Outcome{}, resolveErr
	}

	var resp *Response
	var next error
	if d.registry.wrap != nil {
		resp, next = d.registry.wrap(handler, err, req)
	} else {
		resp, next = handler(err, req)
	}

	if resp == nil && next == nil {
		return Outcome{}, &ConfigurationError{Reason: "handler returned neither response nor error"}
	}
	if resp != nil {
		return Outcome{Response: resp}, nil
	}
	return Outcome{Err: next}, nil
}

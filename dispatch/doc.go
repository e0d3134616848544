// Package dispatch resolves application errors to HTTP-shaped responses.
//
// Callers build a Registry of handlers keyed by tag or runtime error type,
// then a Dispatcher resolves exactly one handler per error through an
// ordered, hierarchy-aware lookup:
//
//  1. exact match on the error's tag
//  2. exact match on the error's runtime type
//  3. a handler registered on an ancestor of the error's tag
//  4. a handler registered on a declared supertype, nearest first
//  5. the default handler
//
// The resolved handler is invoked through the registry's wrap function when
// one is present. A handler may return a replacement error instead of a
// response; the enclosing pipeline re-enters dispatch with it (the engine
// itself never loops).
package dispatch

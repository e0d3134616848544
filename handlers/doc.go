// Package handlers provides the default handler set for the dispatch
// engine: a generic 500 fallback, response passthrough, decode and
// validation failure handlers, a jwt-aware auth failure handler, and the
// console-logging and tracing wraps. DefaultRegistry assembles them into a
// registry callers overlay with their own entries.
package handlers

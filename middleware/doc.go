// Package middleware adapts the dispatch engine to a Gin pipeline.
//
// ErrorHandler picks up errors collected on the context after the route
// runs, drives the dispatch cycle (including bounded re-dispatch of
// handler-returned errors), and writes the resulting response. Recover
// feeds panics into the same engine, and RequestID threads a correlation
// id through logged dispatch lines.
package middleware

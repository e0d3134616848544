// Package logger wraps zerolog with a small, service-oriented API used by
// the dispatch middleware and the console-logging wrap.
package logger

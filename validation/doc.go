// Package validation turns struct-tag validation failures into tagged
// dispatch errors that the default validation handlers know how to encode.
package validation

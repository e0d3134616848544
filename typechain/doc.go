// Package typechain maintains supertype chains for error types.
//
// Go has no class hierarchy to reflect over, so each error type's direct
// supertype is declared explicitly at configuration time and SuperTypes
// walks the declared chain nearest-first. Types with no declaration simply
// have an empty chain.
package typechain

// Package sentinel provides an immutable error type for sentinel error declarations.
//
// Error values are plain strings, so they can be declared as const and still
// take part in errors.Is comparisons through wrapped chains.
package sentinel

// Package dbfile holds the error taxonomy shared by every component of the
// query engine: usage, I/O, format, and query errors.
package dbfile

import "errors"

// Sentinel kinds. Every wrapped error produced by the engine is rooted in
// exactly one of these via errors.Is.
var (
	ErrUsage  = errors.New("usage error")
	ErrIO     = errors.New("i/o error")
	ErrFormat = errors.New("format error")
	ErrQuery  = errors.New("query error")
)

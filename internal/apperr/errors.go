// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateClientID = errors.New("duplicate client id")
)

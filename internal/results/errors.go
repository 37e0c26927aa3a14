package results

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSignatureBuilder reports an example query issued before a
	// SignatureBuilder was installed.
	ErrNoSignatureBuilder = errors.New("no example signature builder installed")
	// ErrSchemaMismatch reports a well-formed document whose root element does
	// not belong to the declared format.
	ErrSchemaMismatch = errors.New("document does not match report schema")
	// ErrUnknownFormat reports an unsupported report format name.
	ErrUnknownFormat = errors.New("unknown report format")
)

// ParseError describes a report file that could not be loaded.
type ParseError struct {
	Source string
	Format Format
	Err    error
}

// Error renders the failing source with its cause.
func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse %s report: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("parse %s report %s: %v", e.Format, e.Source, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

package decode

import "errors"

// Sentinel errors for value decoding. Decoders wrap these with context;
// match them with errors.Is.
var (
	ErrSyntax       = errors.New("malformed JSON")
	ErrWrongType    = errors.New("wrong type")
	ErrMissingField = errors.New("missing field")
	ErrMismatch     = errors.New("value mismatch")
	ErrNoMatch      = errors.New("no alternative matched")
	ErrRejected     = errors.New("input rejected")
	ErrValidation   = errors.New("validation failed")
)

package decode

import (
	"fmt"
	"strings"
)

// EnumDecoder decodes a string drawn from a fixed vocabulary into a
// string-kinded type C.
type EnumDecoder[C ~string] struct {
	values []C
}

// Enum builds an EnumDecoder over the given vocabulary.
func Enum[C ~string](values ...C) EnumDecoder[C] {
	return EnumDecoder[C]{values: values}
}

// Decode narrows a JSON string to C, rejecting strings outside the vocabulary.
func (e EnumDecoder[C]) Decode(v any) (C, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %s", ErrWrongType, typeName(v))
	}
	for _, val := range e.values {
		if C(s) == val {
			return val, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not one of %s", ErrMismatch, s, strings.Join(e.Values(), ", "))
}

// Values returns the vocabulary as plain strings.
func (e EnumDecoder[C]) Values() []string {
	ss := make([]string, len(e.values))
	for i, v := range e.values {
		ss[i] = string(v)
	}
	return ss
}

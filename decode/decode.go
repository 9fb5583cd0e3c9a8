// Package decode provides composable decoders that narrow untyped JSON
// values into typed Go values.
//
// A decoder receives one of the canonical untyped JSON forms — string,
// float64, bool, nil, map[string]any, or []any — and either returns a
// typed value or an error wrapping one of the package sentinels.
// Decoders compose: Field projects a key out of an object, Either tries
// alternatives in order, Map transforms a decoded value, and Struct and
// Params bind whole payloads through struct tags.
package decode

import (
	"fmt"

	"github.com/bjaus/contract/jsonutil"
)

// Decoder narrows an untyped JSON value into a T.
type Decoder[T any] interface {
	Decode(v any) (T, error)
}

// Func adapts a plain function to the Decoder interface.
type Func[T any] func(v any) (T, error)

// Decode calls f.
func (f Func[T]) Decode(v any) (T, error) { return f(v) }

// KeyLister is implemented by decoders that bind a fixed set of input keys.
type KeyLister interface {
	Keys() []string
}

// String decodes a JSON string.
func String() Decoder[string] {
	return Func[string](func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%w: expected string, got %s", ErrWrongType, typeName(v))
		}
		return s, nil
	})
}

// Number decodes a JSON number as float64. Plain Go ints, as produced by
// hand-built values rather than a JSON parser, are widened.
func Number() Decoder[float64] {
	return Func[float64](func(v any) (float64, error) {
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return 0, fmt.Errorf("%w: expected number, got %s", ErrWrongType, typeName(v))
	})
}

// Bool decodes a JSON boolean.
func Bool() Decoder[bool] {
	return Func[bool](func(v any) (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("%w: expected boolean, got %s", ErrWrongType, typeName(v))
		}
		return b, nil
	})
}

// Const decodes a value that must equal want exactly.
func Const[T comparable](want T) Decoder[T] {
	return Func[T](func(v any) (T, error) {
		var zero T
		got, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("%w: expected %v, got %s", ErrWrongType, want, typeName(v))
		}
		if got != want {
			return zero, fmt.Errorf("%w: expected %v, got %v", ErrMismatch, want, got)
		}
		return got, nil
	})
}

// Raw accepts any JSON value unchanged.
func Raw() Decoder[any] {
	return Func[any](func(v any) (any, error) { return v, nil })
}

// Field projects the named key out of a JSON object and decodes it with d.
// A missing key and a key holding null are distinct: null is handed to d.
func Field[T any](name string, d Decoder[T]) Decoder[T] {
	return Func[T](func(v any) (T, error) {
		var zero T
		obj, ok := v.(map[string]any)
		if !ok {
			return zero, fmt.Errorf("%w: expected object, got %s", ErrWrongType, typeName(v))
		}
		fv, ok := obj[name]
		if !ok {
			return zero, fmt.Errorf("%w: %q", ErrMissingField, name)
		}
		out, err := d.Decode(fv)
		if err != nil {
			return zero, fmt.Errorf("%s: %w", name, err)
		}
		return out, nil
	})
}

// Either tries a, then b, and returns the first success.
func Either[T any](a, b Decoder[T]) Decoder[T] {
	return Func[T](func(v any) (T, error) {
		out, aErr := a.Decode(v)
		if aErr == nil {
			return out, nil
		}
		out, bErr := b.Decode(v)
		if bErr == nil {
			return out, nil
		}
		var zero T
		return zero, fmt.Errorf("%w: %v; %v", ErrNoMatch, aErr, bErr)
	})
}

// Map decodes with d and transforms the result through f. Errors from f
// are returned unchanged.
func Map[A, B any](d Decoder[A], f func(A) (B, error)) Decoder[B] {
	return Func[B](func(v any) (B, error) {
		var zero B
		a, err := d.Decode(v)
		if err != nil {
			return zero, err
		}
		return f(a)
	})
}

// Reject fails every input with the given reason.
func Reject[T any](reason string) Decoder[T] {
	return Func[T](func(any) (T, error) {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrRejected, reason)
	})
}

// FromJSON parses raw JSON bytes and decodes the result with d.
func FromJSON[T any](d Decoder[T], data []byte) (T, error) {
	var v any
	if err := jsonutil.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return d.Decode(v)
}

// MustDecode decodes v with d and panics on failure.
func MustDecode[T any](d Decoder[T], v any) T {
	out, err := d.Decode(v)
	if err != nil {
		panic(err)
	}
	return out
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

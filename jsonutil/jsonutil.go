// Package jsonutil wraps github.com/bytedance/sonic behind the familiar
// encoding/json function shapes. Every byte of wire JSON in this module —
// envelope encoding, untyped parsing, manifest output — goes through these
// helpers so the JSON engine is swappable in one place.
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
)

// Marshal encodes v as compact JSON.
func Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalIndent encodes v as indented JSON.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// Encode writes v as JSON to w.
func Encode(w io.Writer, v any) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// Decode reads JSON from r into v.
func Decode(r io.Reader, v any) error {
	return sonic.ConfigDefault.NewDecoder(r).Decode(v)
}

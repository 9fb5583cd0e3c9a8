package decode

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

var schemaDecoder = schema.NewDecoder()

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// ParamsDecoder binds URL parameter values into a struct of type P using
// `schema` struct tags. Untagged exported fields bind by field name.
type ParamsDecoder[P any] struct{}

// Params builds a ParamsDecoder for P. P must be a struct type.
func Params[P any]() ParamsDecoder[P] {
	return ParamsDecoder[P]{}
}

// Decode accepts url.Values, map[string][]string, map[string]string, or a
// map[string]any holding strings, numbers, or arrays of either, and binds
// the values into a P.
func (ParamsDecoder[P]) Decode(v any) (P, error) {
	var out P
	vals, err := paramValues(v)
	if err != nil {
		return out, err
	}
	if err := schemaDecoder.Decode(&out, vals); err != nil {
		return out, fmt.Errorf("%w: %v", ErrWrongType, err)
	}
	if err := checkStruct(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Keys reports the parameter names P binds, from `schema` tags or field
// names, including promoted fields of embedded structs.
func (ParamsDecoder[P]) Keys() []string {
	return structKeys(reflect.TypeFor[P]())
}

func structKeys(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Tag.Get("schema") == "" {
			keys = append(keys, structKeys(f.Type)...)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys = append(keys, name)
	}
	return keys
}

// paramValues normalizes the accepted input forms to url.Values.
func paramValues(v any) (url.Values, error) {
	switch m := v.(type) {
	case url.Values:
		return m, nil
	case map[string][]string:
		return url.Values(m), nil
	case map[string]string:
		vals := make(url.Values, len(m))
		for k, s := range m {
			vals[k] = []string{s}
		}
		return vals, nil
	case map[string]any:
		vals := make(url.Values, len(m))
		for k, item := range m {
			ss, err := paramStrings(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			vals[k] = ss
		}
		return vals, nil
	}
	return nil, fmt.Errorf("%w: expected parameter map, got %s", ErrWrongType, typeName(v))
}

func paramStrings(v any) ([]string, error) {
	if items, ok := v.([]any); ok {
		ss := make([]string, 0, len(items))
		for _, item := range items {
			s, err := paramString(item)
			if err != nil {
				return nil, err
			}
			ss = append(ss, s)
		}
		return ss, nil
	}
	s, err := paramString(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func paramString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	}
	return "", fmt.Errorf("%w: expected string or number parameter, got %s", ErrWrongType, typeName(v))
}

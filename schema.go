package contract

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// JSONSchema represents a JSON Schema object (subset for OpenAPI 3.1).
type JSONSchema struct {
	Type        string                `json:"type,omitempty"`
	Format      string                `json:"format,omitempty"`
	Properties  map[string]JSONSchema `json:"properties,omitempty"`
	Items       *JSONSchema           `json:"items,omitempty"`
	Required    []string              `json:"required,omitempty"`
	Description string                `json:"description,omitempty"`
	Enum        []string              `json:"enum,omitempty"`

	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	ExclMin   *float64 `json:"exclusiveMinimum,omitempty"`
	ExclMax   *float64 `json:"exclusiveMaximum,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	MinItems  *int     `json:"minItems,omitempty"`
	MaxItems  *int     `json:"maxItems,omitempty"`

	// AdditionalProperties can be true (any) or a schema.
	AdditionalProperties *JSONSchema `json:"additionalProperties,omitempty"`
}

// typeToSchema converts a reflect.Type to a JSONSchema.
func typeToSchema(t reflect.Type) JSONSchema {
	// Unwrap pointer.
	if t.Kind() == reflect.Pointer {
		return typeToSchema(t.Elem())
	}

	// Handle well-known types.
	switch t {
	case reflect.TypeFor[time.Time]():
		return JSONSchema{Type: "string", Format: "date-time"}
	case reflect.TypeFor[time.Duration]():
		return JSONSchema{Type: "string", Format: "duration"}
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String:
		return JSONSchema{Type: "string"}
	case reflect.Bool:
		return JSONSchema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return JSONSchema{Type: "integer"}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return JSONSchema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return JSONSchema{Type: "number"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return JSONSchema{Type: "string", Format: "byte"}
		}
		items := typeToSchema(t.Elem())
		return JSONSchema{Type: "array", Items: &items}
	case reflect.Array:
		items := typeToSchema(t.Elem())
		return JSONSchema{Type: "array", Items: &items}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return JSONSchema{Type: "object"}
		}
		valSchema := typeToSchema(t.Elem())
		return JSONSchema{Type: "object", AdditionalProperties: &valSchema}
	case reflect.Struct:
		return structToSchema(t)
	case reflect.Interface:
		return JSONSchema{}
	default:
		return JSONSchema{}
	}
}

// structToSchema converts a struct type to a JSONSchema with properties.
// Fields bound as URL parameters (`schema` tag) are not part of the body
// shape and are skipped.
func structToSchema(t reflect.Type) JSONSchema {
	schema := JSONSchema{
		Type:       "object",
		Properties: make(map[string]JSONSchema),
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		if f.Tag.Get("schema") != "" {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		prop := typeToSchema(f.Type)

		if doc := f.Tag.Get("doc"); doc != "" {
			prop.Description = doc
		}
		if enum := oneofValues(f); len(enum) > 0 {
			prop.Enum = enum
		}
		applyValidateBounds(&prop, f)

		schema.Properties[name] = prop

		if hasValidateRule(f, "required") {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// jsonFieldName returns the JSON field name for a struct field.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// hasValidateRule reports whether the field's `validate` tag carries the
// named rule.
func hasValidateRule(f reflect.StructField, rule string) bool {
	for _, r := range strings.Split(f.Tag.Get("validate"), ",") {
		if r == rule {
			return true
		}
	}
	return false
}

// oneofValues extracts the vocabulary of a `validate:"oneof=..."` rule.
func oneofValues(f reflect.StructField) []string {
	for _, r := range strings.Split(f.Tag.Get("validate"), ",") {
		if vals, ok := strings.CutPrefix(r, "oneof="); ok {
			return strings.Fields(vals)
		}
	}
	return nil
}

// applyValidateBounds maps the field's numeric and length `validate`
// rules onto schema bounds. Rules are interpreted against the schema's
// type, matching validator semantics: min on a string is a length, min
// on a number is a value, min on an array is an item count.
func applyValidateBounds(s *JSONSchema, f reflect.StructField) {
	for _, r := range strings.Split(f.Tag.Get("validate"), ",") {
		rule, param, ok := strings.Cut(r, "=")
		if !ok {
			continue
		}
		switch s.Type {
		case "string":
			n, err := strconv.Atoi(param)
			if err != nil {
				continue
			}
			switch rule {
			case "min", "gte":
				s.MinLength = &n
			case "max", "lte":
				s.MaxLength = &n
			case "len":
				s.MinLength = &n
				s.MaxLength = &n
			}
		case "integer", "number":
			v, err := strconv.ParseFloat(param, 64)
			if err != nil {
				continue
			}
			switch rule {
			case "min", "gte":
				s.Minimum = &v
			case "max", "lte":
				s.Maximum = &v
			case "gt":
				s.ExclMin = &v
			case "lt":
				s.ExclMax = &v
			}
		case "array":
			n, err := strconv.Atoi(param)
			if err != nil {
				continue
			}
			switch rule {
			case "min", "gte":
				s.MinItems = &n
			case "max", "lte":
				s.MaxItems = &n
			case "len":
				s.MinItems = &n
				s.MaxItems = &n
			}
		}
	}
}

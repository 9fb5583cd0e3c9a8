package decode

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bjaus/contract/jsonutil"
)

var validate = validator.New()

// SelfValidator is implemented by payload types that validate themselves.
// It runs after tag validation.
type SelfValidator interface {
	Validate() error
}

// StructDecoder binds a JSON object into a struct of type T and validates
// it with `validate` struct tags.
type StructDecoder[T any] struct{}

// Struct builds a StructDecoder for T. Unknown keys in the input are
// ignored; field requirements come from `validate` tags on T.
func Struct[T any]() StructDecoder[T] {
	return StructDecoder[T]{}
}

// Decode re-encodes the untyped value and binds it into a T.
func (StructDecoder[T]) Decode(v any) (T, error) {
	var out T
	if v == nil {
		return out, fmt.Errorf("%w: expected %s-shaped object, got null", ErrWrongType, reflect.TypeFor[T]())
	}
	raw, err := jsonutil.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrWrongType, err)
	}
	if err := jsonutil.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: expected %s-shaped object, got %s", ErrWrongType, reflect.TypeFor[T](), typeName(v))
	}
	if err := checkStruct(&out); err != nil {
		return out, err
	}
	return out, nil
}

// checkStruct runs tag validation and the SelfValidator hook against a
// pointer to the decoded value.
func checkStruct(ptr any) error {
	rv := reflect.ValueOf(ptr).Elem()
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		if err := validate.Struct(rv.Interface()); err != nil {
			var ves validator.ValidationErrors
			if errors.As(err, &ves) {
				return fmt.Errorf("%w: %s", ErrValidation, formatValidationErrors(ves))
			}
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if sv, ok := ptr.(SelfValidator); ok {
		if err := sv.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return nil
}

// formatValidationErrors flattens validator output into one message.
func formatValidationErrors(ves validator.ValidationErrors) string {
	msgs := make([]string, 0, len(ves))
	for _, ve := range ves {
		msgs = append(msgs, ve.Field()+": "+formatValidationError(ve))
	}
	return strings.Join(msgs, "; ")
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "len":
		return fmt.Sprintf("must have length %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		return fmt.Sprintf("failed %q validation", ve.Tag())
	}
}

package interpolation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Tag values understood by InterpolateStruct.
const (
	// TagEnv expands ${VAR} and ${VAR:default} references.
	TagEnv = "yes"
	// TagPath expands references like TagEnv and then a leading "~".
	TagPath = "path"
)

// InterpolateStruct applies environment variable interpolation to fields tagged with
// `env_interpolation:"yes"` or `env_interpolation:"path"`. This function modifies the provided
// struct in place. It handles string fields, string slices and nested structs.
// Interface types will return an error - each concrete type should call this function on itself.
func InterpolateStruct(v any) error {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)

	// Fail fast if passed an interface type
	if val.Kind() == reflect.Interface {
		return fmt.Errorf(
			"InterpolateStruct cannot handle interface types, call from concrete type instead",
		)
	}

	// Handle pointer to struct
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	// Must be a struct at this point
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct or pointer to struct, got %T", v)
	}

	typ := val.Type()
	var errs []error

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.Struct:
			// Nested structs are walked regardless of their own tag
			if err := InterpolateStruct(field.Addr().Interface()); err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
			}
			continue
		case reflect.Ptr:
			if field.Type().Elem().Kind() == reflect.Struct && !field.IsNil() {
				if err := InterpolateStruct(field.Interface()); err != nil {
					errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
				}
			}
			continue
		}

		expand := expanderFor(fieldType.Tag.Get("env_interpolation"))
		if expand == nil {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			original := field.String()
			if original == "" {
				continue
			}
			interpolated, err := expand(original)
			if err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
				continue
			}
			field.SetString(interpolated)

		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < field.Len(); j++ {
				elem := field.Index(j)
				original := elem.String()
				if original == "" {
					continue
				}
				interpolated, err := expand(original)
				if err != nil {
					errs = append(errs, fmt.Errorf("field %s[%d]: %w", fieldType.Name, j, err))
					continue
				}
				elem.SetString(interpolated)
			}
		}
	}

	return errors.Join(errs...)
}

func expanderFor(tag string) func(string) (string, error) {
	switch strings.ToLower(tag) {
	case TagEnv:
		return ExpandEnvVars
	case TagPath:
		return ExpandPath
	default:
		return nil
	}
}

package tag

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Error types for tag processing
var (
	ErrTargetMustBePointer = errors.New("target must be a pointer to a struct")
	ErrUnsupportedType     = errors.New("unsupported type")
)

// FieldError wraps an error with field path context
type FieldError struct {
	Path  string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (default %q): %v", e.Path, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ApplyDefaults sets zero-valued fields of the struct pointed to by target from
// their `default:"..."` tags. Nested structs and pointers to structs are
// walked; fields that already hold a value are left untouched.
//
// Example:
//
//	type Config struct {
//	    BaseURL string        `default:"https://connect.squareup.com"`
//	    Timeout time.Duration `default:"60s"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrTargetMustBePointer
	}
	return applyStruct(v.Elem(), "")
}

func applyStruct(v reflect.Value, prefix string) error {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		switch {
		case fv.Kind() == reflect.Struct && !implementsText(fv):
			if err := applyStruct(fv, path); err != nil {
				return err
			}
		case fv.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Struct:
			if fv.IsNil() {
				fv.Set(reflect.New(field.Type.Elem()))
			}
			if err := applyStruct(fv.Elem(), path); err != nil {
				return err
			}
		default:
			def, ok := field.Tag.Lookup("default")
			if !ok || !fv.IsZero() {
				continue
			}
			if err := parse(fv, def); err != nil {
				return &FieldError{Path: path, Value: def, Err: err}
			}
		}
	}
	return nil
}

func implementsText(v reflect.Value) bool {
	if !v.CanAddr() {
		return false
	}
	_, ok := v.Addr().Interface().(encoding.TextUnmarshaler)
	return ok
}

func parse(v reflect.Value, s string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(s))
		}
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return ErrUnsupportedType
	}
	return nil
}

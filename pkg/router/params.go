package router

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Params are the parameters captured by a route match.
type Params map[string]string

// Get returns a parameter or "".
func (p Params) Get(name string) string {
	return p[name]
}

// Int returns a parameter parsed as an int.
func (p Params) Int(name string) (int, error) {
	n, err := strconv.Atoi(p[name])
	if err != nil {
		return 0, fmt.Errorf("router: param %q is not an integer: %q", name, p[name])
	}
	return n, nil
}

// Decode copies params into the fields of the struct target points to.
// Fields opt in with a `param:"name"` tag; a []string field receives a
// catch-all value split on "/".
func (p Params) Decode(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("router: Decode needs a pointer to a struct, got %T", target)
	}
	v = v.Elem()
	for _, f := range reflect.VisibleFields(v.Type()) {
		name, ok := f.Tag.Lookup("param")
		if !ok || !f.IsExported() {
			continue
		}
		raw, ok := p[name]
		if !ok {
			continue
		}
		if err := decodeInto(v.FieldByIndex(f.Index), raw); err != nil {
			return fmt.Errorf("router: param %q into %s: %w", name, f.Name, err)
		}
	}
	return nil
}

func decodeInto(field reflect.Value, raw string) error {
	switch k := field.Kind(); {
	case k == reflect.String:
		field.SetString(raw)
	case k >= reflect.Int && k <= reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case k >= reflect.Uint && k <= reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case k == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case k == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		var parts []string
		if raw != "" {
			parts = strings.Split(raw, "/")
		}
		field.Set(reflect.ValueOf(parts))
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

var errParamType = errors.New("router: param does not match its type")

// ValidateParam reports whether value fits the type named in a route
// pattern (":id:int"). Types other than the integer kinds and "uuid"
// accept anything.
func ValidateParam(value, paramType string) error {
	var ok bool
	switch paramType {
	case "int", "int8", "int16", "int32", "int64":
		_, err := strconv.ParseInt(value, 10, 64)
		ok = err == nil
	case "uint", "uint8", "uint16", "uint32", "uint64":
		_, err := strconv.ParseUint(value, 10, 64)
		ok = err == nil
	case "uuid":
		ok = isUUID(value)
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: %q is not %s", errParamType, value, paramType)
	}
	return nil
}

// isUUID checks the 8-4-4-4-12 hex layout.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch i {
		case 8, 13, 18, 23:
			if s[i] != '-' {
				return false
			}
		default:
			c := s[i]
			if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
				return false
			}
		}
	}
	return true
}

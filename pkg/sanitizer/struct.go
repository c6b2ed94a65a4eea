package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNotStructPointer = errors.New("sanitizer: expected pointer to struct")
	ErrUnknownRule      = errors.New("sanitizer: unknown rule")
)

var rules = map[string]func(string) string{
	"trim":     Trim,
	"lower":    strings.ToLower,
	"upper":    strings.ToUpper,
	"nfc":      NormalizeText,
	"collapse": CollapseSpaces,
	"strip":    StripHTML,
	"html":     SanitizeHTML,
	"name":     Name,
	"email":    Email,
	"phone":    Phone,
}

// SanitizeStruct applies the comma-separated rules of each `sanitize` tag to its
// string field, left to right. Nested structs are walked; other field kinds are ignored.
//
//	type ContactForm struct {
//		Name  string `form:"name" sanitize:"name"`
//		Email string `form:"email" sanitize:"email"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		if fv.Kind() == reflect.Struct {
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		}

		tag := field.Tag.Get("sanitize")
		if tag == "" || tag == "-" || fv.Kind() != reflect.String {
			continue
		}

		s := fv.String()
		for name := range strings.SplitSeq(tag, ",") {
			fn, ok := rules[strings.TrimSpace(name)]
			if !ok {
				return fmt.Errorf("%w %q on field %s", ErrUnknownRule, name, field.Name)
			}
			s = fn(s)
		}
		fv.SetString(s)
	}
	return nil
}

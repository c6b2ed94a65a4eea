package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to a struct")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrMalformedBody        = errors.New("binder: malformed request body")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
	ErrInvalidValue         = errors.New("binder: invalid field value")
)

// MaxBodySize caps JSON bodies and url-encoded forms.
const MaxBodySize = 1 << 20

const maxMultipartMemory = 10 << 20

// Func binds request data into v.
type Func func(r *http.Request, v any) error

// Form binds url-encoded or multipart form fields using the "form" struct tag.
func Form() Func {
	return func(r *http.Request, v any) error {
		if err := checkTarget(v); err != nil {
			return err
		}

		mt := mediaType(r)
		switch mt {
		case "multipart/form-data":
			if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
				return errors.Join(ErrMalformedBody, err)
			}
		case "", "application/x-www-form-urlencoded":
			r.Body = http.MaxBytesReader(nil, r.Body, MaxBodySize)
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrMalformedBody, err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
		}

		return bindValues(r.PostForm, v, "form")
	}
}

// Query binds URL query parameters using the "query" struct tag.
func Query() Func {
	return func(r *http.Request, v any) error {
		if err := checkTarget(v); err != nil {
			return err
		}
		return bindValues(r.URL.Query(), v, "query")
	}
}

// JSON decodes a JSON body into v. An empty body is an error.
// A content type other than JSON is rejected only when one is set.
func JSON() Func {
	return func(r *http.Request, v any) error {
		if err := checkTarget(v); err != nil {
			return err
		}
		if mt := mediaType(r); mt != "" && mt != "application/json" && !strings.HasSuffix(mt, "+json") {
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
		}
		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrMalformedBody)
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodySize+1))
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrMalformedBody)
			}
			if errors.Is(err, io.ErrUnexpectedEOF) && r.ContentLength > MaxBodySize {
				return ErrBodyTooLarge
			}
			return errors.Join(ErrMalformedBody, err)
		}
		return nil
	}
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

func checkTarget(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return nil
}

// bindValues sets exported fields from values. Fields without the tag use
// their lowercased name; "-" skips a field. Nested structs are walked.
func bindValues(values url.Values, v any, tag string) error {
	return bindStruct(values, reflect.ValueOf(v).Elem(), tag)
}

func bindStruct(values url.Values, rv reflect.Value, tag string) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		name := field.Tag.Get(tag)
		if name == "-" {
			continue
		}
		if name == "" {
			if field.Type.Kind() == reflect.Struct {
				if err := bindStruct(values, fv, tag); err != nil {
					return err
				}
				continue
			}
			name = strings.ToLower(field.Name)
		}
		name, _, _ = strings.Cut(name, ",")

		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw []string) error {
	if fv.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(fv.Type(), len(raw), len(raw))
		for i, s := range raw {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		fv.Set(slice)
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		ptr := reflect.New(fv.Type().Elem())
		if err := setScalar(ptr.Elem(), raw[0]); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}
	return setScalar(fv, raw[0])
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}

// parseBool accepts HTML checkbox values in addition to strconv forms.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "checked":
		return true, nil
	case "", "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

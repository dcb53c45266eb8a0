package pkg

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/simp-lee/hrdesk/internal/domain"
)

// EncodeQuery renders params as a URL query string without the leading '?'.
//
// Keys keep insertion order. Nil values, nil pointers and empty strings are
// skipped; zero numbers and false are kept. A slice or array emits the key
// once per element.
func EncodeQuery(params domain.Params) string {
	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	for _, kv := range params {
		if IsEmptyValue(kv.Value) {
			continue
		}
		v := indirect(reflect.ValueOf(kv.Value))
		if (v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8) || v.Kind() == reflect.Array {
			for i := 0; i < v.Len(); i++ {
				elem := v.Index(i).Interface()
				if IsEmptyValue(elem) {
					continue
				}
				add(kv.Key, FormatValue(elem))
			}
			continue
		}
		add(kv.Key, FormatValue(kv.Value))
	}
	return b.String()
}

// IsEmptyValue reports whether v is one of the values a filter treats as
// absent: nil, a nil pointer or interface, or the empty string.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.String && rv.Len() == 0
}

// FormatValue stringifies a scalar filter value.
func FormatValue(v any) string {
	if rv := reflect.ValueOf(v); !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}

	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Invalid:
		return ""
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(rv.Interface())
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

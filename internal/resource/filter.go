package resource

import (
	"cmp"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

// predicate reports whether a record passes one filter.
type predicate[T any] func(*T) bool

// predicates builds the filter chain for req in its fixed order: equality
// filters, then range filters, then free-text search. Empty filter values and
// parameters the definition does not declare are ignored.
func (d *Definition[T]) predicates(filters domain.Params) []predicate[T] {
	var out []predicate[T]

	for _, field := range d.Equal {
		v, ok := filters.Get(field)
		if !ok || pkg.IsEmptyValue(v) {
			continue
		}
		want := filterStrings(v)
		if len(want) == 0 {
			continue
		}
		out = append(out, func(rec *T) bool {
			got, ok := pkg.FieldValue(rec, field)
			if !ok || got == nil {
				return false
			}
			s := pkg.FormatValue(got)
			for _, w := range want {
				if s == w {
					return true
				}
			}
			return false
		})
	}

	for _, r := range d.Ranges {
		v, ok := filters.Get(r.Param)
		if !ok || pkg.IsEmptyValue(v) {
			continue
		}
		bound := pkg.FormatValue(v)
		out = append(out, func(rec *T) bool {
			got, ok := pkg.FieldValue(rec, r.Field)
			if !ok || got == nil {
				return false
			}
			s := pkg.FormatValue(got)
			if s == "" {
				return false
			}
			c := compareValues(s, bound)
			if r.Op == AtLeast {
				return c >= 0
			}
			return c <= 0
		})
	}

	if term := searchTerm(filters); term != "" && len(d.Search) > 0 {
		out = append(out, func(rec *T) bool {
			for _, field := range d.Search {
				got, ok := pkg.FieldValue(rec, field)
				if ok && got != nil && strings.Contains(strings.ToLower(pkg.FormatValue(got)), term) {
					return true
				}
			}
			return false
		})
	}
	return out
}

// searchTerm returns the lower-cased search parameter. Whitespace is part of
// the term, so "Eng " does not match "Engineering".
func searchTerm(filters domain.Params) string {
	v, ok := filters.Get(SearchParam)
	if !ok || pkg.IsEmptyValue(v) {
		return ""
	}
	return strings.ToLower(pkg.FormatValue(v))
}

// filterStrings flattens a scalar or slice filter value into its non-empty
// string forms.
func filterStrings(v any) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if !pkg.IsEmptyValue(elem) {
				out = append(out, pkg.FormatValue(elem))
			}
		}
		return out
	}
	return []string{pkg.FormatValue(v)}
}

// compareValues orders two stringified values numerically when both parse
// as numbers, chronologically when both parse as dates or timestamps, and
// lexically otherwise.
func compareValues(a, b string) int {
	if x, err := strconv.ParseFloat(a, 64); err == nil {
		if y, err := strconv.ParseFloat(b, 64); err == nil {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := parseTime(a); ok {
		if y, ok := parseTime(b); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(a, b)
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

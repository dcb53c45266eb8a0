package pkg

import (
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// Field is one JSON-visible field of a record type, including fields promoted
// from embedded structs.
type Field struct {
	Name   string // JSON name
	Column string // database column
	Index  []int
	Type   reflect.Type
}

var fieldCache sync.Map // reflect.Type -> []Field

var naming = schema.NamingStrategy{}

// FieldsOf lists the JSON-visible fields of struct type t in declaration order.
func FieldsOf(t reflect.Type) []Field {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []Field
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, Field{
			Name:   name,
			Column: columnOf(sf),
			Index:  sf.Index,
			Type:   sf.Type,
		})
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]Field)
}

// LookupField finds the field with the given JSON name.
func LookupField(t reflect.Type, name string) (Field, bool) {
	for _, f := range FieldsOf(t) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldValue returns the value of the JSON field name on record, dereferencing
// pointers. A nil pointer field yields (nil, true).
func FieldValue(record any, name string) (any, bool) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	f, ok := LookupField(v.Type(), name)
	if !ok {
		return nil, false
	}
	fv := v.FieldByIndex(f.Index)
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil, true
		}
		fv = fv.Elem()
	}
	return fv.Interface(), true
}

// ColumnMap maps every JSON field of t to its database column.
func ColumnMap(t reflect.Type) map[string]string {
	fields := FieldsOf(t)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Column
	}
	return out
}

func columnOf(sf reflect.StructField) string {
	for _, part := range strings.Split(sf.Tag.Get("gorm"), ";") {
		if col, ok := strings.CutPrefix(strings.TrimSpace(part), "column:"); ok {
			return col
		}
	}
	return naming.ColumnName("", sf.Name)
}

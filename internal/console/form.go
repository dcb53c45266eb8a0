package console

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/simp-lee/hrdesk/internal/pkg"
)

// FormField is one input of a create or edit form, derived from the struct
// tags of the create DTO:
//
//	form:"name"          input name (and JSON name)
//	label:"Full name"    label text
//	binding:"required"   required marker
//	options:"A|B|C"      select choices
//	input:"textarea"     textarea, date, time, email or multi
type FormField struct {
	Name     string
	Label    string
	Type     string
	Required bool
	Options  []string
	Value    string
	Values   []string
	Checked  bool
	Error    string
}

// Input types.
const (
	InputText     = "text"
	InputNumber   = "number"
	InputCheckbox = "checkbox"
	InputSelect   = "select"
	InputTextarea = "textarea"
	InputDate     = "date"
	InputTime     = "time"
	InputEmail    = "email"
	InputMulti    = "multi"
)

// FormFields lists the inputs of the create DTO type C, filled from src (a
// draft C or a stored record; fields are matched by JSON name). errs maps
// field names to inline error messages.
func FormFields[C any](src any, errs map[string]string) []FormField {
	t := reflect.TypeFor[C]()
	var fields []FormField
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			continue
		}
		jsonName, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if jsonName == "" {
			jsonName = name
		}

		f := FormField{
			Name:     name,
			Label:    sf.Tag.Get("label"),
			Type:     inputType(sf),
			Required: strings.Contains(sf.Tag.Get("binding"), "required"),
			Error:    errs[jsonName],
		}
		if f.Label == "" {
			f.Label = sf.Name
		}
		if opts := sf.Tag.Get("options"); opts != "" {
			f.Options = strings.Split(opts, "|")
		}

		if src != nil {
			if v, ok := pkg.FieldValue(src, jsonName); ok && v != nil {
				fill(&f, v)
			}
		}
		fields = append(fields, f)
	}
	return fields
}

func inputType(sf reflect.StructField) string {
	if in := sf.Tag.Get("input"); in != "" {
		return in
	}
	if sf.Tag.Get("options") != "" {
		return InputSelect
	}
	t := sf.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if _, ok := reflect.New(t).Interface().(fmt.Stringer); ok && t.Kind() == reflect.Struct {
		return InputNumber // decimal amounts
	}
	switch t.Kind() {
	case reflect.Bool:
		return InputCheckbox
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return InputNumber
	case reflect.Slice:
		return InputMulti
	}
	return InputText
}

func fill(f *FormField, v any) {
	switch x := v.(type) {
	case bool:
		f.Checked = x
		f.Value = "true"
	case []string:
		f.Values = x
	default:
		s := pkg.FormatValue(v)
		if f.Type == InputNumber && s == "0" {
			s = ""
		}
		f.Value = s
	}
}

// Selected reports whether option is among the field's values.
func (f FormField) Selected(option string) bool {
	if f.Type == InputMulti {
		for _, v := range f.Values {
			if v == option {
				return true
			}
		}
		return false
	}
	return f.Value == option
}

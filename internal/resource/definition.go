// Package resource implements the generic resource client shared by every HR
// module: one Client per entity type over a swappable DataSource (in-memory
// mock store, SQL database, or remote HTTP backend).
package resource

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

// Creator is a create DTO that builds a new record.
type Creator[T any] interface {
	Build() T
}

// Patcher is an update DTO that merges its present fields into a record.
type Patcher[T any] interface {
	Apply(*T)
}

// Action is a named state transition on a record, exposed as
// POST /{path}/{id}/{action}.
type Action[T any] func(*T) error

// RangeOp is the comparison a range filter applies.
type RangeOp int

const (
	AtLeast RangeOp = iota // field >= value
	AtMost                 // field <= value
)

// Range binds a query parameter to an inclusive bound on a field,
// e.g. hireDateFrom -> hireDate >= value.
type Range struct {
	Param string
	Field string
	Op    RangeOp
}

// SearchParam is the query parameter carrying the free-text search term.
const SearchParam = "search"

// Definition describes one resource type: its names, its filterable fields
// and its actions. Field names are JSON names.
type Definition[T any] struct {
	Name    string // singular, used in messages: "employee"
	Path    string // plural URL segment: "employees"
	Title   string // display title: "Employees"
	Equal   []string
	Ranges  []Range
	Search  []string
	Actions map[string]Action[T]
}

// Validate checks that every referenced field exists on T and that T embeds
// domain.BaseModel.
func (d *Definition[T]) Validate() error {
	if d.Name == "" || d.Path == "" {
		return fmt.Errorf("resource: definition needs a name and a path")
	}
	if _, ok := any(new(T)).(interface{ Meta() *domain.BaseModel }); !ok {
		return fmt.Errorf("resource %s: record type must embed domain.BaseModel", d.Name)
	}

	t := reflect.TypeFor[T]()
	check := func(kind, field string) error {
		if _, ok := pkg.LookupField(t, field); !ok {
			return fmt.Errorf("resource %s: unknown %s field %q", d.Name, kind, field)
		}
		return nil
	}
	for _, f := range d.Equal {
		if err := check("equality", f); err != nil {
			return err
		}
	}
	for _, r := range d.Ranges {
		if err := check("range", r.Field); err != nil {
			return err
		}
		if r.Param == "" || slices.Contains(d.Equal, r.Param) {
			return fmt.Errorf("resource %s: range param %q is empty or shadows an equality filter", d.Name, r.Param)
		}
	}
	for _, f := range d.Search {
		if err := check("search", f); err != nil {
			return err
		}
	}
	return nil
}

// ActionNames lists the definition's actions in a stable order.
func (d *Definition[T]) ActionNames() []string {
	names := make([]string, 0, len(d.Actions))
	for name := range d.Actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Sortable reports whether field can be used in a sort=field,dir parameter.
func (d *Definition[T]) Sortable(field string) bool {
	_, ok := pkg.LookupField(reflect.TypeFor[T](), field)
	return ok
}

func (d *Definition[T]) action(name string) (Action[T], error) {
	act, ok := d.Actions[name]
	if !ok {
		return nil, domain.NewAppError(domain.CodeValidation, fmt.Sprintf("%s has no action %q", d.Name, name), nil)
	}
	return act, nil
}

// meta returns the embedded BaseModel of rec. Validate guarantees T has one.
func meta[T any](rec *T) *domain.BaseModel {
	return any(rec).(interface{ Meta() *domain.BaseModel }).Meta()
}

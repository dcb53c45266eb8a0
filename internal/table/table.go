// Package table is the generic table view model: column definitions, the
// sort/filter/selection state a user manipulates, and a pure Render step that
// turns a page of records into rows ready for a template. The table never
// sorts, filters or fetches data itself; it emits events for the page
// controller to act on.
package table

import (
	"slices"

	"github.com/simp-lee/hrdesk/internal/domain"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Column describes one table column over records of type T.
type Column[T any] struct {
	Key        string // JSON field name, also the sort and filter key
	Header     string
	Sortable   bool
	Filterable bool
	Options    []string // fixed filter choices; empty means free text
	Render     func(T) string
}

// EventKind identifies what a table interaction changed.
type EventKind int

const (
	EventSort EventKind = iota + 1
	EventFilter
	EventPage
	EventPageSize
)

// Event is emitted by a table interaction and consumed by the page controller.
type Event struct {
	Kind      EventKind
	Field     string
	Direction Direction
	Filters   domain.Params // full active filter set for EventFilter
	Page      int           // 1-based, for EventPage
	Size      int           // for EventPageSize
}

// State is the interactive state of a table.
type State struct {
	SortField     string
	SortDirection Direction
	Filters       domain.Params
	Selected      map[uint]bool
}

// ToggleSort sorts by field ascending, or flips the direction when field is
// already the sort field.
func (s *State) ToggleSort(field string) Event {
	if s.SortField == field && s.SortDirection == Asc {
		s.SortDirection = Desc
	} else {
		s.SortField = field
		s.SortDirection = Asc
	}
	return Event{Kind: EventSort, Field: s.SortField, Direction: s.SortDirection}
}

// SetFilter sets or clears (empty value) one filter and reports the whole
// active set.
func (s *State) SetFilter(key, value string) Event {
	if value == "" {
		s.Filters.Del(key)
	} else {
		s.Filters.Set(key, value)
	}
	return Event{Kind: EventFilter, Filters: s.Filters.Clone()}
}

// PageChange requests a 1-based page.
func PageChange(page int) Event { return Event{Kind: EventPage, Page: page} }

// PageSizeChange requests a new page size.
func PageSizeChange(size int) Event { return Event{Kind: EventPageSize, Size: size} }

// ToggleRow flips the selection of one row.
func (s *State) ToggleRow(id uint) {
	if s.Selected == nil {
		s.Selected = make(map[uint]bool)
	}
	if s.Selected[id] {
		delete(s.Selected, id)
	} else {
		s.Selected[id] = true
	}
}

// ToggleAll selects every row on the current page, or clears them all when
// they are already all selected.
func (s *State) ToggleAll(pageIDs []uint) {
	if s.Selected == nil {
		s.Selected = make(map[uint]bool)
	}
	if s.AllSelected(pageIDs) {
		for _, id := range pageIDs {
			delete(s.Selected, id)
		}
		return
	}
	for _, id := range pageIDs {
		s.Selected[id] = true
	}
}

// AllSelected reports whether every id in pageIDs is selected. An empty page
// is never all selected.
func (s *State) AllSelected(pageIDs []uint) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.Selected[id] {
			return false
		}
	}
	return true
}

// SelectedIDs returns the selected ids in ascending order.
func (s *State) SelectedIDs() []uint {
	out := make([]uint, 0, len(s.Selected))
	for id, ok := range s.Selected {
		if ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// SortParam formats the sort state as a field,dir query value.
func (s *State) SortParam() string {
	if s.SortField == "" {
		return ""
	}
	dir := s.SortDirection
	if dir == "" {
		dir = Asc
	}
	return s.SortField + "," + string(dir)
}

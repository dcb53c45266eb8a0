package table

import (
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

// EmptyMessage is the text of the placeholder row of an empty table.
const EmptyMessage = "No records found"

// Pagination is the 1-based paging info shown under a table.
type Pagination struct {
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

// PaginationOf converts a 0-based page envelope into table pagination.
func PaginationOf[T any](p *domain.Page[T]) Pagination {
	return Pagination{Page: p.Number + 1, Size: p.Size, Total: p.TotalElements, TotalPages: p.TotalPages}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }

// Window returns up to width page numbers centred on the current page.
func (p Pagination) Window(width int) []int {
	if p.TotalPages <= 0 || width <= 0 {
		return nil
	}
	start := max(1, p.Page-width/2)
	end := min(p.TotalPages, start+width-1)
	start = max(1, end-width+1)
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// Header is a rendered column header.
type Header struct {
	Key        string
	Label      string
	Sortable   bool
	Active     bool
	Direction  Direction
	Filterable bool
	Filter     string
	Options    []string
}

// Cell is one rendered value.
type Cell struct {
	Key  string
	Text string
}

// Row is a rendered record, or the single placeholder row of an empty table.
type Row struct {
	ID          uint
	Cells       []Cell
	Selected    bool
	Placeholder bool
	Span        int
	Message     string
}

// View is everything a template needs to draw a table.
type View struct {
	Headers     []Header
	Rows        []Row
	Pagination  Pagination
	Sort        string
	AllSelected bool
	Empty       bool
}

// Render turns one page of data into a View. It does not reorder or filter
// data. An empty page renders a single placeholder row spanning all columns.
func Render[T any](data []T, columns []Column[T], state State, p Pagination) View {
	v := View{
		Headers:    make([]Header, len(columns)),
		Pagination: p,
		Sort:       state.SortParam(),
	}
	for i, col := range columns {
		h := Header{
			Key:        col.Key,
			Label:      col.Header,
			Sortable:   col.Sortable,
			Filterable: col.Filterable,
			Options:    col.Options,
		}
		if col.Sortable && state.SortField == col.Key {
			h.Active = true
			h.Direction = state.SortDirection
		}
		if f, ok := state.Filters.Get(col.Key); ok {
			h.Filter = pkg.FormatValue(f)
		}
		v.Headers[i] = h
	}

	if len(data) == 0 {
		v.Empty = true
		v.Rows = []Row{{Placeholder: true, Span: len(columns), Message: EmptyMessage}}
		return v
	}

	ids := make([]uint, 0, len(data))
	v.Rows = make([]Row, 0, len(data))
	for i := range data {
		row := Row{Cells: make([]Cell, len(columns))}
		if k, ok := any(&data[i]).(interface{ Key() uint }); ok {
			row.ID = k.Key()
			row.Selected = state.Selected[row.ID]
			ids = append(ids, row.ID)
		}
		for j, col := range columns {
			row.Cells[j] = Cell{Key: col.Key, Text: cellText(data[i], col)}
		}
		v.Rows = append(v.Rows, row)
	}
	v.AllSelected = state.AllSelected(ids)
	return v
}

func cellText[T any](rec T, col Column[T]) string {
	if col.Render != nil {
		return col.Render(rec)
	}
	val, ok := pkg.FieldValue(&rec, col.Key)
	if !ok || val == nil {
		return ""
	}
	return pkg.FormatValue(val)
}

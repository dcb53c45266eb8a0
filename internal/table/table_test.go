package table

import (
	"strings"
	"testing"

	"github.com/simp-lee/hrdesk/internal/domain"
)

type row struct {
	domain.BaseModel
	Name   string `json:"name"`
	Status string `json:"status"`
	Boss   *uint  `json:"boss"`
}

func columns() []Column[row] {
	return []Column[row]{
		{Key: "id", Header: "ID", Sortable: true},
		{Key: "name", Header: "Name", Sortable: true, Filterable: true},
		{Key: "status", Header: "Status", Filterable: true, Options: []string{"ACTIVE", "INACTIVE"}},
		{Key: "boss", Header: "Boss"},
		{Key: "label", Header: "Label", Render: func(r row) string { return strings.ToUpper(r.Name) }},
	}
}

func TestToggleSort(t *testing.T) {
	var s State

	steps := []struct {
		field string
		dir   Direction
	}{
		{"name", Asc},
		{"name", Desc},
		{"name", Asc},
		{"status", Asc},
		{"status", Desc},
		{"name", Asc},
	}
	for i, step := range steps {
		e := s.ToggleSort(step.field)
		if e.Kind != EventSort || e.Field != step.field || e.Direction != step.dir {
			t.Errorf("step %d: event = %+v, want %s %s", i, e, step.field, step.dir)
		}
	}
	if s.SortParam() != "name,asc" {
		t.Errorf("SortParam() = %q", s.SortParam())
	}
}

func TestSetFilter_EmitsFullActiveSet(t *testing.T) {
	var s State

	s.SetFilter("status", "ACTIVE")
	e := s.SetFilter("search", "ada")
	if e.Kind != EventFilter || len(e.Filters) != 2 {
		t.Fatalf("event = %+v, want two filters", e)
	}
	if v, _ := e.Filters.Get("status"); v != "ACTIVE" {
		t.Errorf("status = %v", v)
	}

	e = s.SetFilter("status", "")
	if len(e.Filters) != 1 {
		t.Errorf("filters after clear = %+v", e.Filters)
	}
	if _, ok := e.Filters.Get("status"); ok {
		t.Error("cleared filter still present")
	}

	e.Filters.Set("mutated", "x")
	if _, ok := s.Filters.Get("mutated"); ok {
		t.Error("event filters alias state filters")
	}
}

func TestPageEvents(t *testing.T) {
	if e := PageChange(3); e.Kind != EventPage || e.Page != 3 {
		t.Errorf("PageChange = %+v", e)
	}
	if e := PageSizeChange(25); e.Kind != EventPageSize || e.Size != 25 {
		t.Errorf("PageSizeChange = %+v", e)
	}
}

func TestToggleRowAndAll(t *testing.T) {
	var s State
	page := []uint{1, 2, 3}

	s.ToggleRow(2)
	if !s.Selected[2] {
		t.Fatal("row 2 not selected")
	}
	s.ToggleRow(2)
	if s.Selected[2] {
		t.Fatal("row 2 still selected after second toggle")
	}

	s.ToggleRow(1)
	s.ToggleAll(page)
	if !s.AllSelected(page) {
		t.Fatalf("partial selection + ToggleAll should select all, got %v", s.SelectedIDs())
	}
	s.ToggleAll(page)
	if len(s.SelectedIDs()) != 0 {
		t.Errorf("ToggleAll on full page should clear, got %v", s.SelectedIDs())
	}

	s.ToggleRow(9)
	s.ToggleAll(page)
	s.ToggleAll(page)
	if got := s.SelectedIDs(); len(got) != 1 || got[0] != 9 {
		t.Errorf("selection outside the page changed: %v", got)
	}

	if s.AllSelected(nil) {
		t.Error("empty page reported as all selected")
	}
}

func TestRender_EmptyDataYieldsPlaceholder(t *testing.T) {
	v := Render(nil, columns(), State{}, Pagination{Page: 1, Size: 10})

	if !v.Empty || len(v.Rows) != 1 {
		t.Fatalf("rows = %+v, want one placeholder", v.Rows)
	}
	r := v.Rows[0]
	if !r.Placeholder || r.Span != 5 || r.Message != EmptyMessage {
		t.Errorf("placeholder = %+v", r)
	}
	if len(v.Headers) != 5 {
		t.Errorf("headers = %d, want 5", len(v.Headers))
	}
}

func TestRender_Rows(t *testing.T) {
	boss := uint(7)
	data := []row{
		{BaseModel: domain.BaseModel{ID: 2}, Name: "Finance", Status: "ACTIVE", Boss: &boss},
		{BaseModel: domain.BaseModel{ID: 1}, Name: "Engineering", Status: "INACTIVE"},
	}
	var s State
	s.ToggleSort("name")
	s.ToggleSort("name")
	s.SetFilter("status", "ACTIVE")
	s.ToggleRow(1)

	v := Render(data, columns(), s, Pagination{Page: 1, Size: 10, Total: 2, TotalPages: 1})

	if v.Empty || len(v.Rows) != 2 {
		t.Fatalf("rows = %+v", v.Rows)
	}
	if v.Rows[0].ID != 2 || v.Rows[1].ID != 1 {
		t.Errorf("render reordered rows: %d, %d", v.Rows[0].ID, v.Rows[1].ID)
	}
	first := v.Rows[0].Cells
	if first[0].Text != "2" || first[1].Text != "Finance" || first[3].Text != "7" || first[4].Text != "FINANCE" {
		t.Errorf("cells = %+v", first)
	}
	if v.Rows[1].Cells[3].Text != "" {
		t.Errorf("nil pointer cell = %q, want empty", v.Rows[1].Cells[3].Text)
	}
	if v.Rows[0].Selected || !v.Rows[1].Selected || v.AllSelected {
		t.Errorf("selection = %v/%v all=%v", v.Rows[0].Selected, v.Rows[1].Selected, v.AllSelected)
	}

	name := v.Headers[1]
	if !name.Active || name.Direction != Desc {
		t.Errorf("name header = %+v", name)
	}
	if v.Headers[0].Active {
		t.Error("id header marked active")
	}
	if v.Headers[2].Filter != "ACTIVE" || len(v.Headers[2].Options) != 2 {
		t.Errorf("status header = %+v", v.Headers[2])
	}
	if v.Sort != "name,desc" {
		t.Errorf("Sort = %q", v.Sort)
	}
}

func TestPagination(t *testing.T) {
	p := PaginationOf(&domain.Page[row]{Number: 0, Size: 10, TotalElements: 95, TotalPages: 10})
	if p.Page != 1 || p.HasPrev() || !p.HasNext() {
		t.Errorf("first page = %+v", p)
	}

	tests := []struct {
		page  int
		width int
		want  []int
	}{
		{1, 5, []int{1, 2, 3, 4, 5}},
		{5, 5, []int{3, 4, 5, 6, 7}},
		{10, 5, []int{6, 7, 8, 9, 10}},
		{2, 20, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		p.Page = tt.page
		got := p.Window(tt.width)
		if len(got) != len(tt.want) {
			t.Errorf("Window(page %d) = %v, want %v", tt.page, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Window(page %d) = %v, want %v", tt.page, got, tt.want)
				break
			}
		}
	}

	if (Pagination{}).Window(5) != nil {
		t.Error("window of empty pagination should be nil")
	}
}

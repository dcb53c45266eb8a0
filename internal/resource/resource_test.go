package resource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/simp-lee/hrdesk/internal/domain"
)

type (
	deptStore = MemoryStore[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate]
	empStore  = MemoryStore[domain.Employee, domain.EmployeeCreate, domain.EmployeeUpdate]
)

func departmentDef() *Definition[domain.Department] {
	return &Definition[domain.Department]{
		Name:   "department",
		Path:   "departments",
		Title:  "Departments",
		Equal:  []string{"organizationId", "status"},
		Search: []string{"name", "code"},
	}
}

func employeeDef() *Definition[domain.Employee] {
	return &Definition[domain.Employee]{
		Name:  "employee",
		Path:  "employees",
		Title: "Employees",
		Equal: []string{"status", "departmentId"},
		Ranges: []Range{
			{Param: "hireDateFrom", Field: "hireDate", Op: AtLeast},
			{Param: "hireDateTo", Field: "hireDate", Op: AtMost},
		},
		Search: []string{"firstName", "lastName", "email"},
		Actions: map[string]Action[domain.Employee]{
			"activate":  (*domain.Employee).Activate,
			"leave":     (*domain.Employee).Leave,
			"terminate": (*domain.Employee).Terminate,
		},
	}
}

func departmentSeed() []domain.Department {
	return []domain.Department{
		{BaseModel: domain.BaseModel{ID: 1}, OrganizationID: 1, Name: "Engineering", Code: "ENG", Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 2}, OrganizationID: 1, Name: "Finance", Code: "FIN", Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 3}, OrganizationID: 2, Name: "Human Resources", Code: "HR", Status: "INACTIVE"},
	}
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }

func employeeSeed() []domain.Employee {
	return []domain.Employee{
		{BaseModel: domain.BaseModel{ID: 1}, EmployeeCode: "E001", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Status: "ACTIVE", DepartmentID: uintPtr(1), HireDate: "2019-03-01"},
		{BaseModel: domain.BaseModel{ID: 2}, EmployeeCode: "E002", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Status: "ON_LEAVE", DepartmentID: uintPtr(1), HireDate: "2020-07-15"},
		{BaseModel: domain.BaseModel{ID: 3}, EmployeeCode: "E003", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Status: "ACTIVE", DepartmentID: uintPtr(2), HireDate: "2021-01-10"},
		{BaseModel: domain.BaseModel{ID: 4}, EmployeeCode: "E004", FirstName: "Linus", LastName: "Torvalds", Email: "linus@example.com", Status: "TERMINATED", HireDate: "2022-11-30"},
	}
}

func newDeptStore() *deptStore {
	return NewMemoryStore[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](departmentDef(), departmentSeed())
}

func newEmpStore() *empStore {
	return NewMemoryStore[domain.Employee, domain.EmployeeCreate, domain.EmployeeUpdate](employeeDef(), employeeSeed())
}

func filters(kv ...any) domain.Params {
	var p domain.Params
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i].(string), kv[i+1])
	}
	return p
}

func ids[T any](items []T) []uint {
	out := make([]uint, len(items))
	for i := range items {
		out[i] = meta(&items[i]).ID
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDefinition_Validate(t *testing.T) {
	if err := departmentDef().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if err := employeeDef().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	bad := departmentDef()
	bad.Search = []string{"nope"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown search field")
	}

	shadow := employeeDef()
	shadow.Ranges = append(shadow.Ranges, Range{Param: "status", Field: "hireDate"})
	if err := shadow.Validate(); err == nil {
		t.Error("expected error for range param shadowing an equality filter")
	}
}

func TestDefinition_ActionNamesSorted(t *testing.T) {
	got := employeeDef().ActionNames()
	want := []string{"activate", "leave", "terminate"}
	if len(got) != len(want) {
		t.Fatalf("ActionNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ActionNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMemoryStore_GetMissingIsNotFound(t *testing.T) {
	s := newDeptStore()

	_, err := s.Get(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Fatalf("Get(999) err = %v, want not found", err)
	}
	if err.Error() != "department 999 not found" {
		t.Errorf("message = %q", err.Error())
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) && (appErr.Resource != "department" || appErr.ID != 999) {
		t.Errorf("resource/id = %q/%d", appErr.Resource, appErr.ID)
	}
}

func TestMemoryStore_GetIsIdempotent(t *testing.T) {
	s := newDeptStore()
	ctx := context.Background()

	a, err := s.Get(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Get(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != b.Name || a.UpdatedAt != b.UpdatedAt {
		t.Errorf("repeated Get differs: %+v vs %+v", a, b)
	}

	a.Name = "changed"
	c, _ := s.Get(ctx, 2)
	if c.Name != "Finance" {
		t.Errorf("store aliased returned record, name = %q", c.Name)
	}
}

func TestMemoryStore_SearchMatchesSubstringCaseInsensitive(t *testing.T) {
	s := newDeptStore()

	page, err := s.List(context.Background(), domain.PageRequest{Size: 10, Filters: filters("search", "Eng")})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 1 || page.Content[0].Name != "Engineering" {
		t.Fatalf("content = %+v, want only Engineering", page.Content)
	}
	if page.TotalElements != 1 {
		t.Errorf("totalElements = %d, want 1", page.TotalElements)
	}

	page, _ = s.List(context.Background(), domain.PageRequest{Size: 10, Filters: filters("search", "fin")})
	if got := ids(page.Content); !equalIDs(got, []uint{2}) {
		t.Errorf("search by code ids = %v, want [2]", got)
	}
}

// literalSearchCases keep surrounding whitespace as part of the term.
var literalSearchCases = []struct {
	name string
	term string
	want []uint
}{
	{"trailing space", "Eng ", []uint{}},
	{"leading space", " Fin", []uint{}},
	{"inner space", "n r", []uint{3}},
	{"whitespace only", " ", []uint{3}},
}

func TestMemoryStore_SearchKeepsWhitespace(t *testing.T) {
	s := newDeptStore()

	for _, tt := range literalSearchCases {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.List(context.Background(), domain.PageRequest{Size: 10, Filters: filters("search", tt.term)})
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(page.Content); !equalIDs(got, tt.want) {
				t.Errorf("search %q ids = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestMemoryStore_Filters(t *testing.T) {
	s := newEmpStore()

	tests := []struct {
		name    string
		filters domain.Params
		want    []uint
	}{
		{"no filters", nil, []uint{1, 2, 3, 4}},
		{"equality", filters("status", "ACTIVE"), []uint{1, 3}},
		{"membership", filters("status", []string{"ON_LEAVE", "TERMINATED"}), []uint{2, 4}},
		{"pointer field", filters("departmentId", "1"), []uint{1, 2}},
		{"range from", filters("hireDateFrom", "2020-07-15"), []uint{2, 3, 4}},
		{"range to", filters("hireDateTo", "2020-12-31"), []uint{1, 2}},
		{"range window", filters("hireDateFrom", "2020-01-01", "hireDateTo", "2021-12-31"), []uint{2, 3}},
		{"search", filters("search", "TUR"), []uint{3}},
		{"combined", filters("status", "ACTIVE", "hireDateFrom", "2020-01-01", "search", "alan"), []uint{3}},
		{"empty value ignored", filters("status", ""), []uint{1, 2, 3, 4}},
		{"unknown key ignored", filters("favouriteColour", "blue"), []uint{1, 2, 3, 4}},
		{"no match", filters("search", "zzz"), []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.List(context.Background(), domain.PageRequest{Size: 10, Filters: tt.filters})
			if err != nil {
				t.Fatal(err)
			}
			if got := ids(page.Content); !equalIDs(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemoryStore_ListPaginates(t *testing.T) {
	var seed []domain.Department
	for i := 0; i < 25; i++ {
		seed = append(seed, domain.Department{Name: "D", Code: "D"})
	}
	s := NewMemoryStore[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](departmentDef(), seed)

	page, err := s.List(context.Background(), domain.PageRequest{Page: 2, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 5 || page.TotalElements != 25 || page.TotalPages != 3 {
		t.Errorf("page = %d items, total %d, pages %d", len(page.Content), page.TotalElements, page.TotalPages)
	}
	if !page.Last || page.First {
		t.Errorf("first/last = %v/%v", page.First, page.Last)
	}
	if page.Content[0].ID != 21 {
		t.Errorf("first id on page = %d, want 21", page.Content[0].ID)
	}

	page, _ = s.List(context.Background(), domain.PageRequest{Page: 9, Size: 10})
	if page.Content == nil || len(page.Content) != 0 {
		t.Errorf("out of range page content = %v, want empty slice", page.Content)
	}
}

func TestMemoryStore_HugePageIsEmptyLastPage(t *testing.T) {
	s := newDeptStore()

	page, err := s.List(context.Background(), domain.PageRequest{Page: 1 << 62, Size: 100})
	if err != nil {
		t.Fatal(err)
	}
	if page.Content == nil || len(page.Content) != 0 || page.TotalElements != 3 {
		t.Errorf("page = %v, total %d, want empty content, total 3", page.Content, page.TotalElements)
	}
	if !page.Last || page.First {
		t.Errorf("first/last = %v/%v, want false/true", page.First, page.Last)
	}
}

func TestMemoryStore_Sort(t *testing.T) {
	s := newEmpStore()

	page, _ := s.List(context.Background(), domain.PageRequest{Size: 10, Sort: "hireDate,desc"})
	if got := ids(page.Content); !equalIDs(got, []uint{4, 3, 2, 1}) {
		t.Errorf("desc ids = %v", got)
	}
	page, _ = s.List(context.Background(), domain.PageRequest{Size: 10, Sort: "firstName,asc"})
	if got := ids(page.Content); !equalIDs(got, []uint{1, 3, 2, 4}) {
		t.Errorf("asc ids = %v", got)
	}
	page, _ = s.List(context.Background(), domain.PageRequest{Size: 10, Sort: "bogus,asc"})
	if got := ids(page.Content); !equalIDs(got, []uint{1, 2, 3, 4}) {
		t.Errorf("unknown sort field reordered: %v", got)
	}
}

func TestMemoryStore_CreateThenGet(t *testing.T) {
	s := newDeptStore()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := s.Create(ctx, domain.DepartmentCreate{OrganizationID: 1, Name: "Legal", Code: "LEG"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 4 {
		t.Errorf("id = %d, want 4", created.ID)
	}
	if !created.CreatedAt.Equal(fixed) || !created.UpdatedAt.Equal(fixed) {
		t.Errorf("timestamps = %v/%v", created.CreatedAt, created.UpdatedAt)
	}
	if created.Status != "ACTIVE" {
		t.Errorf("status = %q, want default ACTIVE", created.Status)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Legal" || got.Code != "LEG" {
		t.Errorf("Get after Create = %+v", got)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestMemoryStore_CreateOnEmptyStoreStartsAtOne(t *testing.T) {
	s := NewMemoryStore[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](departmentDef(), nil)

	rec, err := s.Create(context.Background(), domain.DepartmentCreate{Name: "First"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != 1 {
		t.Errorf("id = %d, want 1", rec.ID)
	}
}

func TestMemoryStore_UpdateMergesPresentFields(t *testing.T) {
	s := newDeptStore()
	before, _ := s.Get(context.Background(), 1)
	later := before.UpdatedAt.Add(time.Hour)
	s.now = func() time.Time { return later }

	got, err := s.Update(context.Background(), 1, domain.DepartmentUpdate{Name: strPtr("Platform")})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Platform" || got.Code != "ENG" || got.Status != "ACTIVE" {
		t.Errorf("updated = %+v", got)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("updatedAt = %v, want %v", got.UpdatedAt, later)
	}
	if !got.CreatedAt.Equal(before.CreatedAt) || got.ID != 1 {
		t.Errorf("id/createdAt changed: %d %v", got.ID, got.CreatedAt)
	}

	if _, err := s.Update(context.Background(), 42, domain.DepartmentUpdate{}); !domain.IsNotFound(err) {
		t.Errorf("Update(42) err = %v, want not found", err)
	}
}

func TestMemoryStore_DeleteTwice(t *testing.T) {
	s := newDeptStore()
	ctx := context.Background()

	if err := s.Delete(ctx, 2); err != nil {
		t.Fatalf("first Delete = %v", err)
	}
	if err := s.Delete(ctx, 2); !domain.IsNotFound(err) {
		t.Fatalf("second Delete = %v, want not found", err)
	}
	if _, err := s.Get(ctx, 2); !domain.IsNotFound(err) {
		t.Errorf("Get after Delete = %v, want not found", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestMemoryStore_Do(t *testing.T) {
	s := newEmpStore()
	ctx := context.Background()

	got, err := s.Do(ctx, 1, "terminate")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.EmployeeTerminated {
		t.Errorf("status = %q", got.Status)
	}

	_, err = s.Do(ctx, 1, "leave")
	if !domain.IsValidation(err) {
		t.Fatalf("invalid transition err = %v, want validation", err)
	}
	cur, _ := s.Get(ctx, 1)
	if cur.Status != domain.EmployeeTerminated {
		t.Errorf("failed action changed status to %q", cur.Status)
	}

	if _, err := s.Do(ctx, 1, "promote"); !domain.IsValidation(err) {
		t.Errorf("unknown action err = %v, want validation", err)
	}
	if _, err := s.Do(ctx, 99, "leave"); !domain.IsNotFound(err) {
		t.Errorf("missing record err = %v, want not found", err)
	}
}

func TestMemoryStore_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	s := newDeptStore()
	const n = 50

	var wg sync.WaitGroup
	idCh := make(chan uint, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.Create(context.Background(), domain.DepartmentCreate{Name: "x"})
			if err == nil {
				idCh <- rec.ID
			}
		}()
	}
	wg.Wait()
	close(idCh)

	seen := make(map[uint]bool)
	for id := range idCh {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n || s.Len() != n+3 {
		t.Errorf("created %d, store has %d", len(seen), s.Len())
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := newDeptStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.List(ctx, domain.PageRequest{Size: 10}); !errors.Is(err, context.Canceled) {
		t.Errorf("List err = %v", err)
	}
	if err := s.Delete(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Delete err = %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d after canceled delete", s.Len())
	}
}

func TestSelect(t *testing.T) {
	src, err := Select[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](Backend{Mock: true}, departmentDef(), departmentSeed())
	if err != nil {
		t.Fatal(err)
	}
	if src.Kind() != KindMemory {
		t.Errorf("Kind() = %q", src.Kind())
	}

	if _, err := Select[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](Backend{}, departmentDef(), nil); err == nil {
		t.Error("expected error for database backend without a database")
	}

	bad := departmentDef()
	bad.Equal = []string{"missing"}
	if _, err := Select[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](Backend{Mock: true}, bad, nil); err == nil {
		t.Error("expected definition validation error")
	}
}

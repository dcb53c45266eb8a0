package crud_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/simp-lee/hrdesk/internal/app"
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/export"
	"github.com/simp-lee/hrdesk/internal/module/crud"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
	"github.com/simp-lee/hrdesk/web"
)

type deptStore = resource.MemoryStore[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate]

func pageDef() *resource.Definition[domain.Department] {
	return &resource.Definition[domain.Department]{
		Name:   "department",
		Path:   "departments",
		Title:  "Departments",
		Equal:  []string{"status"},
		Search: []string{"name", "code"},
	}
}

var deptColumns = []table.Column[domain.Department]{
	{Key: "name", Header: "Name", Sortable: true},
	{Key: "code", Header: "Code", Sortable: true},
	{Key: "status", Header: "Status", Filterable: true, Options: []string{"ACTIVE", "INACTIVE"}},
}

func setupPages(t *testing.T) (*gin.Engine, *deptStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	def := pageDef()
	store := resource.NewMemoryStore[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](def, []domain.Department{
		{BaseModel: domain.BaseModel{ID: 1}, OrganizationID: 1, Name: "Engineering", Code: "ENG", Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 2}, OrganizationID: 1, Name: "Finance", Code: "FIN", Status: "ACTIVE"},
		{BaseModel: domain.BaseModel{ID: 3}, OrganizationID: 2, Name: "Human Resources", Code: "HR", Status: "INACTIVE"},
	})
	client := resource.NewClient[domain.Department, domain.DepartmentCreate, domain.DepartmentUpdate](def, store, resource.Options{})

	renderer, err := app.NewTemplateRenderer(web.EmbeddedFS, false)
	if err != nil {
		t.Fatalf("NewTemplateRenderer: %v", err)
	}

	r := gin.New()
	r.HTMLRender = renderer
	m := crud.NewModule(client, deptColumns, &crud.Layout{AppName: "HR Desk", Mode: "mock"})
	m.RegisterRoutes(r.Group("/api/v1"), r.Group("/"))
	return r, store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sendForm(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPage_RendersRows(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Engineering", "Finance", "Human Resources", `name="ids" value="2"`, "3 records"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "data-empty-state") {
		t.Error("non-empty list rendered the empty state")
	}
}

func TestListPage_EmptyState(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments?search=nothing-matches")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "data-empty-state") || !strings.Contains(body, table.EmptyMessage) {
		t.Errorf("empty list did not render the placeholder row:\n%s", body)
	}
	if !strings.Contains(body, `colspan="5"`) {
		t.Error("placeholder row does not span every column")
	}
}

func TestListPage_FilterAndSortLinks(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments?status=ACTIVE&sort=name,asc")
	body := w.Body.String()
	if strings.Contains(body, "Human Resources") {
		t.Error("filtered list contains an inactive department")
	}
	if !strings.Contains(body, "status=ACTIVE&amp;sort=name%2cdesc") && !strings.Contains(body, "status=ACTIVE&amp;sort=name%2Cdesc") {
		t.Error("sort link does not toggle the direction and keep the filter")
	}
	if i, j := strings.Index(body, "Engineering"), strings.Index(body, "Finance"); i < 0 || j < 0 || i > j {
		t.Error("rows are not sorted by name")
	}
}

func TestListPage_Pagination(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments?size=2&page=2&sort=name,asc")
	body := w.Body.String()
	if !strings.Contains(body, "Human Resources") || strings.Contains(body, ">Engineering<") {
		t.Errorf("page 2 shows the wrong rows:\n%s", body)
	}
	if !strings.Contains(body, "Prev") {
		t.Error("second page has no previous link")
	}
}

func TestListPage_HugePageNumber(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments?size=100&page=9223372036854775807")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, ">Engineering<") {
		t.Errorf("page past the end shows rows:\n%s", body)
	}
}

func TestNewPage_RendersFields(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments/new")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`hx-post="/departments"`, `name="name"`, `name="code"`, "<textarea", `<option value="INACTIVE"`} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
}

func TestEditPage(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments/2/edit")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `hx-put="/departments/2"`) || !strings.Contains(body, `value="Finance"`) {
		t.Errorf("edit form not filled:\n%s", body)
	}

	w = get(r, "/departments/999/edit")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing record status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Department 999 not found.") {
		t.Error("404 page does not name the missing record")
	}
}

func TestCreateHTMX(t *testing.T) {
	r, store := setupPages(t)

	w := sendForm(r, http.MethodPost, "/departments", url.Values{
		"organizationId": {"1"},
		"name":           {"Operations"},
		"code":           {"OPS"},
		"status":         {"ACTIVE"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("HX-Redirect"); got != "/departments" {
		t.Errorf("HX-Redirect = %q", got)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "Department created") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
	if store.Len() != 4 {
		t.Errorf("store len = %d, want 4", store.Len())
	}
}

func TestCreateHTMX_ValidationKeepsDraft(t *testing.T) {
	r, store := setupPages(t)

	w := sendForm(r, http.MethodPost, "/departments", url.Values{
		"organizationId": {"1"},
		"code":           {"OPS"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Please check the highlighted fields.") {
		t.Error("form error missing")
	}
	if !strings.Contains(body, `value="OPS"`) {
		t.Error("draft value was not kept")
	}
	if !strings.Contains(body, "field-error") {
		t.Error("inline field error missing")
	}
	if w.Header().Get("HX-Redirect") != "" {
		t.Error("failed create must not redirect")
	}
	if store.Len() != 3 {
		t.Errorf("store len = %d, want 3", store.Len())
	}
}

func TestUpdateHTMX(t *testing.T) {
	r, store := setupPages(t)

	w := sendForm(r, http.MethodPut, "/departments/1", url.Values{"name": {"Platform"}})
	if got := w.Header().Get("HX-Redirect"); got != "/departments" {
		t.Fatalf("HX-Redirect = %q, body = %s", got, w.Body.String())
	}
	got, err := store.Get(t.Context(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Platform" || got.Code != "ENG" {
		t.Errorf("record = %+v", got)
	}
}

func TestConfirmAndDelete(t *testing.T) {
	r, store := setupPages(t)

	w := get(r, "/departments/2/delete")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `hx-delete="/departments/2"`) {
		t.Fatalf("confirm page: status %d", w.Code)
	}
	if store.Len() != 3 {
		t.Fatal("confirm page must not delete")
	}

	w = sendForm(r, http.MethodDelete, "/departments/2", nil)
	if w.Header().Get("HX-Redirect") != "/departments" {
		t.Errorf("HX-Redirect = %q", w.Header().Get("HX-Redirect"))
	}
	if store.Len() != 2 {
		t.Errorf("store len = %d, want 2", store.Len())
	}

	w = sendForm(r, http.MethodDelete, "/departments/2", nil)
	if w.Header().Get("HX-Reswap") != "none" {
		t.Error("deleting a missing record should not swap")
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "not found") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
}

func TestBulkDeleteHTMX_PartialFailure(t *testing.T) {
	r, store := setupPages(t)

	w := sendForm(r, http.MethodPost, "/departments/bulk-delete", url.Values{"ids": {"1", "999", "3"}})
	trigger := w.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "Deleted 2 of 3 records") || !strings.Contains(trigger, "999") {
		t.Errorf("HX-Trigger = %q", trigger)
	}
	if store.Len() != 1 {
		t.Errorf("store len = %d, want 1", store.Len())
	}
}

func TestBulkDeleteHTMX_NothingSelected(t *testing.T) {
	r, store := setupPages(t)

	w := sendForm(r, http.MethodPost, "/departments/bulk-delete", url.Values{})
	if w.Header().Get("HX-Reswap") != "none" {
		t.Error("empty selection should not swap")
	}
	if store.Len() != 3 {
		t.Errorf("store len = %d", store.Len())
	}
}

func TestExport(t *testing.T) {
	r, _ := setupPages(t)

	w := get(r, "/departments/export?status=ACTIVE")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "departments.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Departments")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %v, want header plus 2 active departments", rows)
	}
}

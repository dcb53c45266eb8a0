package crud

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/hrdesk/internal/console"
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/export"
	"github.com/simp-lee/hrdesk/internal/middleware"
	"github.com/simp-lee/hrdesk/internal/pkg"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

// MaxExportRows caps the number of records one export may contain.
const MaxExportRows = 10000

// PageSizes are the page sizes offered on list pages.
var PageSizes = []int{10, 25, 50, 100}

// NavItem is one entry of the console navigation.
type NavItem struct {
	Title string
	Path  string
}

// Layout is shared by every console page.
type Layout struct {
	AppName string
	Mode    string // data source kind shown in the footer
	Nav     []NavItem
}

// PageHandler serves the console pages of one resource. Each request builds
// its own console.Controller from the query string.
type PageHandler[T any, C resource.Creator[T], U resource.Patcher[T]] struct {
	source  console.Source[T, C, U]
	def     *resource.Definition[T]
	columns []table.Column[T]
	layout  *Layout
}

func NewPageHandler[T any, C resource.Creator[T], U resource.Patcher[T]](source console.Source[T, C, U], def *resource.Definition[T], columns []table.Column[T], layout *Layout) *PageHandler[T, C, U] {
	if layout == nil {
		layout = &Layout{}
	}
	return &PageHandler[T, C, U]{source: source, def: def, columns: columns, layout: layout}
}

func (h *PageHandler[T, C, U]) baseURL() string { return "/" + h.def.Path }

// controller restores list state from the query: page (1-based), size,
// sort=field,dir and any other parameter as a filter.
func (h *PageHandler[T, C, U]) controller(c *gin.Context) *console.Controller[T, C, U] {
	ctrl := console.NewController(h.source)
	req := pkg.ParsePageRequest(c)
	ctrl.PageSize = req.Size
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		ctrl.Page = pkg.ClampPage(p-1, ctrl.PageSize) + 1
	}
	if field, desc, ok := pkg.ParseSort(req.Sort); ok && h.def.Sortable(field) {
		ctrl.Table.SortField = field
		ctrl.Table.SortDirection = table.Asc
		if desc {
			ctrl.Table.SortDirection = table.Desc
		}
	}
	ctrl.Table.Filters = req.Filters
	return ctrl
}

func (h *PageHandler[T, C, U]) data(c *gin.Context, extra gin.H) gin.H {
	d := gin.H{
		"Title":     h.def.Title,
		"Name":      h.def.Name,
		"BaseURL":   h.baseURL(),
		"Layout":    h.layout,
		"CSRFToken": middleware.GetCSRFToken(c),
	}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

// ListPage renders the list with filters, sorting, paging and selection.
// GET /{path}
func (h *PageHandler[T, C, U]) ListPage(c *gin.Context) {
	ctrl := h.controller(c)
	if err := ctrl.Load(c.Request.Context()); err != nil {
		slog.WarnContext(c.Request.Context(), "list page: load failed", "resource", h.def.Name, "error", err)
	}
	h.renderList(c, ctrl)
}

func (h *PageHandler[T, C, U]) renderList(c *gin.Context, ctrl *console.Controller[T, C, U]) {
	view := ctrl.View(h.columns)
	keys := make([]string, 0, len(h.columns))
	for _, col := range h.columns {
		if col.Sortable {
			keys = append(keys, col.Key)
		}
	}
	search, _ := ctrl.Table.Filters.Get(resource.SearchParam)

	c.HTML(http.StatusOK, "crud/list.html", h.data(c, gin.H{
		"Table":      view,
		"Links":      buildLinks(h.baseURL(), ctrl.Table, ctrl.PageSize, view.Pagination, keys),
		"Error":      ctrl.Error,
		"Search":     pkg.FormatValue(search),
		"Searchable": len(h.def.Search) > 0,
		"Actions":    h.def.ActionNames(),
		"PageSize":   ctrl.PageSize,
		"PageSizes":  PageSizes,
	}))
}

// NewPage renders the create form.
// GET /{path}/new
func (h *PageHandler[T, C, U]) NewPage(c *gin.Context) {
	ctrl := console.NewController(h.source)
	ctrl.OpenCreate()
	h.renderForm(c, ctrl, console.FormFields[C](nil, nil))
}

// EditPage renders the edit form filled with the stored record.
// GET /{path}/:id/edit
func (h *PageHandler[T, C, U]) EditPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", h.data(c, nil))
		return
	}

	ctrl := console.NewController(h.source)
	if err := ctrl.OpenEdit(c.Request.Context(), id); err != nil {
		h.renderLookupError(c, err)
		return
	}
	h.renderForm(c, ctrl, console.FormFields[C](ctrl.Editing, nil))
}

func (h *PageHandler[T, C, U]) renderForm(c *gin.Context, ctrl *console.Controller[T, C, U], fields []console.FormField) {
	action, method := h.baseURL(), "post"
	if ctrl.Modal == console.ModalEdit {
		action, method = fmt.Sprintf("%s/%d", h.baseURL(), ctrl.EditingID), "put"
	}
	c.HTML(http.StatusOK, "crud/form.html", h.data(c, gin.H{
		"IsEdit": ctrl.Modal == console.ModalEdit,
		"ID":     ctrl.EditingID,
		"Fields": fields,
		"Error":  ctrl.FormError,
		"Action": action,
		"Method": method,
	}))
}

// CreateHTMX handles the create form submission.
// POST /{path}
func (h *PageHandler[T, C, U]) CreateHTMX(c *gin.Context) {
	ctrl := console.NewController(h.source)
	ctrl.OpenCreate()

	if err := c.ShouldBind(&ctrl.Create); err != nil {
		slog.DebugContext(c.Request.Context(), "create: bind error", "resource", h.def.Name, "error", err)
		errs, _ := pkg.FieldErrors(err, &ctrl.Create)
		ctrl.FormError = "Please check the highlighted fields."
		h.renderForm(c, ctrl, console.FormFields[C](&ctrl.Create, errs))
		return
	}

	if _, err := ctrl.Submit(c.Request.Context()); err != nil && ctrl.Modal != console.ModalNone {
		h.renderForm(c, ctrl, console.FormFields[C](&ctrl.Create, nil))
		return
	}

	middleware.ShowToast(c, fmt.Sprintf("%s created", capitalize(h.def.Name)), middleware.ToastSuccess)
	c.Header("HX-Redirect", h.baseURL())
	c.Status(http.StatusOK)
}

// UpdateHTMX handles the edit form submission.
// PUT /{path}/:id
func (h *PageHandler[T, C, U]) UpdateHTMX(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", h.data(c, nil))
		return
	}

	ctrl := console.NewController(h.source)
	if err := ctrl.OpenEdit(c.Request.Context(), id); err != nil {
		h.renderLookupError(c, err)
		return
	}

	if err := c.ShouldBind(&ctrl.Update); err != nil {
		slog.DebugContext(c.Request.Context(), "update: bind error", "resource", h.def.Name, "error", err, "id", id)
		ctrl.FormError = "Please check the highlighted fields."
		h.renderForm(c, ctrl, console.FormFields[C](ctrl.Editing, nil))
		return
	}

	if _, err := ctrl.Submit(c.Request.Context()); err != nil && ctrl.Modal != console.ModalNone {
		draft := *ctrl.Editing
		ctrl.Update.Apply(&draft)
		h.renderForm(c, ctrl, console.FormFields[C](&draft, nil))
		return
	}

	middleware.ShowToast(c, fmt.Sprintf("%s updated", capitalize(h.def.Name)), middleware.ToastSuccess)
	c.Header("HX-Redirect", h.baseURL())
	c.Status(http.StatusOK)
}

// ConfirmDeletePage asks for confirmation before a delete.
// GET /{path}/:id/delete
func (h *PageHandler[T, C, U]) ConfirmDeletePage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "errors/400.html", h.data(c, nil))
		return
	}

	rec, err := h.source.Get(c.Request.Context(), id)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}
	ctrl := console.NewController(h.source)
	ctrl.RequestDelete(id)

	row := table.Render([]T{*rec}, h.columns, table.State{}, table.Pagination{})
	c.HTML(http.StatusOK, "crud/confirm.html", h.data(c, gin.H{
		"ID":     ctrl.PendingDelete,
		"Table":  row,
		"Action": fmt.Sprintf("%s/%d", h.baseURL(), id),
	}))
}

// DeleteHTMX deletes one record after the user confirmed it.
// DELETE /{path}/:id
func (h *PageHandler[T, C, U]) DeleteHTMX(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Header("HX-Reswap", "none")
		middleware.ShowToast(c, "Invalid id", middleware.ToastError)
		c.Status(http.StatusOK)
		return
	}

	ctrl := console.NewController(h.source)
	ctrl.RequestDelete(id)
	if err := ctrl.ConfirmDelete(c.Request.Context()); err != nil {
		c.Header("HX-Reswap", "none")
		middleware.ShowToast(c, console.ErrorMessage(err), middleware.ToastError)
		c.Status(http.StatusOK)
		return
	}

	middleware.ShowToast(c, fmt.Sprintf("%s deleted", capitalize(h.def.Name)), middleware.ToastSuccess)
	c.Header("HX-Redirect", h.baseURL())
	c.Status(http.StatusOK)
}

// BulkDeleteHTMX deletes the selected records one by one.
// POST /{path}/bulk-delete
func (h *PageHandler[T, C, U]) BulkDeleteHTMX(c *gin.Context) {
	var ids []uint
	for _, raw := range c.PostFormArray("ids") {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		c.Header("HX-Reswap", "none")
		middleware.ShowToast(c, "Select at least one record", middleware.ToastError)
		c.Status(http.StatusOK)
		return
	}

	ctrl := console.NewController(h.source)
	for _, id := range ids {
		ctrl.Table.ToggleRow(id)
	}
	res := ctrl.BulkDelete(c.Request.Context(), ctrl.Table.SelectedIDs())
	if len(res.Failed) > 0 {
		slog.WarnContext(c.Request.Context(), "bulk delete: partial failure",
			"resource", h.def.Name, "deleted", res.Done, "error", res.Err())
		middleware.ShowToast(c, ctrl.Error, middleware.ToastError)
	} else {
		middleware.ShowToast(c, fmt.Sprintf("Deleted %d records", len(res.Done)), middleware.ToastSuccess)
	}
	c.Header("HX-Redirect", h.baseURL())
	c.Status(http.StatusOK)
}

// ActionHTMX runs a named action on one record.
// POST /{path}/:id/:action
func (h *PageHandler[T, C, U]) ActionHTMX(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Header("HX-Reswap", "none")
		middleware.ShowToast(c, "Invalid id", middleware.ToastError)
		c.Status(http.StatusOK)
		return
	}

	action := c.Param("action")
	ctrl := console.NewController(h.source)
	if _, err := ctrl.RunAction(c.Request.Context(), id, action); err != nil {
		c.Header("HX-Reswap", "none")
		middleware.ShowToast(c, ctrl.Error, middleware.ToastError)
		c.Status(http.StatusOK)
		return
	}

	middleware.ShowToast(c, fmt.Sprintf("%s %d: %s done", capitalize(h.def.Name), id, action), middleware.ToastSuccess)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// Export downloads every record matching the current filters as XLSX.
// GET /{path}/export
func (h *PageHandler[T, C, U]) Export(c *gin.Context) {
	ctrl := h.controller(c)
	req := ctrl.Request()
	req.Page, req.Size = 0, pkg.MaxPageSize

	var rows []T
	for len(rows) < MaxExportRows {
		page, err := h.source.List(c.Request.Context(), req)
		if err != nil {
			status := domain.HTTPStatusCode(err)
			c.HTML(status, errorTemplate(status), h.data(c, nil))
			return
		}
		rows = append(rows, page.Content...)
		if page.Last || len(page.Content) == 0 {
			break
		}
		req.Page++
	}
	if len(rows) > MaxExportRows {
		rows = rows[:MaxExportRows]
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, h.def.Path))
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.XLSX(c.Writer, h.def.Title, h.columns, rows); err != nil {
		slog.ErrorContext(c.Request.Context(), "export failed", "resource", h.def.Name, "error", err)
	}
}

func (h *PageHandler[T, C, U]) renderLookupError(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)
	c.HTML(status, errorTemplate(status), h.data(c, gin.H{"Message": console.ErrorMessage(err)}))
}

func errorTemplate(status int) string {
	switch status {
	case http.StatusNotFound:
		return "errors/404.html"
	case http.StatusBadRequest:
		return "errors/400.html"
	default:
		return "errors/500.html"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package console holds the page controller behind every list screen of the
// admin console. A Controller is built per request; it owns the screen state
// (filters, paging, modal, pending delete) and drives a resource client.
package console

import (
	"context"
	"errors"
	"slices"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

// Source is the part of resource.Client a controller uses.
type Source[T any, C resource.Creator[T], U resource.Patcher[T]] interface {
	List(ctx context.Context, req domain.PageRequest) (*domain.Page[T], error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id uint, in U) (*T, error)
	Delete(ctx context.Context, id uint) error
	Do(ctx context.Context, id uint, action string) (*T, error)
}

// Modal is the form dialog currently open.
type Modal int

const (
	ModalNone Modal = iota
	ModalCreate
	ModalEdit
)

// Controller is the state machine of one list screen.
type Controller[T any, C resource.Creator[T], U resource.Patcher[T]] struct {
	source Source[T, C, U]

	Table    table.State
	Page     int // 1-based
	PageSize int

	Items      []T
	Total      int64
	TotalPages int
	Loading    bool
	Error      string

	Modal     Modal
	EditingID uint
	Editing   *T
	Create    C
	Update    U
	FormError string

	PendingDelete uint
}

func NewController[T any, C resource.Creator[T], U resource.Patcher[T]](source Source[T, C, U]) *Controller[T, C, U] {
	return &Controller[T, C, U]{
		source:   source,
		Page:     1,
		PageSize: pkg.DefaultPageSize,
	}
}

// Request is the page request the current state maps to.
func (c *Controller[T, C, U]) Request() domain.PageRequest {
	return domain.PageRequest{
		Page:    pkg.ClampPage(c.Page-1, c.PageSize),
		Size:    c.PageSize,
		Sort:    c.Table.SortParam(),
		Filters: c.Table.Filters.Clone(),
	}
}

// Load fetches the current page. On failure Items are kept, Error holds a
// message safe to show and the error is returned.
func (c *Controller[T, C, U]) Load(ctx context.Context) error {
	c.Loading = true
	defer func() { c.Loading = false }()

	req := c.Request()
	c.Page = req.Page + 1
	page, err := c.source.List(ctx, req)
	if err != nil {
		c.Error = ErrorMessage(err)
		return err
	}
	c.Error = ""
	c.Items = page.Content
	c.Total = page.TotalElements
	c.TotalPages = page.TotalPages
	return nil
}

// Handle applies a table event and reloads. Sort, filter and page size
// changes go back to the first page.
func (c *Controller[T, C, U]) Handle(ctx context.Context, e table.Event) error {
	switch e.Kind {
	case table.EventSort:
		c.Table.SortField = e.Field
		c.Table.SortDirection = e.Direction
		c.Page = 1
	case table.EventFilter:
		c.Table.Filters = e.Filters.Clone()
		c.Page = 1
	case table.EventPageSize:
		if e.Size > 0 {
			c.PageSize = min(e.Size, pkg.MaxPageSize)
		}
		c.Page = 1
	case table.EventPage:
		c.Page = max(e.Page, 1)
	}
	return c.Load(ctx)
}

// View renders the loaded page with columns.
func (c *Controller[T, C, U]) View(columns []table.Column[T]) table.View {
	return table.Render(c.Items, columns, c.Table, table.Pagination{
		Page:       c.Page,
		Size:       c.PageSize,
		Total:      c.Total,
		TotalPages: c.TotalPages,
	})
}

// OpenCreate opens an empty create form.
func (c *Controller[T, C, U]) OpenCreate() {
	var zero C
	c.Modal = ModalCreate
	c.Create = zero
	c.EditingID = 0
	c.Editing = nil
	c.FormError = ""
}

// OpenEdit loads record id into the edit form.
func (c *Controller[T, C, U]) OpenEdit(ctx context.Context, id uint) error {
	rec, err := c.source.Get(ctx, id)
	if err != nil {
		c.Error = ErrorMessage(err)
		return err
	}
	var zero U
	c.Modal = ModalEdit
	c.EditingID = id
	c.Editing = rec
	c.Update = zero
	c.FormError = ""
	return nil
}

// Submit saves the open form. On success the modal closes and the list
// reloads; on failure the modal, its draft and an inline error stay.
func (c *Controller[T, C, U]) Submit(ctx context.Context) (*T, error) {
	var (
		rec *T
		err error
	)
	switch c.Modal {
	case ModalCreate:
		rec, err = c.source.Create(ctx, c.Create)
	case ModalEdit:
		rec, err = c.source.Update(ctx, c.EditingID, c.Update)
	default:
		return nil, domain.NewAppError(domain.CodeValidation, "no form is open", nil)
	}
	if err != nil {
		c.FormError = ErrorMessage(err)
		return nil, err
	}

	c.Modal = ModalNone
	c.EditingID = 0
	c.Editing = nil
	c.FormError = ""
	return rec, c.Load(ctx)
}

// CloseModal discards the open form.
func (c *Controller[T, C, U]) CloseModal() {
	c.Modal = ModalNone
	c.EditingID = 0
	c.Editing = nil
	c.FormError = ""
}

// RequestDelete asks for confirmation before deleting id.
func (c *Controller[T, C, U]) RequestDelete(id uint) { c.PendingDelete = id }

// CancelDelete drops a pending delete.
func (c *Controller[T, C, U]) CancelDelete() { c.PendingDelete = 0 }

// ConfirmDelete deletes the pending record and reloads.
func (c *Controller[T, C, U]) ConfirmDelete(ctx context.Context) error {
	id := c.PendingDelete
	if id == 0 {
		return domain.NewAppError(domain.CodeValidation, "no delete is pending", nil)
	}
	c.PendingDelete = 0

	if err := c.source.Delete(ctx, id); err != nil {
		c.Error = ErrorMessage(err)
		return err
	}
	delete(c.Table.Selected, id)
	return c.Load(ctx)
}

// Failure is one id a bulk operation could not process.
type Failure struct {
	ID      uint
	Message string
	Err     error
}

// BulkResult reports the outcome of a bulk operation per id.
type BulkResult struct {
	Done   []uint
	Failed []Failure
}

// Err summarizes the failures, or nil when every id succeeded.
func (r BulkResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// BulkDelete deletes ids one after another. A failure does not stop the
// remaining deletes and nothing is rolled back. Deleted ids leave the
// selection; failed ones stay selected.
func (c *Controller[T, C, U]) BulkDelete(ctx context.Context, ids []uint) BulkResult {
	var res BulkResult
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		if err := c.source.Delete(ctx, id); err != nil {
			res.Failed = append(res.Failed, Failure{ID: id, Message: ErrorMessage(err), Err: err})
			continue
		}
		res.Done = append(res.Done, id)
		delete(c.Table.Selected, id)
	}

	if err := c.Load(ctx); err != nil {
		return res
	}
	if len(res.Failed) > 0 {
		c.Error = bulkMessage(res)
	}
	return res
}

// RunAction applies a named action to id and reloads.
func (c *Controller[T, C, U]) RunAction(ctx context.Context, id uint, action string) (*T, error) {
	rec, err := c.source.Do(ctx, id, action)
	if err != nil {
		c.Error = ErrorMessage(err)
		return nil, err
	}
	return rec, c.Load(ctx)
}

// SelectedOnPage lists the selected ids that are on the loaded page.
func (c *Controller[T, C, U]) SelectedOnPage() []uint {
	var out []uint
	for i := range c.Items {
		if k, ok := any(&c.Items[i]).(interface{ Key() uint }); ok && c.Table.Selected[k.Key()] {
			out = append(out, k.Key())
		}
	}
	slices.Sort(out)
	return out
}

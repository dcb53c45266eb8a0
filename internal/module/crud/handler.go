package crud

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/hrdesk/internal/console"
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
	"github.com/simp-lee/hrdesk/internal/resource"
)

// Handler serves the REST API of one resource. Records and pages are sent
// as bare JSON bodies; errors use the {code, message, data} envelope.
type Handler[T any, C resource.Creator[T], U resource.Patcher[T]] struct {
	source console.Source[T, C, U]
}

func NewHandler[T any, C resource.Creator[T], U resource.Patcher[T]](source console.Source[T, C, U]) *Handler[T, C, U] {
	return &Handler[T, C, U]{source: source}
}

// List handles GET /api/v1/{path}.
func (h *Handler[T, C, U]) List(c *gin.Context) {
	page, err := h.source.List(c.Request.Context(), pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Record(c, http.StatusOK, page)
}

// Get handles GET /api/v1/{path}/:id.
func (h *Handler[T, C, U]) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	rec, err := h.source.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Record(c, http.StatusOK, rec)
}

// Create handles POST /api/v1/{path}.
func (h *Handler[T, C, U]) Create(c *gin.Context) {
	var in C
	if !pkg.BindAndValidate(c, &in) {
		return
	}

	rec, err := h.source.Create(c.Request.Context(), in)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Record(c, http.StatusCreated, rec)
}

// Update handles PUT /api/v1/{path}/:id. Only fields present in the body
// are changed.
func (h *Handler[T, C, U]) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var in U
	if !pkg.BindAndValidate(c, &in) {
		return
	}

	rec, err := h.source.Update(c.Request.Context(), id, in)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Record(c, http.StatusOK, rec)
}

// Delete handles DELETE /api/v1/{path}/:id.
func (h *Handler[T, C, U]) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.source.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.NoContent(c)
}

// Action handles POST /api/v1/{path}/:id/:action.
func (h *Handler[T, C, U]) Action(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	rec, err := h.source.Do(c.Request.Context(), id, c.Param("action"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Record(c, http.StatusOK, rec)
}

// parseID extracts and validates the "id" URL parameter.
func parseID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	if id > uint64(^uint(0)) {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	return uint(id), nil
}

// Package crud provides the generic REST API and console pages shared by
// every HR resource.
package crud

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/table"
)

// Module implements app.Module for one resource.
type Module[T any, C resource.Creator[T], U resource.Patcher[T]] struct {
	def         *resource.Definition[T]
	handler     *Handler[T, C, U]
	pageHandler *PageHandler[T, C, U]
}

// NewModule wires the API and page handlers of client. Panics if client is nil.
func NewModule[T any, C resource.Creator[T], U resource.Patcher[T]](client *resource.Client[T, C, U], columns []table.Column[T], layout *Layout) *Module[T, C, U] {
	if client == nil {
		panic("crud.NewModule: client must not be nil")
	}
	def := client.Definition()
	return &Module[T, C, U]{
		def:         def,
		handler:     NewHandler[T, C, U](client),
		pageHandler: NewPageHandler[T, C, U](client, def, columns, layout),
	}
}

// Nav returns the navigation entry of the module.
func (m *Module[T, C, U]) Nav() NavItem {
	return NavItem{Title: m.def.Title, Path: "/" + m.def.Path}
}

// RegisterRoutes registers the API and page routes of the resource.
func (m *Module[T, C, U]) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	base := "/" + m.def.Path

	// API routes
	api.GET(base, m.handler.List)
	api.POST(base, m.handler.Create)
	api.GET(base+"/:id", m.handler.Get)
	api.PUT(base+"/:id", m.handler.Update)
	api.DELETE(base+"/:id", m.handler.Delete)
	api.POST(base+"/:id/:action", m.handler.Action)

	// Page routes
	pages.GET(base, m.pageHandler.ListPage)
	pages.GET(base+"/new", m.pageHandler.NewPage)
	pages.GET(base+"/export", m.pageHandler.Export)
	pages.GET(base+"/:id/edit", m.pageHandler.EditPage)
	pages.GET(base+"/:id/delete", m.pageHandler.ConfirmDeletePage)
	pages.POST(base, m.pageHandler.CreateHTMX)
	pages.POST(base+"/bulk-delete", m.pageHandler.BulkDeleteHTMX)
	pages.PUT(base+"/:id", m.pageHandler.UpdateHTMX)
	pages.DELETE(base+"/:id", m.pageHandler.DeleteHTMX)
	pages.POST(base+"/:id/:action", m.pageHandler.ActionHTMX)
}

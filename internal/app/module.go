package app

import "github.com/gin-gonic/gin"

// Module is a set of API and console routes for one HR resource.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup)
}

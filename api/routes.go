package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service catalog.RouteUseCase
}

func NewRouteHandler(service catalog.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *RouteHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	source, ok := parseOptionalID(c, "source")
	if !ok {
		return
	}
	destination, ok := parseOptionalID(c, "destination")
	if !ok {
		return
	}

	routes, total, err := h.service.List(c.Request.Context(), domain.RouteFilter{SourceID: source, DestinationID: destination, Page: page})
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]routeResponse, 0, len(routes))
	for i := range routes {
		results = append(results, toRouteResponse(&routes[i]))
	}
	c.JSON(http.StatusOK, listResponse{Count: total, Results: results})
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	route, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(route))
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	route, err := h.service.Create(c.Request.Context(), &domain.Route{SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRouteResponse(route))
}

func (h *RouteHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	route, err := h.service.Update(c.Request.Context(), &domain.Route{ID: id, SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteResponse(route))
}

func (h *RouteHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CrewHandler struct {
	service catalog.CrewUseCase
}

func NewCrewHandler(service catalog.CrewUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	crew, total, err := h.service.List(c.Request.Context(), domain.CrewFilter{Search: c.Query("search"), Page: page})
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]crewResponse, 0, len(crew))
	for _, member := range crew {
		results = append(results, toCrewResponse(member))
	}
	c.JSON(http.StatusOK, listResponse{Count: total, Results: results})
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	member, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(*member))
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	member, err := h.service.Create(c.Request.Context(), &domain.Crew{FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCrewResponse(*member))
}

func (h *CrewHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	member, err := h.service.Update(c.Request.Context(), &domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(*member))
}

func (h *CrewHandler) delete(c *gin.Context) {
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

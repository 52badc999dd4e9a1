package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirplaneTypeHandler struct {
	service catalog.AirplaneTypeUseCase
}

func NewAirplaneTypeHandler(service catalog.AirplaneTypeUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	types, total, err := h.service.List(c.Request.Context(), domain.AirplaneTypeFilter{Page: page})
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		results = append(results, airplaneTypeResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, listResponse{Count: total, Results: results})
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := h.service.Create(c.Request.Context(), &domain.AirplaneType{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := h.service.Update(c.Request.Context(), &domain.AirplaneType{ID: id, Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *AirplaneTypeHandler) delete(c *gin.Context) {
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

type AirplaneHandler struct {
	service catalog.AirplaneUseCase
}

func NewAirplaneHandler(service catalog.AirplaneUseCase) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	typeID, ok := parseOptionalID(c, "airplane_type")
	if !ok {
		return
	}

	filter := domain.AirplaneFilter{Search: c.Query("search"), AirplaneTypeID: typeID, Page: page}
	airplanes, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]airplaneResponse, 0, len(airplanes))
	for i := range airplanes {
		results = append(results, toAirplaneResponse(&airplanes[i]))
	}
	c.JSON(http.StatusOK, listResponse{Count: total, Results: results})
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	airplane, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(airplane))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	airplane, err := h.service.Create(c.Request.Context(), req.toDomain(0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneResponse(airplane))
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	airplane, err := h.service.Update(c.Request.Context(), req.toDomain(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(airplane))
}

func (h *AirplaneHandler) delete(c *gin.Context) {
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

func (r airplaneRequest) toDomain(id int64) *domain.Airplane {
	return &domain.Airplane{
		ID:             id,
		Name:           r.Name,
		Rows:           r.Rows,
		SeatsInRow:     r.SeatsInRow,
		AirplaneTypeID: r.AirplaneType,
	}
}

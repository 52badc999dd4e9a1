package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service booking.BookingUseCase
}

func NewOrderHandler(service booking.BookingUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.delete)
	router.PATCH("/:id/tickets/:ticket_id", h.updateTicket)
}

func (h *OrderHandler) list(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), user, page)
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]orderResponse, 0, len(orders))
	for i := range orders {
		results = append(results, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, listResponse{Count: total, Results: results})
}

func (h *OrderHandler) get(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), user, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) create(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	input := booking.CreateOrderInput{Tickets: make([]booking.TicketInput, 0, len(req.Tickets))}
	for _, t := range req.Tickets {
		input.Tickets = append(input.Tickets, booking.TicketInput{Row: t.Row, Seat: t.Seat, FlightID: t.Flight})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) updateTicket(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ticketID, ok := parseID(c, "ticket_id")
	if !ok {
		return
	}
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ticket, err := h.service.UpdateTicket(c.Request.Context(), user, booking.UpdateTicketInput{
		OrderID:  orderID,
		TicketID: ticketID,
		Row:      req.Row,
		Seat:     req.Seat,
		FlightID: req.Flight,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(*ticket))
}

func (h *OrderHandler) delete(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(c.Request.Context(), user, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

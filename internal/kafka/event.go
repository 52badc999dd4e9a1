package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/google/uuid"
)

const (
	EventOrderCreated   = "order_created"
	EventOrderCancelled = "order_cancelled"
)

type TicketRef struct {
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type OrderEvent struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	OrderID   int64       `json:"order_id"`
	UserID    int64       `json:"user_id"`
	Email     string      `json:"email"`
	Tickets   []TicketRef `json:"tickets"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewOrderEvent snapshots the order for publishing.
func NewOrderEvent(eventType string, order *domain.Order, email string) OrderEvent {
	tickets := make([]TicketRef, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		tickets = append(tickets, TicketRef{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}
	return OrderEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Email:     email,
		Tickets:   tickets,
		CreatedAt: order.CreatedAt,
	}
}

// Key partitions events by order so they stay ordered per order.
func (e OrderEvent) Key() string {
	return strconv.FormatInt(e.OrderID, 10)
}

func DecodeOrderEvent(data []byte) (OrderEvent, error) {
	var e OrderEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return OrderEvent{}, fmt.Errorf("decode order event: %w", err)
	}
	if e.Type != EventOrderCreated && e.Type != EventOrderCancelled {
		return OrderEvent{}, fmt.Errorf("unknown order event type %q", e.Type)
	}
	return e, nil
}

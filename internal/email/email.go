package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airbooking/internal/kafka"
	"github.com/Domenick1991/airbooking/internal/logger"
)

var ErrNoRecipient = errors.New("order event has no recipient email")

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers order notifications. Delivery is a log line; no mail transport is configured.
type Sender struct {
	log *logger.Logger
}

func NewSender(log *logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	msg, err := Compose(event)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Infof("EMAIL", "to=%s subject=%q", msg.To, msg.Subject)
	s.log.Debug("EMAIL", msg.Body)
	return nil
}

func Compose(event kafka.OrderEvent) (Message, error) {
	if strings.TrimSpace(event.Email) == "" {
		return Message{}, ErrNoRecipient
	}

	var subject, intro string
	switch event.Type {
	case kafka.EventOrderCreated:
		subject = fmt.Sprintf("Your order #%d is confirmed", event.OrderID)
		intro = "Thank you for booking with us. Your seats:"
	case kafka.EventOrderCancelled:
		subject = fmt.Sprintf("Your order #%d was cancelled", event.OrderID)
		intro = "The following seats were released:"
	default:
		return Message{}, fmt.Errorf("unsupported event type %q", event.Type)
	}

	var b strings.Builder
	b.WriteString(intro)
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "\n  flight %d, row %d, seat %d", t.FlightID, t.Row, t.Seat)
	}

	return Message{To: event.Email, Subject: subject, Body: b.String()}, nil
}

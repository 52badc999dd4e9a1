package booking

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/Domenick1991/airbooking/internal/repository"
)

// TicketValidator runs the seat rules before any ticket is written:
// row and seat inside the airplane layout, and the seat not already booked on the flight.
type TicketValidator struct {
	flights repository.FlightRepository
	tickets repository.TicketRepository
}

func NewTicketValidator(flights repository.FlightRepository, tickets repository.TicketRepository) *TicketValidator {
	return &TicketValidator{flights: flights, tickets: tickets}
}

// Validate checks one ticket. A persisted ticket does not conflict with itself.
func (v *TicketValidator) Validate(ctx context.Context, t domain.Ticket) error {
	layout, err := v.layout(ctx, t.FlightID)
	if err != nil {
		return err
	}
	return v.check(ctx, *layout, t)
}

// ValidateAll checks every ticket of a new order, including seats repeated inside the order.
func (v *TicketValidator) ValidateAll(ctx context.Context, tickets []domain.Ticket) error {
	layouts := make(map[int64]*domain.Airplane)
	seen := make(map[domain.SeatKey]bool, len(tickets))

	for _, t := range tickets {
		layout, ok := layouts[t.FlightID]
		if !ok {
			var err error
			if layout, err = v.layout(ctx, t.FlightID); err != nil {
				return err
			}
			layouts[t.FlightID] = layout
		}

		if err := domain.ValidateTicketPlacement(*layout, t.Row, t.Seat); err != nil {
			return err
		}
		if seen[t.Key()] {
			return &domain.UniquenessError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
		}
		seen[t.Key()] = true

		if err := v.checkTaken(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (v *TicketValidator) check(ctx context.Context, layout domain.Airplane, t domain.Ticket) error {
	if err := domain.ValidateTicketPlacement(layout, t.Row, t.Seat); err != nil {
		return err
	}
	return v.checkTaken(ctx, t)
}

func (v *TicketValidator) checkTaken(ctx context.Context, t domain.Ticket) error {
	taken, err := v.tickets.SeatTaken(ctx, t.Key(), t.ID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.UniquenessError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
	}
	return nil
}

func (v *TicketValidator) layout(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	layout, err := v.flights.GetLayout(ctx, flightID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Entity: "flight", ID: flightID}
	}
	return layout, err
}

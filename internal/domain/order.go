package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64

	Flight *Flight
}

func (t Ticket) Placement() SeatPlacement {
	return SeatPlacement{Row: t.Row, Seat: t.Seat}
}

type OrderFilter struct {
	UserID int64
	Page
}

// ValidateTicketPlacement checks row and seat against the airplane layout, inclusive on both ends.
func ValidateTicketPlacement(airplane Airplane, row, seat int) error {
	if row < 1 || row > airplane.Rows {
		return &RangeError{Field: "row", Min: 1, Max: airplane.Rows, Value: row}
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		return &RangeError{Field: "seat", Min: 1, Max: airplane.SeatsInRow, Value: seat}
	}
	return nil
}

// SeatKey identifies a seat on a flight.
type SeatKey struct {
	FlightID int64
	Row      int
	Seat     int
}

func (k SeatKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.FlightID, k.Row, k.Seat)
}

func (t Ticket) Key() SeatKey {
	return SeatKey{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
}

package domain

import "time"

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64

	// Populated on reads.
	Route            *Route
	Airplane         *Airplane
	Crew             []Crew
	TicketsAvailable int
	TakenSeats       []SeatPlacement
}

// SeatPlacement is a row/seat pair on some airplane layout.
type SeatPlacement struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type FlightFilter struct {
	Source      string
	Destination string
	Date        *time.Time
	Page
}

// ValidateFlight checks the schedule of a flight. Arrival must be strictly after departure.
func ValidateFlight(f *Flight) error {
	if f.RouteID <= 0 {
		return &ValidationError{Field: "route", Message: "route is required"}
	}
	if f.AirplaneID <= 0 {
		return &ValidationError{Field: "airplane", Message: "airplane is required"}
	}
	if f.DepartureTime.IsZero() {
		return &ValidationError{Field: "departure_time", Message: "departure time is required"}
	}
	if f.ArrivalTime.IsZero() {
		return &ValidationError{Field: "arrival_time", Message: "arrival time is required"}
	}
	if !f.ArrivalTime.After(f.DepartureTime) {
		return &ValidationError{Field: "arrival_time", Message: "arrival time must be after departure time"}
	}
	return nil
}

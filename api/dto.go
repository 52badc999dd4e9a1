package api

import (
	"time"

	"github.com/Domenick1991/airbooking/internal/domain"
)

type airportRequest struct {
	Name           string   `json:"name"`
	ClosestBigCity string   `json:"closest_big_city"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

type airportResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	ClosestBigCity string   `json:"closest_big_city"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

func toAirportResponse(a *domain.Airport) airportResponse {
	return airportResponse{
		ID:             a.ID,
		Name:           a.Name,
		ClosestBigCity: a.ClosestBigCity,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
	}
}

type routeRequest struct {
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	// Zero derives the distance from airport coordinates.
	Distance int `json:"distance"`
}

type airportSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type routeResponse struct {
	ID          int64          `json:"id"`
	Source      airportSummary `json:"source"`
	Destination airportSummary `json:"destination"`
	Distance    int            `json:"distance"`
}

func toAirportSummary(id int64, a *domain.Airport) airportSummary {
	s := airportSummary{ID: id}
	if a != nil {
		s.Name = a.Name
		s.ClosestBigCity = a.ClosestBigCity
	}
	return s
}

func toRouteResponse(r *domain.Route) routeResponse {
	return routeResponse{
		ID:          r.ID,
		Source:      toAirportSummary(r.SourceID, r.Source),
		Destination: toAirportSummary(r.DestinationID, r.Destination),
		Distance:    r.Distance,
	}
}

type crewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toCrewResponse(c domain.Crew) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

type airplaneTypeRequest struct {
	Name string `json:"name"`
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type airplaneRequest struct {
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType int64  `json:"airplane_type"`
}

type airplaneResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Rows         int                  `json:"rows"`
	SeatsInRow   int                  `json:"seats_in_row"`
	Capacity     int                  `json:"capacity"`
	AirplaneType airplaneTypeResponse `json:"airplane_type"`
}

func toAirplaneResponse(a *domain.Airplane) airplaneResponse {
	resp := airplaneResponse{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: airplaneTypeResponse{ID: a.AirplaneTypeID},
	}
	if a.AirplaneType != nil {
		resp.AirplaneType.Name = a.AirplaneType.Name
	}
	return resp
}

type flightRequest struct {
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func (r flightRequest) toDomain(id int64) *domain.Flight {
	crew := r.Crew
	if crew == nil {
		crew = []int64{}
	}
	return &domain.Flight{
		ID:            id,
		RouteID:       r.Route,
		AirplaneID:    r.Airplane,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		CrewIDs:       crew,
	}
}

type flightListItem struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	Airplane         string    `json:"airplane"`
	Capacity         int       `json:"capacity"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable int       `json:"tickets_available"`
}

type flightDetail struct {
	ID               int64                  `json:"id"`
	Route            routeResponse          `json:"route"`
	Airplane         airplaneResponse       `json:"airplane"`
	DepartureTime    time.Time              `json:"departure_time"`
	ArrivalTime      time.Time              `json:"arrival_time"`
	Crew             []crewResponse         `json:"crew"`
	TicketsAvailable int                    `json:"tickets_available"`
	TakenSeats       []domain.SeatPlacement `json:"taken_seats"`
}

func routeLabel(r *domain.Route) string {
	if r == nil || r.Source == nil || r.Destination == nil {
		return ""
	}
	return r.Source.Name + " - " + r.Destination.Name
}

func toFlightListItem(f domain.Flight) flightListItem {
	item := flightListItem{
		ID:               f.ID,
		Route:            routeLabel(f.Route),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		TicketsAvailable: f.TicketsAvailable,
	}
	if f.Airplane != nil {
		item.Airplane = f.Airplane.Name
		item.Capacity = f.Airplane.Capacity()
	}
	return item
}

func toFlightDetail(f *domain.Flight) flightDetail {
	d := flightDetail{
		ID:               f.ID,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             make([]crewResponse, 0, len(f.Crew)),
		TicketsAvailable: f.TicketsAvailable,
		TakenSeats:       f.TakenSeats,
	}
	if d.TakenSeats == nil {
		d.TakenSeats = []domain.SeatPlacement{}
	}
	if f.Route != nil {
		d.Route = toRouteResponse(f.Route)
	}
	if f.Airplane != nil {
		d.Airplane = toAirplaneResponse(f.Airplane)
	}
	for _, c := range f.Crew {
		d.Crew = append(d.Crew, toCrewResponse(c))
	}
	return d
}

type ticketRequest struct {
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type orderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

type ticketFlight struct {
	ID            int64     `json:"id"`
	Route         string    `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type ticketResponse struct {
	ID     int64        `json:"id"`
	Row    int          `json:"row"`
	Seat   int          `json:"seat"`
	Flight ticketFlight `json:"flight"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func toTicketResponse(t domain.Ticket) ticketResponse {
	resp := ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: ticketFlight{ID: t.FlightID}}
	if t.Flight != nil {
		resp.Flight.Route = routeLabel(t.Flight.Route)
		resp.Flight.DepartureTime = t.Flight.DepartureTime
		resp.Flight.ArrivalTime = t.Flight.ArrivalTime
	}
	return resp
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: make([]ticketResponse, 0, len(o.Tickets))}
	for _, t := range o.Tickets {
		resp.Tickets = append(resp.Tickets, toTicketResponse(t))
	}
	return resp
}

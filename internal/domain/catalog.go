package domain

import "strings"

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
	Latitude       *float64
	Longitude      *float64
}

func (a *Airport) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int

	Source      *Airport
	Destination *Airport
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64

	AirplaneType *AirplaneType
}

// Capacity is derived from the layout and never stored.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

type AirportFilter struct {
	Search string
	Page
}

type RouteFilter struct {
	SourceID      int64
	DestinationID int64
	Page
}

type CrewFilter struct {
	Search string
	Page
}

type AirplaneTypeFilter struct {
	Page
}

type AirplaneFilter struct {
	Search         string
	AirplaneTypeID int64
	Page
}

func ValidateAirport(a *Airport) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Message: "this field may not be blank"}
	}
	if strings.TrimSpace(a.ClosestBigCity) == "" {
		return &ValidationError{Field: "closest_big_city", Message: "this field may not be blank"}
	}
	if (a.Latitude == nil) != (a.Longitude == nil) {
		return &ValidationError{Field: "latitude", Message: "latitude and longitude must be set together"}
	}
	if a.Latitude != nil && (*a.Latitude < -90 || *a.Latitude > 90) {
		return &ValidationError{Field: "latitude", Message: "latitude must be in range -90..90"}
	}
	if a.Longitude != nil && (*a.Longitude < -180 || *a.Longitude > 180) {
		return &ValidationError{Field: "longitude", Message: "longitude must be in range -180..180"}
	}
	return nil
}

// ValidateRoute requires distinct endpoints and a positive distance.
func ValidateRoute(r *Route) error {
	if r.SourceID <= 0 {
		return &ValidationError{Field: "source", Message: "source airport is required"}
	}
	if r.DestinationID <= 0 {
		return &ValidationError{Field: "destination", Message: "destination airport is required"}
	}
	if r.SourceID == r.DestinationID {
		return &ValidationError{Field: "destination", Message: "source and destination must differ"}
	}
	if r.Distance <= 0 {
		return &ValidationError{Field: "distance", Message: "distance must be positive"}
	}
	return nil
}

func ValidateCrew(c *Crew) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "this field may not be blank"}
	}
	if strings.TrimSpace(c.LastName) == "" {
		return &ValidationError{Field: "last_name", Message: "this field may not be blank"}
	}
	return nil
}

func ValidateAirplaneType(t *AirplaneType) error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Message: "this field may not be blank"}
	}
	return nil
}

func ValidateAirplane(a *Airplane) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Message: "this field may not be blank"}
	}
	if a.Rows < 1 {
		return &ValidationError{Field: "rows", Message: "rows must be at least 1"}
	}
	if a.SeatsInRow < 1 {
		return &ValidationError{Field: "seats_in_row", Message: "seats_in_row must be at least 1"}
	}
	if a.AirplaneTypeID <= 0 {
		return &ValidationError{Field: "airplane_type", Message: "airplane type is required"}
	}
	return nil
}

package migrate

import "time"

// Table definitions. Foreign keys are added separately so their names stay stable.

type airport struct {
	ID             int64    `gorm:"primaryKey"`
	Name           string   `gorm:"type:varchar(255);not null;index"`
	ClosestBigCity string   `gorm:"type:varchar(255);not null"`
	Latitude       *float64 `gorm:"type:double precision"`
	Longitude      *float64 `gorm:"type:double precision"`
}

func (airport) TableName() string { return "airports" }

type route struct {
	ID            int64 `gorm:"primaryKey"`
	SourceID      int64 `gorm:"not null;index;check:routes_distinct_endpoints,source_id <> destination_id"`
	DestinationID int64 `gorm:"not null;index"`
	Distance      int   `gorm:"not null;check:routes_distance_positive,distance > 0"`
}

func (route) TableName() string { return "routes" }

type crew struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"type:varchar(255);not null"`
	LastName  string `gorm:"type:varchar(255);not null;index"`
}

func (crew) TableName() string { return "crews" }

type airplaneType struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex:airplane_types_name_key"`
}

func (airplaneType) TableName() string { return "airplane_types" }

type airplane struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(255);not null;index"`
	Rows           int    `gorm:"column:rows;not null;check:airplanes_rows_positive,rows > 0"`
	SeatsInRow     int    `gorm:"not null;check:airplanes_seats_in_row_positive,seats_in_row > 0"`
	AirplaneTypeID int64  `gorm:"not null;index"`
}

func (airplane) TableName() string { return "airplanes" }

type flight struct {
	ID            int64     `gorm:"primaryKey"`
	RouteID       int64     `gorm:"not null;index"`
	AirplaneID    int64     `gorm:"not null;index"`
	DepartureTime time.Time `gorm:"type:timestamptz;not null;index;check:flights_arrival_after_departure,arrival_time > departure_time"`
	ArrivalTime   time.Time `gorm:"type:timestamptz;not null"`
}

func (flight) TableName() string { return "flights" }

type flightCrew struct {
	FlightID int64 `gorm:"primaryKey;autoIncrement:false"`
	CrewID   int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (flightCrew) TableName() string { return "flight_crews" }

type order struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (order) TableName() string { return "orders" }

// ticket carries the seat uniqueness constraint: one ticket per (flight, row, seat).
type ticket struct {
	ID       int64 `gorm:"primaryKey"`
	Row      int   `gorm:"column:row;not null;uniqueIndex:tickets_flight_row_seat_key,priority:2"`
	Seat     int   `gorm:"not null;uniqueIndex:tickets_flight_row_seat_key,priority:3;check:tickets_seat_positive,seat > 0"`
	FlightID int64 `gorm:"not null;uniqueIndex:tickets_flight_row_seat_key,priority:1"`
	OrderID  int64 `gorm:"not null;index"`
}

func (ticket) TableName() string { return "tickets" }

type foreignKey struct {
	Table     string
	Name      string
	Column    string
	Reference string
}

// ForeignKeys use NO ACTION on delete; cascades are performed explicitly by the repositories.
var ForeignKeys = []foreignKey{
	{Table: "routes", Name: "fk_routes_source", Column: "source_id", Reference: "airports"},
	{Table: "routes", Name: "fk_routes_destination", Column: "destination_id", Reference: "airports"},
	{Table: "airplanes", Name: "fk_airplanes_airplane_type", Column: "airplane_type_id", Reference: "airplane_types"},
	{Table: "flights", Name: "fk_flights_route", Column: "route_id", Reference: "routes"},
	{Table: "flights", Name: "fk_flights_airplane", Column: "airplane_id", Reference: "airplanes"},
	{Table: "flight_crews", Name: "fk_flight_crews_flight", Column: "flight_id", Reference: "flights"},
	{Table: "flight_crews", Name: "fk_flight_crews_crew", Column: "crew_id", Reference: "crews"},
	{Table: "tickets", Name: "fk_tickets_flight", Column: "flight_id", Reference: "flights"},
	{Table: "tickets", Name: "fk_tickets_order", Column: "order_id", Reference: "orders"},
}

func models() []interface{} {
	return []interface{}{
		&airport{}, &route{}, &crew{}, &airplaneType{}, &airplane{},
		&flight{}, &flightCrew{}, &order{}, &ticket{},
	}
}

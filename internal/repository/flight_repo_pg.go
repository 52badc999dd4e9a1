package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error)
	// Update rejects an airplane change that would strand booked tickets.
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	// GetLayout returns the airplane assigned to the flight.
	GetLayout(ctx context.Context, flightID int64) (*domain.Airplane, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	r.distance, r.source_id, src.name, src.closest_big_city, r.destination_id, dst.name, dst.closest_big_city,
	a.name, a.rows, a.seats_in_row, a.airplane_type_id,
	a.rows * a.seats_in_row - (SELECT COUNT(*) FROM tickets t WHERE t.flight_id = f.id) AS tickets_available`

const flightJoins = ` FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id`

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
			VALUES ($1, $2, $3, $4) RETURNING id`, f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime).Scan(&f.ID)
		if err != nil {
			return mapError(err)
		}
		return replaceCrew(ctx, tx, f.ID, f.CrewIDs)
	})
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, flightSelect+flightJoins+` WHERE f.id=$1`, id), nil)
	if err != nil {
		return nil, mapError(err)
	}

	if f.Crew, err = r.crewFor(ctx, id); err != nil {
		return nil, err
	}
	f.CrewIDs = make([]int64, 0, len(f.Crew))
	for _, c := range f.Crew {
		f.CrewIDs = append(f.CrewIDs, c.ID)
	}

	if f.TakenSeats, err = r.takenSeats(ctx, id); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error) {
	var b filterBuilder
	if filter.Source != "" {
		p := containsPattern(filter.Source)
		b.add("(src.name ILIKE ? OR src.closest_big_city ILIKE ?)", p, p)
	}
	if filter.Destination != "" {
		p := containsPattern(filter.Destination)
		b.add("(dst.name ILIKE ? OR dst.closest_big_city ILIKE ?)", p, p)
	}
	if filter.Date != nil {
		day := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		b.add("f.departure_time >= ? AND f.departure_time < ?", day, day.AddDate(0, 0, 1))
	}
	query := flightSelect + `, COUNT(*) OVER()` + flightJoins + b.where() +
		` ORDER BY f.departure_time DESC, f.id DESC` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	total := 0
	for rows.Next() {
		f, err := scanFlight(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		flights = append(flights, *f)
	}
	return flights, total, rows.Err()
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var currentAirplane int64
		if err := tx.QueryRow(ctx, `SELECT airplane_id FROM flights WHERE id=$1 FOR UPDATE`, f.ID).Scan(&currentAirplane); err != nil {
			return mapError(err)
		}

		if currentAirplane != f.AirplaneID {
			var stranded int
			err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t, airplanes a
				WHERE t.flight_id = $1 AND a.id = $2 AND (t."row" > a.rows OR t.seat > a.seats_in_row)`,
				f.ID, f.AirplaneID).Scan(&stranded)
			if err != nil {
				return err
			}
			if stranded > 0 {
				return &domain.ValidationError{
					Field:   "airplane",
					Message: fmt.Sprintf("%d booked tickets do not fit the new airplane layout", stranded),
				}
			}
		}

		_, err := tx.Exec(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
			f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime, f.ID)
		if err != nil {
			return mapError(err)
		}
		return replaceCrew(ctx, tx, f.ID, f.CrewIDs)
	})
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "flights", id)
}

func (r *PGFlightRepository) GetLayout(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	return layoutFor(ctx, r.db, flightID, false)
}

// layoutFor loads the airplane of a flight. forShare locks both the flight and its airplane row so
// neither a reassignment nor a resize can commit while tickets are being placed against this layout.
func layoutFor(ctx context.Context, q querier, flightID int64, forShare bool) (*domain.Airplane, error) {
	query := `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id
		FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id = $1`
	if forShare {
		query += ` FOR SHARE OF f, a`
	}
	var a domain.Airplane
	if err := q.QueryRow(ctx, query, flightID).Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGFlightRepository) crewFor(ctx context.Context, flightID int64) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name FROM crews c
		JOIN flight_crews fc ON fc.crew_id = c.id WHERE fc.flight_id = $1 ORDER BY c.last_name, c.first_name`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crew := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crew = append(crew, c)
	}
	return crew, rows.Err()
}

func (r *PGFlightRepository) takenSeats(ctx context.Context, flightID int64) ([]domain.SeatPlacement, error) {
	rows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id = $1 ORDER BY "row", seat`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatPlacement, 0)
	for rows.Next() {
		var s domain.SeatPlacement
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func replaceCrew(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id = $1`, flightID); err != nil {
		return err
	}
	for _, crewID := range crewIDs {
		_, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, flightID, crewID)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func scanFlight(row rowScanner, total *int) (*domain.Flight, error) {
	f := domain.Flight{
		Route:    &domain.Route{Source: &domain.Airport{}, Destination: &domain.Airport{}},
		Airplane: &domain.Airplane{},
	}
	dest := []any{
		&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&f.Route.Distance, &f.Route.SourceID, &f.Route.Source.Name, &f.Route.Source.ClosestBigCity,
		&f.Route.DestinationID, &f.Route.Destination.Name, &f.Route.Destination.ClosestBigCity,
		&f.Airplane.Name, &f.Airplane.Rows, &f.Airplane.SeatsInRow, &f.Airplane.AirplaneTypeID,
		&f.TicketsAvailable,
	}
	if total != nil {
		dest = append(dest, total)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	f.Route.ID = f.RouteID
	f.Route.Source.ID = f.Route.SourceID
	f.Route.Destination.ID = f.Route.DestinationID
	f.Airplane.ID = f.AirplaneID
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)

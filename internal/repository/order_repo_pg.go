package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// CreateWithTickets inserts the order and all its tickets in one transaction, or nothing.
	CreateWithTickets(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error)
	// Delete removes the order and its tickets.
	Delete(ctx context.Context, id int64) error
}

type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	// SeatTaken reports whether the seat is booked by any ticket other than excludeID.
	SeatTaken(ctx context.Context, key domain.SeatKey, excludeID int64) (bool, error)
	// Update moves a ticket, re-checking the layout under a lock on the flight.
	Update(ctx context.Context, ticket *domain.Ticket) error
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) CreateWithTickets(ctx context.Context, order *domain.Order) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		layouts := make(map[int64]*domain.Airplane)
		for _, t := range order.Tickets {
			layout, ok := layouts[t.FlightID]
			if !ok {
				var err error
				layout, err = layoutFor(ctx, tx, t.FlightID, true)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return &domain.ReferentialError{Entity: "flight", ID: t.FlightID}
					}
					return err
				}
				layouts[t.FlightID] = layout
			}
			if err := domain.ValidateTicketPlacement(*layout, t.Row, t.Seat); err != nil {
				return err
			}
		}

		err := tx.QueryRow(ctx, `INSERT INTO orders (user_id, created_at) VALUES ($1, now()) RETURNING id, created_at`,
			order.UserID).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return mapError(err)
		}

		for i := range order.Tickets {
			t := &order.Tickets[i]
			t.OrderID = order.ID
			err := tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
				t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID)
			if err != nil {
				return mapTicketError(err, *t)
			}
		}
		return nil
	})
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1`, id).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	tickets, err := r.ticketsFor(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Tickets = tickets[o.ID]
	if o.Tickets == nil {
		o.Tickets = []domain.Ticket{}
	}
	return &o, nil
}

func (r *PGOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	var b filterBuilder
	b.add("user_id = ?", filter.UserID)
	query := `SELECT id, user_id, created_at, COUNT(*) OVER() FROM orders` + b.where() +
		` ORDER BY created_at DESC, id DESC` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]int64, 0)
	total := 0
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if len(ids) == 0 {
		return orders, total, nil
	}

	tickets, err := r.ticketsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Tickets = tickets[orders[i].ID]
		if orders[i].Tickets == nil {
			orders[i].Tickets = []domain.Ticket{}
		}
	}
	return orders, total, nil
}

func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "orders", id)
}

// ticketsFor loads tickets with a flight summary, grouped by order id.
func (r *PGOrderRepository) ticketsFor(ctx context.Context, orderIDs []int64) (map[int64][]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, t."row", t.seat, t.flight_id, t.order_id,
			f.departure_time, f.arrival_time, src.name, dst.name
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		WHERE t.order_id = ANY($1)
		ORDER BY t."row", t.seat`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[int64][]domain.Ticket, len(orderIDs))
	for rows.Next() {
		t := domain.Ticket{Flight: &domain.Flight{Route: &domain.Route{Source: &domain.Airport{}, Destination: &domain.Airport{}}}}
		err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID,
			&t.Flight.DepartureTime, &t.Flight.ArrivalTime, &t.Flight.Route.Source.Name, &t.Flight.Route.Destination.Name)
		if err != nil {
			return nil, err
		}
		t.Flight.ID = t.FlightID
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t)
	}
	return byOrder, rows.Err()
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.db.QueryRow(ctx, `SELECT id, "row", seat, flight_id, order_id FROM tickets WHERE id=$1`, id).
		Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *PGTicketRepository) SeatTaken(ctx context.Context, key domain.SeatKey, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE flight_id=$1 AND "row"=$2 AND seat=$3 AND id<>$4)`,
		key.FlightID, key.Row, key.Seat, excludeID).Scan(&taken)
	return taken, err
}

func (r *PGTicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		layout, err := layoutFor(ctx, tx, t.FlightID, true)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.ReferentialError{Entity: "flight", ID: t.FlightID}
			}
			return err
		}
		if err := domain.ValidateTicketPlacement(*layout, t.Row, t.Seat); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `UPDATE tickets SET "row"=$1, seat=$2, flight_id=$3 WHERE id=$4`, t.Row, t.Seat, t.FlightID, t.ID)
		if err != nil {
			return mapTicketError(err, *t)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

var (
	_ OrderRepository  = (*PGOrderRepository)(nil)
	_ TicketRepository = (*PGTicketRepository)(nil)
)

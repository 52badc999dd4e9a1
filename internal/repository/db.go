package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-level constraint names, declared by internal/migrate.
const (
	TicketSeatConstraint       = "tickets_flight_row_seat_key"
	AirplaneTypeNameConstraint = "airplane_types_name_key"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapError turns driver errors into domain errors. Unknown errors are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == AirplaneTypeNameConstraint {
			return &domain.ValidationError{Field: "name", Message: "airplane type with this name already exists"}
		}
		return &domain.ValidationError{Message: "record violates a uniqueness constraint"}
	case pgForeignKeyViolation:
		return &domain.ReferentialError{Entity: ReferencedEntity(pgErr.ConstraintName)}
	case pgCheckViolation:
		return &domain.ValidationError{Message: "record violates a check constraint"}
	}
	return err
}

// mapTicketError maps a unique violation on the seat index to a UniquenessError for the given ticket.
func mapTicketError(err error, t domain.Ticket) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == TicketSeatConstraint {
		return &domain.UniquenessError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
	}
	return mapError(err)
}

// Foreign key constraint names, declared by internal/migrate, and the entity each one references.
var fkEntities = map[string]string{
	"fk_routes_source":           "airport",
	"fk_routes_destination":      "airport",
	"fk_airplanes_airplane_type": "airplane type",
	"fk_flights_route":           "route",
	"fk_flights_airplane":        "airplane",
	"fk_flight_crews_flight":     "flight",
	"fk_flight_crews_crew":       "crew member",
	"fk_tickets_flight":          "flight",
	"fk_tickets_order":           "order",
}

// ReferencedEntity names the entity a foreign key constraint points at.
func ReferencedEntity(constraint string) string {
	if entity, ok := fkEntities[constraint]; ok {
		return entity
	}
	return "record"
}

// filterBuilder accumulates WHERE conditions with positional placeholders.
type filterBuilder struct {
	conds []string
	args  []any
}

// add appends a condition; each "?" in cond is replaced by the next placeholder.
func (b *filterBuilder) add(cond string, args ...any) {
	for _, arg := range args {
		b.args = append(b.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	b.conds = append(b.conds, cond)
}

func (b *filterBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause.
func (b *filterBuilder) page(p domain.Page) string {
	p = p.Normalize()
	b.args = append(b.args, p.Limit, p.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(b.args)-1, len(b.args))
}

// containsPattern builds an ILIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

package repository

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, int, error)
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeColumns = `r.id, r.source_id, r.destination_id, r.distance,
	src.name, src.closest_big_city, dst.name, dst.closest_big_city`

const routeJoins = ` FROM routes r
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id`

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return mapError(err)
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, `SELECT `+routeColumns+routeJoins+` WHERE r.id=$1`, id)
	route, err := scanRoute(row, nil)
	if err != nil {
		return nil, mapError(err)
	}
	return route, nil
}

func (r *PGRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, int, error) {
	var b filterBuilder
	if filter.SourceID > 0 {
		b.add("r.source_id = ?", filter.SourceID)
	}
	if filter.DestinationID > 0 {
		b.add("r.destination_id = ?", filter.DestinationID)
	}
	query := `SELECT ` + routeColumns + `, COUNT(*) OVER()` + routeJoins + b.where() +
		` ORDER BY src.name, r.id` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	total := 0
	for rows.Next() {
		route, err := scanRoute(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		routes = append(routes, *route)
	}
	return routes, total, rows.Err()
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	tag, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "routes", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRoute reads routeColumns, optionally followed by a window total.
func scanRoute(row rowScanner, total *int) (*domain.Route, error) {
	route := domain.Route{Source: &domain.Airport{}, Destination: &domain.Airport{}}
	dest := []any{
		&route.ID, &route.SourceID, &route.DestinationID, &route.Distance,
		&route.Source.Name, &route.Source.ClosestBigCity, &route.Destination.Name, &route.Destination.ClosestBigCity,
	}
	if total != nil {
		dest = append(dest, total)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	route.Source.ID = route.SourceID
	route.Destination.ID = route.DestinationID
	return &route, nil
}

var _ RouteRepository = (*PGRouteRepository)(nil)

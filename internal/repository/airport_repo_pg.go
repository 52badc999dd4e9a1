package repository

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	Create(ctx context.Context, airport *domain.Airport) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, int, error)
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city, latitude, longitude)
		VALUES ($1, $2, $3, $4) RETURNING id`, a.Name, a.ClosestBigCity, a.Latitude, a.Longitude).Scan(&a.ID)
	return mapError(err)
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city, latitude, longitude FROM airports WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Latitude, &a.Longitude)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, int, error) {
	var b filterBuilder
	if filter.Search != "" {
		p := containsPattern(filter.Search)
		b.add("(name ILIKE ? OR closest_big_city ILIKE ?)", p, p)
	}
	query := `SELECT id, name, closest_big_city, latitude, longitude, COUNT(*) OVER() FROM airports` +
		b.where() + ` ORDER BY name, id` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	total := 0
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Latitude, &a.Longitude, &total); err != nil {
			return nil, 0, err
		}
		airports = append(airports, a)
	}
	return airports, total, rows.Err()
}

func (r *PGAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	tag, err := r.db.Exec(ctx, `UPDATE airports SET name=$1, closest_big_city=$2, latitude=$3, longitude=$4 WHERE id=$5`,
		a.Name, a.ClosestBigCity, a.Latitude, a.Longitude, a.ID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "airports", id)
}

var _ AirportRepository = (*PGAirportRepository)(nil)

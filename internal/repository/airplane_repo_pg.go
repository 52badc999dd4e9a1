package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneTypeRepository interface {
	Create(ctx context.Context, t *domain.AirplaneType) error
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, int, error)
	Update(ctx context.Context, t *domain.AirplaneType) error
	Delete(ctx context.Context, id int64) error
}

type AirplaneRepository interface {
	Create(ctx context.Context, a *domain.Airplane) error
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, int, error)
	// Update rejects a layout change that would strand booked tickets.
	Update(ctx context.Context, a *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	return mapError(err)
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, int, error) {
	var b filterBuilder
	query := `SELECT id, name, COUNT(*) OVER() FROM airplane_types ORDER BY name, id` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	total := 0
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name, &total); err != nil {
			return nil, 0, err
		}
		types = append(types, t)
	}
	return types, total, rows.Err()
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, t *domain.AirplaneType) error {
	tag, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "airplane_types", id)
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

const airplaneSelect = `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name
	FROM airplanes a JOIN airplane_types t ON t.id = a.airplane_type_id`

func (r *PGAirplaneRepository) Create(ctx context.Context, a *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id)
		VALUES ($1, $2, $3, $4) RETURNING id`, a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID).Scan(&a.ID)
	return mapError(err)
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	a := domain.Airplane{AirplaneType: &domain.AirplaneType{}}
	err := r.db.QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, id).
		Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneType.Name)
	if err != nil {
		return nil, mapError(err)
	}
	a.AirplaneType.ID = a.AirplaneTypeID
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, int, error) {
	var b filterBuilder
	if filter.Search != "" {
		b.add("a.name ILIKE ?", containsPattern(filter.Search))
	}
	if filter.AirplaneTypeID > 0 {
		b.add("a.airplane_type_id = ?", filter.AirplaneTypeID)
	}
	query := `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name, COUNT(*) OVER()
		FROM airplanes a JOIN airplane_types t ON t.id = a.airplane_type_id` +
		b.where() + ` ORDER BY a.name, a.id` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	total := 0
	for rows.Next() {
		a := domain.Airplane{AirplaneType: &domain.AirplaneType{}}
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneType.Name, &total); err != nil {
			return nil, 0, err
		}
		a.AirplaneType.ID = a.AirplaneTypeID
		airplanes = append(airplanes, a)
	}
	return airplanes, total, rows.Err()
}

func (r *PGAirplaneRepository) Update(ctx context.Context, a *domain.Airplane) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `SELECT id FROM airplanes WHERE id=$1 FOR UPDATE`, a.ID).Scan(&id); err != nil {
			return mapError(err)
		}

		var stranded int
		err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t JOIN flights f ON f.id = t.flight_id
			WHERE f.airplane_id = $1 AND (t."row" > $2 OR t.seat > $3)`, a.ID, a.Rows, a.SeatsInRow).Scan(&stranded)
		if err != nil {
			return err
		}
		if stranded > 0 {
			return &domain.ValidationError{
				Field:   "rows",
				Message: fmt.Sprintf("%d booked tickets do not fit a %dx%d layout", stranded, a.Rows, a.SeatsInRow),
			}
		}

		_, err = tx.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
			a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID, a.ID)
		return mapError(err)
	})
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "airplanes", id)
}

var (
	_ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)
	_ AirplaneRepository     = (*PGAirplaneRepository)(nil)
)

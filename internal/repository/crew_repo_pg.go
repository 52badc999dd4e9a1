package repository

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository interface {
	Create(ctx context.Context, crew *domain.Crew) error
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, int, error)
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) Create(ctx context.Context, c *domain.Crew) error {
	err := r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		c.FirstName, c.LastName).Scan(&c.ID)
	return mapError(err)
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	var c domain.Crew
	err := r.db.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *PGCrewRepository) List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, int, error) {
	var b filterBuilder
	if filter.Search != "" {
		p := containsPattern(filter.Search)
		b.add("(first_name ILIKE ? OR last_name ILIKE ?)", p, p)
	}
	query := `SELECT id, first_name, last_name, COUNT(*) OVER() FROM crews` + b.where() +
		` ORDER BY last_name, first_name, id` + b.page(filter.Page)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	crew := make([]domain.Crew, 0)
	total := 0
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &total); err != nil {
			return nil, 0, err
		}
		crew = append(crew, c)
	}
	return crew, total, rows.Err()
}

func (r *PGCrewRepository) Update(ctx context.Context, c *domain.Crew) error {
	tag, err := r.db.Exec(ctx, `UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3`, c.FirstName, c.LastName, c.ID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	return cascadeDelete(ctx, r.db, "crews", id)
}

var _ CrewRepository = (*PGCrewRepository)(nil)

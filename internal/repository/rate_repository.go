package repository

import (
	"context"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

type rateRepository struct {
	db *sqlx.DB
}

func NewRateRepository(db *sqlx.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Create(ctx context.Context, rate *domain.Rate) error {
	query := `
		INSERT INTO rates (value, recorded_at)
		VALUES ($1, $2)
		RETURNING id
	`

	return executor(ctx, r.db).QueryRowxContext(ctx, query, rate.Value, rate.Date).Scan(&rate.ID)
}

func (r *rateRepository) GetByID(ctx context.Context, id int64) (*domain.Rate, error) {
	query := `SELECT id, value, recorded_at FROM rates WHERE id = $1`

	var rate domain.Rate
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &rate, query, id); err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *rateRepository) GetLatest(ctx context.Context) (*domain.Rate, error) {
	query := `
		SELECT id, value, recorded_at
		FROM rates
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`

	var rate domain.Rate
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &rate, query); err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *rateRepository) List(ctx context.Context) ([]*domain.Rate, error) {
	query := `SELECT id, value, recorded_at FROM rates ORDER BY recorded_at DESC, id DESC`

	rates := []*domain.Rate{}
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rates, query); err != nil {
		return nil, err
	}

	return rates, nil
}

func (r *rateRepository) Update(ctx context.Context, rate *domain.Rate) error {
	res, err := executor(ctx, r.db).ExecContext(ctx,
		`UPDATE rates SET value = $2 WHERE id = $1`, rate.ID, rate.Value)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

const clientColumns = `id, name, national_id, phone, user_id, created_at, updated_at`

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (name, national_id, phone, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := executor(ctx, r.db).QueryRowxContext(ctx, query,
		client.Name,
		client.NationalID,
		client.Phone,
		client.UserID,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(&client.ID)

	return translate(err)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var client domain.Client
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &client, query, id); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE national_id = $1`

	var client domain.Client
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &client, query, nationalID); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC, id DESC`

	clients := []*domain.Client{}
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &clients, query); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $2, national_id = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`

	client.UpdatedAt = time.Now()
	res, err := executor(ctx, r.db).ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.NationalID,
		client.Phone,
		client.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}

	return expectAffected(res)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

// expectAffected reports sql.ErrNoRows when a write matched nothing.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `id, loan_id, amount, paid_at, created_at, updated_at`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (loan_id, amount, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		payment.LoanID,
		payment.Amount,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Scan(&payment.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment domain.Payment
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &payment, query, id); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) ListByLoan(ctx context.Context, loanID int64) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE loan_id = $1
		ORDER BY paid_at DESC, id DESC
	`

	payments := []*domain.Payment{}
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &payments, query, loanID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) List(ctx context.Context, limit int) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY paid_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	payments := []*domain.Payment{}
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &payments, query, args...); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	payment.UpdatedAt = time.Now()
	res, err := executor(ctx, r.db).ExecContext(ctx,
		`UPDATE payments SET amount = $2, updated_at = $3 WHERE id = $1`,
		payment.ID, payment.Amount, payment.UpdatedAt)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

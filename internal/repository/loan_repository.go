package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

const loanColumns = `l.id, l.client_id, l.rate_id, l.principal, l.percentage, l.total_amount,
	l.pending_balance, l.rate_used, l.status, l.registered_at, l.created_at, l.updated_at`

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

// loanRow is a loan joined with the identity columns of its client.
type loanRow struct {
	domain.Loan
	ClientName       string `db:"client_name"`
	ClientNationalID string `db:"client_national_id"`
	ClientPhone      string `db:"client_phone"`
}

func (row *loanRow) toLoan() *domain.Loan {
	loan := row.Loan
	loan.Client = &domain.Client{
		ID:         loan.ClientID,
		Name:       row.ClientName,
		NationalID: row.ClientNationalID,
		Phone:      row.ClientPhone,
	}
	return &loan
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (client_id, rate_id, principal, percentage, total_amount, pending_balance,
			rate_used, status, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		loan.ClientID,
		loan.RateID,
		loan.Principal,
		loan.Percentage,
		loan.TotalAmount,
		loan.PendingBalance,
		loan.RateUsed,
		loan.Status,
		loan.RegisteredAt,
		loan.CreatedAt,
		loan.UpdatedAt,
	).Scan(&loan.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	return r.get(ctx, `SELECT `+loanColumns+` FROM loans l WHERE l.id = $1`, id)
}

func (r *loanRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Loan, error) {
	return r.get(ctx, `SELECT `+loanColumns+` FROM loans l WHERE l.id = $1 FOR UPDATE`, id)
}

func (r *loanRepository) get(ctx context.Context, query string, id int64) (*domain.Loan, error) {
	var loan domain.Loan
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `,
			c.name AS client_name, c.national_id AS client_national_id, c.phone AS client_phone
		FROM loans l
		JOIN clients c ON c.id = l.client_id
	`
	var args []interface{}
	if filter.ClientID != nil {
		query += ` WHERE l.client_id = $1`
		args = append(args, *filter.ClientID)
	}
	query += ` ORDER BY l.created_at DESC, l.id DESC`

	return r.selectWithClient(ctx, query, args...)
}

func (r *loanRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `,
			c.name AS client_name, c.national_id AS client_national_id, c.phone AS client_phone
		FROM loans l
		JOIN clients c ON c.id = l.client_id
		WHERE l.status = $1
		ORDER BY l.registered_at, l.id
	`

	return r.selectWithClient(ctx, query, status)
}

func (r *loanRepository) selectWithClient(ctx context.Context, query string, args ...interface{}) ([]*domain.Loan, error) {
	var rows []loanRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, err
	}

	loans := make([]*domain.Loan, 0, len(rows))
	for i := range rows {
		loans = append(loans, rows[i].toLoan())
	}
	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET principal = $2, percentage = $3, total_amount = $4, pending_balance = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	loan.UpdatedAt = time.Now()
	res, err := executor(ctx, r.db).ExecContext(ctx, query,
		loan.ID,
		loan.Principal,
		loan.Percentage,
		loan.TotalAmount,
		loan.PendingBalance,
		loan.Status,
		loan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	res, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}

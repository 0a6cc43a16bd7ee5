package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// totalsQuery answers a single row even with no loans; SUM over no rows is
// NULL, so every sum is coalesced to zero.
const totalsQuery = `
	SELECT
		COUNT(*) AS total_loans,
		COUNT(*) FILTER (WHERE status = 'pendiente') AS pending_loans,
		COUNT(*) FILTER (WHERE status = 'pagado') AS paid_loans,
		COALESCE(SUM(principal), 0) AS principal,
		COALESCE(SUM(pending_balance), 0) AS pending_balance,
		(SELECT COALESCE(SUM(amount), 0) FROM payments) AS collected
	FROM loans
`

func (r *reportRepository) Totals(ctx context.Context) (*domain.Totals, error) {
	var totals domain.Totals
	if err := sqlx.GetContext(ctx, r.db, &totals, totalsQuery); err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *reportRepository) CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.countBetween(ctx, "clients", from, to)
}

func (r *reportRepository) CountLoansCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.countBetween(ctx, "loans", from, to)
}

func (r *reportRepository) countBetween(ctx context.Context, table string, from, to time.Time) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE created_at >= $1 AND created_at < $2`, table)

	var count int64
	if err := sqlx.GetContext(ctx, r.db, &count, query, from, to); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reportRepository) LoanFigures(ctx context.Context, from, to time.Time) ([]domain.LoanFigure, error) {
	where, args := window(from, to)
	query := `SELECT created_at, principal, total_amount FROM loans` + where + ` ORDER BY created_at`

	figures := []domain.LoanFigure{}
	if err := sqlx.SelectContext(ctx, r.db, &figures, query, args...); err != nil {
		return nil, err
	}
	return figures, nil
}

func (r *reportRepository) PaymentFigures(ctx context.Context, from, to time.Time) ([]domain.PaymentFigure, error) {
	where, args := window(from, to)
	query := `SELECT created_at, amount FROM payments` + where + ` ORDER BY created_at`

	figures := []domain.PaymentFigure{}
	if err := sqlx.SelectContext(ctx, r.db, &figures, query, args...); err != nil {
		return nil, err
	}
	return figures, nil
}

// window builds a created_at range clause; zero bounds are left open.
func window(from, to time.Time) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if !from.IsZero() {
		args = append(args, from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

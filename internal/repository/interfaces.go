package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"
)

// TxManager runs fn inside a single database transaction. Repositories called
// with the ctx passed to fn join that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes the client; its loans and their payments cascade.
	Delete(ctx context.Context, id int64) error
}

// RateRepository defines the interface for exchange-rate data operations
type RateRepository interface {
	Create(ctx context.Context, rate *domain.Rate) error
	GetByID(ctx context.Context, id int64) (*domain.Rate, error)

	// GetLatest returns the rate with the greatest date, ties broken by id.
	GetLatest(ctx context.Context) (*domain.Rate, error)
	List(ctx context.Context) ([]*domain.Rate, error)
	Update(ctx context.Context, rate *domain.Rate) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)

	// GetByIDForUpdate locks the loan row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Loan, error)
	List(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error)

	// ListByStatus returns loans in status with their client attached.
	ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByLoan(ctx context.Context, loanID int64) ([]*domain.Payment, error)

	// List returns payments newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for operator accounts
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// ReportRepository serves the read-only aggregate queries behind reporting.
type ReportRepository interface {
	Totals(ctx context.Context) (*domain.Totals, error)
	CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountLoansCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// LoanFigures and PaymentFigures scan [from, to); a zero bound is open.
	LoanFigures(ctx context.Context, from, to time.Time) ([]domain.LoanFigure, error)
	PaymentFigures(ctx context.Context, from, to time.Time) ([]domain.PaymentFigure, error)
}

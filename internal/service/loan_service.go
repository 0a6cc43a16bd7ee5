package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

type LoanService struct {
	LoanRepo   repository.LoanRepository
	ClientRepo repository.ClientRepository
	RateRepo   repository.RateRepository
	Tx         repository.TxManager
	cache      cache.Cache
	now        func() time.Time
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	clientRepo repository.ClientRepository,
	rateRepo repository.RateRepository,
	tx repository.TxManager,
	c cache.Cache,
) *LoanService {
	return &LoanService{
		LoanRepo:   loanRepo,
		ClientRepo: clientRepo,
		RateRepo:   rateRepo,
		Tx:         tx,
		cache:      c,
		now:        time.Now,
	}
}

// Create disburses a loan at the most recent rate on file. The full amount due
// starts out pending.
func (s *LoanService) Create(ctx context.Context, req domain.CreateLoanRequest) (*domain.Loan, error) {
	client, err := s.ClientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, storeError(err, func() *customError.BusinessError { return customError.WrapClientNotFound(req.ClientID) })
	}

	rate, err := s.RateRepo.GetLatest(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNoRateOnFile()
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loan := domain.NewLoan(client.ID, req.Principal, req.Percentage, rate, s.now())
	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	slog.InfoContext(ctx, "loan created",
		"loan_id", loan.ID, "client_id", loan.ClientID, "total_amount", loan.TotalAmount.String())

	invalidateReports(ctx, s.cache)
	return loan, nil
}

func (s *LoanService) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, func() *customError.BusinessError { return customError.WrapLoanNotFound(id) })
	}
	return loan, nil
}

// Update applies a correction edit. Supplying any term recomputes the amount
// due and resets the balance, discarding the effect of recorded payments. The
// merge runs under the same row lock payments take.
func (s *LoanService) Update(ctx context.Context, id int64, patch domain.LoanPatch) (*domain.Loan, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	var existing, updated domain.Loan
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		loan, err := s.LoanRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return storeError(err, func() *customError.BusinessError { return customError.WrapLoanNotFound(id) })
		}

		existing = *loan
		updated = patch.Apply(existing)
		if err := s.LoanRepo.Update(ctx, &updated); err != nil {
			return storeError(err, func() *customError.BusinessError { return customError.WrapLoanNotFound(id) })
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, nil)
	}

	if !existing.PendingBalance.Equal(existing.TotalAmount) {
		slog.WarnContext(ctx, "loan correction reset a partially paid balance",
			"loan_id", id, "previous_balance", existing.PendingBalance.String(), "new_balance", updated.PendingBalance.String())
	}

	invalidateReports(ctx, s.cache)
	return &updated, nil
}

// Delete removes the loan and its payments.
func (s *LoanService) Delete(ctx context.Context, id int64) error {
	if err := s.LoanRepo.Delete(ctx, id); err != nil {
		return storeError(err, func() *customError.BusinessError { return customError.WrapLoanNotFound(id) })
	}

	invalidateReports(ctx, s.cache)
	return nil
}

func (s *LoanService) List(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

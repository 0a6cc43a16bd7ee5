package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

// PaymentService applies, edits and reverses payments. Every mutation runs in
// one transaction holding the loan row lock, so concurrent payments on the same
// loan serialize and the balance never goes out of range.
type PaymentService struct {
	PaymentRepo repository.PaymentRepository
	LoanRepo    repository.LoanRepository
	Tx          repository.TxManager
	cache       cache.Cache
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	loanRepo repository.LoanRepository,
	tx repository.TxManager,
	c cache.Cache,
) *PaymentService {
	return &PaymentService{
		PaymentRepo: paymentRepo,
		LoanRepo:    loanRepo,
		Tx:          tx,
		cache:       c,
		now:         time.Now,
	}
}

// Apply records a payment and debits it from the loan balance. Paying more
// than the pending balance is rejected without touching anything.
func (s *PaymentService) Apply(ctx context.Context, req domain.CreatePaymentRequest) (*domain.PaymentResult, error) {
	var result *domain.PaymentResult

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		loan, err := s.LoanRepo.GetByIDForUpdate(ctx, req.LoanID)
		if err != nil {
			return storeError(err, func() *customError.BusinessError { return customError.WrapLoanNotFound(req.LoanID) })
		}

		if req.Amount.GreaterThan(loan.PendingBalance) {
			return customError.WrapOverpayment(loan.PendingBalance.StringFixed(2))
		}

		now := s.now()
		payment := &domain.Payment{
			LoanID:    loan.ID,
			Amount:    req.Amount,
			PaidAt:    now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.PaymentRepo.Create(ctx, payment); err != nil {
			return customError.WrapDatabaseError(err)
		}

		loan.Debit(req.Amount)
		if err := s.LoanRepo.Update(ctx, loan); err != nil {
			return customError.WrapDatabaseError(err)
		}

		result = newPaymentResult(payment, loan)
		return nil
	})
	if err != nil {
		return nil, storeError(err, nil)
	}

	slog.InfoContext(ctx, "payment applied",
		"payment_id", result.Payment.ID, "loan_id", req.LoanID, "balance", result.NewBalance.String(), "status", result.LoanStatus)

	invalidateReports(ctx, s.cache)
	return result, nil
}

// Edit changes a payment's amount and moves the loan balance by the difference.
// Raising a payment past the pending balance is rejected; lowering it credits
// the loan back, never above the amount due.
func (s *PaymentService) Edit(ctx context.Context, id int64, req domain.UpdatePaymentRequest) (*domain.PaymentResult, error) {
	var result *domain.PaymentResult

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		payment, loan, err := s.lockPayment(ctx, id)
		if err != nil {
			return err
		}

		delta := req.Amount.Sub(payment.Amount)
		if loan.PendingBalance.Sub(delta).IsNegative() {
			return customError.WrapNegativeBalance(loan.PendingBalance.StringFixed(2))
		}

		payment.Amount = req.Amount
		if err := s.PaymentRepo.Update(ctx, payment); err != nil {
			return storeError(err, func() *customError.BusinessError { return customError.WrapPaymentNotFound(id) })
		}

		if delta.IsNegative() {
			loan.Credit(delta.Neg())
		} else {
			loan.Debit(delta)
		}
		if err := s.LoanRepo.Update(ctx, loan); err != nil {
			return customError.WrapDatabaseError(err)
		}

		result = newPaymentResult(payment, loan)
		return nil
	})
	if err != nil {
		return nil, storeError(err, nil)
	}

	invalidateReports(ctx, s.cache)
	return result, nil
}

// Delete reverses a payment, crediting its amount back to the loan.
func (s *PaymentService) Delete(ctx context.Context, id int64) (*domain.PaymentResult, error) {
	var result *domain.PaymentResult

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		payment, loan, err := s.lockPayment(ctx, id)
		if err != nil {
			return err
		}

		loan.Credit(payment.Amount)
		if err := s.LoanRepo.Update(ctx, loan); err != nil {
			return customError.WrapDatabaseError(err)
		}

		if err := s.PaymentRepo.Delete(ctx, id); err != nil {
			return storeError(err, func() *customError.BusinessError { return customError.WrapPaymentNotFound(id) })
		}

		result = newPaymentResult(nil, loan)
		return nil
	})
	if err != nil {
		return nil, storeError(err, nil)
	}

	invalidateReports(ctx, s.cache)
	return result, nil
}

// lockPayment loads a payment and locks its owning loan.
func (s *PaymentService) lockPayment(ctx context.Context, id int64) (*domain.Payment, *domain.Loan, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storeError(err, func() *customError.BusinessError { return customError.WrapPaymentNotFound(id) })
	}

	loan, err := s.LoanRepo.GetByIDForUpdate(ctx, payment.LoanID)
	if err != nil {
		return nil, nil, storeError(err, func() *customError.BusinessError { return customError.WrapLoanNotFound(payment.LoanID) })
	}

	return payment, loan, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, func() *customError.BusinessError { return customError.WrapPaymentNotFound(id) })
	}
	return payment, nil
}

func (s *PaymentService) ListByLoan(ctx context.Context, loanID int64) ([]*domain.Payment, error) {
	payments, err := s.PaymentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func (s *PaymentService) List(ctx context.Context, limit int) ([]*domain.Payment, error) {
	payments, err := s.PaymentRepo.List(ctx, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

func newPaymentResult(payment *domain.Payment, loan *domain.Loan) *domain.PaymentResult {
	return &domain.PaymentResult{
		Payment:    payment,
		NewBalance: loan.PendingBalance,
		LoanStatus: loan.Status,
	}
}


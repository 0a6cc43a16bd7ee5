package domain

import (
	"time"

	"github.com/segyhp/loan-backoffice/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	LoanStatusPending = "pendiente"
	LoanStatusPaid    = "pagado"
)

// Loan represents a loan entity
//
// PendingBalance and Status are cached on the row and kept in lockstep by the
// balance methods below: Status is LoanStatusPaid exactly when PendingBalance
// is zero, and PendingBalance never leaves [0, TotalAmount].
type Loan struct {
	ID             int64           `json:"id" db:"id"`
	ClientID       int64           `json:"clienteId" db:"client_id"`
	RateID         *int64          `json:"tasaId" db:"rate_id"`
	Principal      decimal.Decimal `json:"montoPrestado" db:"principal"`
	Percentage     decimal.Decimal `json:"porcentaje" db:"percentage"`
	TotalAmount    decimal.Decimal `json:"montoTotal" db:"total_amount"`
	PendingBalance decimal.Decimal `json:"saldoPendiente" db:"pending_balance"`
	RateUsed       decimal.Decimal `json:"tasaUsada" db:"rate_used"`
	Status         string          `json:"estado" db:"status"`
	RegisteredAt   time.Time       `json:"fechaRegistro" db:"registered_at"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`

	Client *Client `json:"cliente,omitempty" db:"-"`
}

// NewLoan builds a pending loan whose balance starts at the full amount due.
func NewLoan(clientID int64, principal, percentage decimal.Decimal, rate *Rate, now time.Time) *Loan {
	total := utils.CalculateTotalAmount(principal, percentage)
	rateID := rate.ID

	return &Loan{
		ClientID:       clientID,
		RateID:         &rateID,
		Principal:      principal,
		Percentage:     percentage,
		TotalAmount:    total,
		PendingBalance: total,
		RateUsed:       rate.Value,
		Status:         LoanStatusPending,
		RegisteredAt:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Debit applies amount against the pending balance.
func (l *Loan) Debit(amount decimal.Decimal) {
	l.PendingBalance = l.PendingBalance.Sub(amount)
	l.syncStatus()
}

// Credit gives amount back to the pending balance, capped at the amount due.
func (l *Loan) Credit(amount decimal.Decimal) {
	l.PendingBalance = l.PendingBalance.Add(amount)
	if l.PendingBalance.GreaterThan(l.TotalAmount) {
		l.PendingBalance = l.TotalAmount
	}
	l.syncStatus()
}

// syncStatus derives the status from the balance. A paid loan whose balance
// comes back above zero returns to pending; there is no separate reopened state.
func (l *Loan) syncStatus() {
	if !l.PendingBalance.IsPositive() {
		l.PendingBalance = decimal.Zero
		l.Status = LoanStatusPaid
		return
	}
	l.Status = LoanStatusPending
}

func (l *Loan) IsPaid() bool {
	return l.Status == LoanStatusPaid
}

// DTOs for requests and responses

// Amounts are stored as NUMERIC(18,2) and percentages as NUMERIC(9,4); the
// bounds keep the amount due inside its column too.
type CreateLoanRequest struct {
	ClientID   int64           `json:"clienteId" validate:"required,gt=0"`
	Principal  decimal.Decimal `json:"montoPrestado" validate:"required,gt=0,lt=1000000000000,decimals=2"`
	Percentage decimal.Decimal `json:"porcentaje" validate:"required,gt=0,lt=100000,decimals=4"`
}

// LoanPatch is a correction edit of a loan's terms.
type LoanPatch struct {
	Principal  *decimal.Decimal `json:"montoPrestado" validate:"omitempty,gt=0,lt=1000000000000,decimals=2"`
	Percentage *decimal.Decimal `json:"porcentaje" validate:"omitempty,gt=0,lt=100000,decimals=4"`
}

func (p LoanPatch) IsEmpty() bool {
	return p.Principal == nil && p.Percentage == nil
}

// Apply merges the patch onto l. Any supplied field recomputes the amount due
// and resets the balance to it, discarding the effect of earlier payments.
func (p LoanPatch) Apply(l Loan) Loan {
	if p.IsEmpty() {
		return l
	}
	if p.Principal != nil {
		l.Principal = *p.Principal
	}
	if p.Percentage != nil {
		l.Percentage = *p.Percentage
	}

	l.TotalAmount = utils.CalculateTotalAmount(l.Principal, l.Percentage)
	l.PendingBalance = l.TotalAmount
	l.Status = LoanStatusPending
	return l
}

type LoanFilter struct {
	ClientID *int64
}

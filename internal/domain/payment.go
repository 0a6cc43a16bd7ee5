package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one application of funds against a loan.
type Payment struct {
	ID        int64           `json:"id" db:"id"`
	LoanID    int64           `json:"prestamoId" db:"loan_id"`
	Amount    decimal.Decimal `json:"monto" db:"amount"`
	PaidAt    time.Time       `json:"fechaPago" db:"paid_at"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

type CreatePaymentRequest struct {
	LoanID int64           `json:"prestamoId" validate:"required,gt=0"`
	Amount decimal.Decimal `json:"monto" validate:"required,gt=0,decimals=2"`
}

type UpdatePaymentRequest struct {
	Amount decimal.Decimal `json:"monto" validate:"required,gt=0,decimals=2"`
}

// PaymentResult reports the loan state after a payment mutation.
type PaymentResult struct {
	Payment    *Payment        `json:"pago,omitempty"`
	NewBalance decimal.Decimal `json:"nuevoSaldo"`
	LoanStatus string          `json:"estadoPrestamo"`
}

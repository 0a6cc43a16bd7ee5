package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is an exchange-rate snapshot captured on loans at disbursement.
type Rate struct {
	ID    int64           `json:"id" db:"id"`
	Value decimal.Decimal `json:"valor" db:"value"`
	Date  time.Time       `json:"fecha" db:"recorded_at"`
}

type CreateRateRequest struct {
	Value decimal.Decimal `json:"valor" validate:"required,gt=0,lt=100000000000000,decimals=4"`
}

type RatePatch struct {
	Value *decimal.Decimal `json:"valor" validate:"omitempty,gt=0,lt=100000000000000,decimals=4"`
}

func (p RatePatch) Apply(r Rate) Rate {
	if p.Value != nil {
		r.Value = *p.Value
	}
	return r
}

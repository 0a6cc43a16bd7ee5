package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the account-status summary across every loan.
type Totals struct {
	TotalLoans     int64           `json:"totalPrestamos" db:"total_loans"`
	PendingLoans   int64           `json:"totalPendientes" db:"pending_loans"`
	PaidLoans      int64           `json:"totalPagados" db:"paid_loans"`
	Principal      decimal.Decimal `json:"montoPrestado" db:"principal"`
	PendingBalance decimal.Decimal `json:"saldoPendiente" db:"pending_balance"`
	Collected      decimal.Decimal `json:"totalCobrado" db:"collected"`
}

type GrowthMetric struct {
	Current    int64           `json:"actual"`
	Previous   int64           `json:"anterior"`
	Percentage decimal.Decimal `json:"porcentaje"`
}

type MonthlyMetrics struct {
	Month   string       `json:"mes"`
	Clients GrowthMetric `json:"clientes"`
	Loans   GrowthMetric `json:"prestamos"`
}

type ProfitabilityBucket struct {
	Month      int             `json:"mes"`
	Name       string          `json:"nombre"`
	Investment decimal.Decimal `json:"inversion"`
	Profit     decimal.Decimal `json:"ganancia"`
}

type AnnualProfitability struct {
	Year   int                   `json:"anio"`
	Months []ProfitabilityBucket `json:"meses"`
}

type CashFlowPeriod string

const (
	CashFlowMonthly   CashFlowPeriod = "mensual"
	CashFlowQuarterly CashFlowPeriod = "trimestral"
	CashFlowAnnual    CashFlowPeriod = "anual"
)

// ParseCashFlowPeriod defaults to monthly when raw is empty.
func ParseCashFlowPeriod(raw string) (CashFlowPeriod, error) {
	switch CashFlowPeriod(raw) {
	case "":
		return CashFlowMonthly, nil
	case CashFlowMonthly, CashFlowQuarterly, CashFlowAnnual:
		return CashFlowPeriod(raw), nil
	default:
		return "", fmt.Errorf("unknown period %q", raw)
	}
}

type CashFlowBucket struct {
	Period  string          `json:"periodo"`
	Inflow  decimal.Decimal `json:"ingresos"`
	Outflow decimal.Decimal `json:"egresos"`
}

// LoanFigure is the slice of a loan the reporting scans need.
type LoanFigure struct {
	CreatedAt   time.Time       `db:"created_at"`
	Principal   decimal.Decimal `db:"principal"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}

type PaymentFigure struct {
	CreatedAt time.Time       `db:"created_at"`
	Amount    decimal.Decimal `db:"amount"`
}

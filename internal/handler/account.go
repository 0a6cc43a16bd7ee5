package handler

import (
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/domain"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
	"github.com/segyhp/loan-backoffice/pkg/response"
)

// AccountHandler serves the account-status views.
type AccountHandler struct {
	reports ReportService
}

func NewAccountHandler(reports ReportService) *AccountHandler {
	return &AccountHandler{reports: reports}
}

func (h *AccountHandler) Pending(w http.ResponseWriter, r *http.Request) {
	loans, err := h.reports.PendingLoans(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Préstamos pendientes obtenidos correctamente.", loans)
}

func (h *AccountHandler) Paid(w http.ResponseWriter, r *http.Request) {
	loans, err := h.reports.PaidLoans(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Préstamos pagados obtenidos correctamente.", loans)
}

func (h *AccountHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reports.Totals(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Totales generales obtenidos correctamente.", totals)
}

func (h *AccountHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.reports.MonthlyMetrics(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Métricas mensuales obtenidas correctamente.", metrics)
}

func (h *AccountHandler) Profitability(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.AnnualProfitability(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Rentabilidad anual obtenida correctamente.", report)
}

// CashFlow buckets by ?periodo=mensual|trimestral|anual, monthly when absent.
func (h *AccountHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	period, err := domain.ParseCashFlowPeriod(r.URL.Query().Get("periodo"))
	if err != nil {
		response.FromError(w, r, customError.WrapValidation("Periodo inválido. Use mensual, trimestral o anual.", err))
		return
	}

	series, err := h.reports.CashFlow(r.Context(), period)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Flujo de caja obtenido correctamente.", series)
}

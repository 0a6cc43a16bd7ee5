package handler

import (
	"net/http"
	"strconv"

	"github.com/segyhp/loan-backoffice/internal/domain"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type LoanHandler struct {
	loans     LoanService
	validator *validator.Validate
}

func NewLoanHandler(loans LoanService) *LoanHandler {
	return &LoanHandler{
		loans:     loans,
		validator: newValidator(),
	}
}

// Create disburses a loan against the most recent rate on file.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoanRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	loan, err := h.loans.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Préstamo creado correctamente.", loan)
}

// List returns loans newest first, optionally narrowed with ?clienteId=.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.LoanFilter
	if raw := r.URL.Query().Get("clienteId"); raw != "" {
		clientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || clientID <= 0 {
			response.FromError(w, r, customError.WrapValidation("clienteId inválido.", err))
			return
		}
		filter.ClientID = &clientID
	}

	loans, err := h.loans.List(r.Context(), filter)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Préstamos obtenidos correctamente.", loans)
}

// Update corrects a loan's terms. The pending balance is reset to the new total.
func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var patch domain.LoanPatch
	if err := decode(r, h.validator, &patch); err != nil {
		response.FromError(w, r, err)
		return
	}

	loan, err := h.loans.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Préstamo actualizado correctamente.", loan)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.loans.Delete(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Préstamo eliminado correctamente.", nil)
}

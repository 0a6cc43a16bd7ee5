package handler

import (
	"net/http"
	"strconv"

	"github.com/segyhp/loan-backoffice/internal/domain"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	payments  PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(payments PaymentService) *PaymentHandler {
	return &PaymentHandler{
		payments:  payments,
		validator: newValidator(),
	}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	result, err := h.payments.Apply(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Pago registrado con éxito.", result)
}

// List returns the most recent payments; ?limit= caps the result.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.FromError(w, r, customError.WrapValidation("limit inválido.", err))
			return
		}
		limit = n
	}

	payments, err := h.payments.List(r.Context(), limit)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Pagos obtenidos correctamente.", payments)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	payment, err := h.payments.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Pago obtenido correctamente.", payment)
}

func (h *PaymentHandler) ListByLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "prestamoId")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	payments, err := h.payments.ListByLoan(r.Context(), loanID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Pagos obtenidos correctamente.", payments)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var req domain.UpdatePaymentRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	result, err := h.payments.Edit(r.Context(), id, req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Pago actualizado correctamente.", result)
}

// Delete reverses a payment and restores its amount to the loan balance.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	result, err := h.payments.Delete(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Pago eliminado correctamente.", result)
}

package handler

import (
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type RateHandler struct {
	rates     RateService
	validator *validator.Validate
}

func NewRateHandler(rates RateService) *RateHandler {
	return &RateHandler{
		rates:     rates,
		validator: newValidator(),
	}
}

func (h *RateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRateRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	rate, err := h.rates.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Tasa registrada correctamente.", rate)
}

// List returns every rate, or only the newest one with ?ultima=true. The
// newest rate is null while none is on file.
func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("ultima") == "true" {
		rate, err := h.rates.Latest(r.Context())
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Success(w, "Última tasa obtenida correctamente.", rate)
		return
	}

	rates, err := h.rates.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Tasas obtenidas correctamente.", rates)
}

func (h *RateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var patch domain.RatePatch
	if err := decode(r, h.validator, &patch); err != nil {
		response.FromError(w, r, err)
		return
	}

	rate, err := h.rates.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Tasa actualizada correctamente.", rate)
}

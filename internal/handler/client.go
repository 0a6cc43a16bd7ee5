package handler

import (
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/auth"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type ClientHandler struct {
	clients   ClientService
	validator *validator.Validate
}

func NewClientHandler(clients ClientService) *ClientHandler {
	return &ClientHandler{
		clients:   clients,
		validator: newValidator(),
	}
}

// Create registers a client on behalf of the authenticated operator.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	var createdBy *int64
	if p, ok := auth.PrincipalFrom(r.Context()); ok {
		createdBy = &p.ID
	}

	client, err := h.clients.Create(r.Context(), req, createdBy)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Cliente creado correctamente.", client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Clientes obtenidos correctamente.", clients)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var patch domain.ClientPatch
	if err := decode(r, h.validator, &patch); err != nil {
		response.FromError(w, r, err)
		return
	}

	client, err := h.clients.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Cliente actualizado correctamente.", client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.clients.Delete(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Cliente eliminado correctamente.", nil)
}

package handler

import (
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	users     UserService
	validator *validator.Validate
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: newValidator(),
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Usuarios obtenidos correctamente.", users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Usuario obtenido correctamente.", user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	user, err := h.users.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Usuario creado correctamente.", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var patch domain.UserPatch
	if err := decode(r, h.validator, &patch); err != nil {
		response.FromError(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Usuario actualizado correctamente.", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Usuario eliminado correctamente.", nil)
}

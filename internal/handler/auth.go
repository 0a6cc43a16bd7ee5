package handler

import (
	"net/http"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	users     UserService
	validator *validator.Validate
}

func NewAuthHandler(users UserService) *AuthHandler {
	return &AuthHandler{
		users:     users,
		validator: newValidator(),
	}
}

// Login exchanges a cedula and password for an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	resp, err := h.users.Login(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, "Autenticación exitosa.", resp)
}

// Register creates an operator account. Only admins reach it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
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

package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// User is a back-office operator able to sign in.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"nombre" db:"name"`
	NationalID   string    `json:"cedula" db:"national_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"rol" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID         int64  `json:"id"`
	Name       string `json:"nombre"`
	NationalID string `json:"cedula"`
	Role       string `json:"rol"`
}

func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Name: u.Name, NationalID: u.NationalID, Role: u.Role}
}

type CreateUserRequest struct {
	Name       string `json:"nombre" validate:"required"`
	NationalID string `json:"cedula" validate:"required,numeric"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"rol" validate:"omitempty,oneof=admin operador"`
}

type UserPatch struct {
	Name       *string `json:"nombre" validate:"omitempty,min=1"`
	NationalID *string `json:"cedula" validate:"omitempty,numeric"`
	Password   *string `json:"password" validate:"omitempty,min=6"`
	Role       *string `json:"rol" validate:"omitempty,oneof=admin operador"`
}

// Apply merges the non-secret fields; the password is hashed by the caller.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.NationalID != nil {
		u.NationalID = *p.NationalID
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

type LoginRequest struct {
	NationalID string `json:"cedula" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	User        Principal `json:"user"`
}

package domain

import "time"

// Client is a borrower identity record, unique by national id.
type Client struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"nombre" db:"name"`
	NationalID string    `json:"cedula" db:"national_id"`
	Phone      string    `json:"telefono" db:"phone"`
	UserID     *int64    `json:"usuarioId" db:"user_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateClientRequest struct {
	Name       string `json:"nombre" validate:"required"`
	NationalID string `json:"cedula" validate:"required,numeric"`
	Phone      string `json:"telefono" validate:"required,numeric"`
}

// ClientPatch carries the optional fields of a client edit.
type ClientPatch struct {
	Name       *string `json:"nombre" validate:"omitempty,min=1"`
	NationalID *string `json:"cedula" validate:"omitempty,numeric"`
	Phone      *string `json:"telefono" validate:"omitempty,numeric"`
}

// Apply merges the patch onto c; supplied values win.
func (p ClientPatch) Apply(c Client) Client {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.NationalID != nil {
		c.NationalID = *p.NationalID
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	return c
}

package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
type CreateOrganizationRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	ParentID   string `json:"parent_id" validate:"omitempty,uuid"`
	DirectorID string `json:"director_id" validate:"omitempty,uuid"`
}

// UpdateOrganizationRequest entrada para actualizar una organización. Campos nil = sin cambio.
type UpdateOrganizationRequest struct {
	Name       *string `json:"name"`
	ParentID   *string `json:"parent_id"`
	DirectorID *string `json:"director_id"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ParentID   string    `json:"parent_id,omitempty"`
	DirectorID string    `json:"director_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

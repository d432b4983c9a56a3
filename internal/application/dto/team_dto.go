package dto

import "time"

// CreateTeamRequest entrada para crear un equipo. Slug vacío = se genera del nombre.
type CreateTeamRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Description    string `json:"description" validate:"max=1000"`
	Slug           string `json:"slug" validate:"omitempty,max=200"`
	OrganizationID string `json:"organization_id" validate:"omitempty,uuid"`
}

// UpdateTeamRequest entrada para actualizar un equipo. Campos nil = sin cambio.
type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
}

// TeamResponse salida de un equipo.
type TeamResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Slug           string    `json:"slug"`
	CreatorID      string    `json:"creator_id"`
	OrganizationID string    `json:"organization_id"`
	MemberCount    int       `json:"member_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

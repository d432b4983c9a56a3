package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeadRequest entrada para crear un lead. El referral es el actor;
// la organización queda vacía hasta la primera asignación.
type CreateLeadRequest struct {
	ClientFirstName string          `json:"client_first_name" validate:"required,min=1,max=100"`
	ClientLastName  string          `json:"client_last_name" validate:"required,min=1,max=100"`
	ClientEmail     string          `json:"client_email" validate:"omitempty,email"`
	ClientPhone     string          `json:"client_phone" validate:"omitempty,max=50"`
	ClientCompany   string          `json:"client_company" validate:"omitempty,max=200"`
	Source          string          `json:"source" validate:"omitempty,max=200"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// UpdateLeadRequest entrada para actualizar datos de contacto del lead. Campos nil = sin cambio.
type UpdateLeadRequest struct {
	ClientFirstName *string          `json:"client_first_name"`
	ClientLastName  *string          `json:"client_last_name"`
	ClientEmail     *string          `json:"client_email"`
	ClientPhone     *string          `json:"client_phone"`
	ClientCompany   *string          `json:"client_company"`
	Source          *string          `json:"source"`
	Revenue         *decimal.Decimal `json:"revenue"`
}

// AssignLeadRequest entrada para asignar un lead.
type AssignLeadRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required,uuid"`
}

// UpdateLeadStatusRequest entrada para cambiar el estado de un lead.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LeadFiltersRequest filtros de listado de leads (query params).
type LeadFiltersRequest struct {
	Status     string `query:"status"`
	AssignedTo string `query:"assigned_to"`
	Search     string `query:"search"`
	PageRequest
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID              string          `json:"id"`
	ReferralID      string          `json:"referral_id,omitempty"`
	OrganizationID  string          `json:"organization_id,omitempty"`
	ClientFirstName string          `json:"client_first_name"`
	ClientLastName  string          `json:"client_last_name"`
	ClientEmail     string          `json:"client_email,omitempty"`
	ClientPhone     string          `json:"client_phone,omitempty"`
	ClientCompany   string          `json:"client_company,omitempty"`
	Status          string          `json:"status"`
	AssignedToID    string          `json:"assigned_to_id,omitempty"`
	AssignedByID    string          `json:"assigned_by_id,omitempty"`
	Source          string          `json:"source,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un Lead.
const (
	LeadStatusNew               = "new"
	LeadStatusAssignedToManager = "assigned_to_manager"
	LeadStatusDeclinedByManager = "declined_by_manager"
	LeadStatusAssignedToAgent   = "assigned_to_agent"
	LeadStatusDeclinedByAgent   = "declined_by_agent"
	LeadStatusAccepted          = "accepted"
	LeadStatusContacted         = "contacted"
	LeadStatusQualified         = "qualified"
	LeadStatusConverted         = "converted"
	LeadStatusRejected          = "rejected"
)

// LeadStatuses devuelve todos los estados válidos de un lead.
func LeadStatuses() []string {
	return []string{
		LeadStatusNew, LeadStatusAssignedToManager, LeadStatusDeclinedByManager,
		LeadStatusAssignedToAgent, LeadStatusDeclinedByAgent, LeadStatusAccepted,
		LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusRejected,
	}
}

// IsValidLeadStatus verifica pertenencia al enum de estados.
func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Lead representa un prospecto comercial. OrganizationID es null al crearlo y
// se deriva del asignado actual en cada asignación (sigue al assignee, no al assigner).
type Lead struct {
	ID              string
	ReferralID      string
	OrganizationID  string
	ClientFirstName string
	ClientLastName  string
	ClientEmail     string
	ClientPhone     string
	ClientCompany   string
	Status          string
	AssignedToID    string
	AssignedByID    string
	Source          string
	Revenue         decimal.Decimal // >= 0
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClientFullName devuelve el nombre completo del cliente.
func (l *Lead) ClientFullName() string {
	if l.ClientFirstName == "" {
		return l.ClientLastName
	}
	if l.ClientLastName == "" {
		return l.ClientFirstName
	}
	return l.ClientFirstName + " " + l.ClientLastName
}

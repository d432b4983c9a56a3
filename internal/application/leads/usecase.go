package leads

import (
	"time"

	"github.com/google/uuid"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LeadUseCase maneja el ciclo de vida de los leads: alta, consulta con
// scope del actor, actualización de datos y de estado, y borrado.
// La asignación vive en assign_lead.go (transaccional).
type LeadUseCase struct {
	txRunner TxRunner
	leadRepo repository.LeadRepository
	userRepo repository.UserRepository
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(txRunner TxRunner, leadRepo repository.LeadRepository, userRepo repository.UserRepository) *LeadUseCase {
	return &LeadUseCase{txRunner: txRunner, leadRepo: leadRepo, userRepo: userRepo}
}

// CreateInput entrada para crear un lead.
type CreateInput struct {
	ClientFirstName string
	ClientLastName  string
	ClientEmail     string
	ClientPhone     string
	ClientCompany   string
	Source          string
	Revenue         decimal.Decimal
}

// Create registra un lead nuevo. El actor queda como referral; la
// organización queda vacía hasta la primera asignación y el estado es new.
func (uc *LeadUseCase) Create(actor *entity.User, in CreateInput) (*entity.Lead, error) {
	if !authz.CanCreateLead(actor) {
		return nil, domain.ErrAccessDenied
	}
	if in.ClientFirstName == "" && in.ClientLastName == "" {
		return nil, domain.NewValidationError("client_first_name", "el lead necesita al menos un nombre de cliente")
	}
	if in.Revenue.IsNegative() {
		return nil, domain.NewValidationError("revenue", "el revenue no puede ser negativo")
	}
	now := time.Now()
	lead := &entity.Lead{
		ID:              uuid.New().String(),
		ReferralID:      actor.ID,
		ClientFirstName: in.ClientFirstName,
		ClientLastName:  in.ClientLastName,
		ClientEmail:     in.ClientEmail,
		ClientPhone:     in.ClientPhone,
		ClientCompany:   in.ClientCompany,
		Source:          in.Source,
		Revenue:         in.Revenue,
		Status:          entity.LeadStatusNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.leadRepo.Create(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// List devuelve los leads visibles para el actor según su scope.
func (uc *LeadUseCase) List(actor *entity.User, f repository.LeadFilters) ([]*entity.Lead, error) {
	if !authz.CanViewAnyLeads(actor) {
		return nil, domain.ErrAccessDenied
	}
	scope := repository.ScopeFor(authz.ResolveScope(actor), actor.ID)
	return uc.leadRepo.List(scope, f)
}

// Get devuelve un lead si el actor puede verlo.
func (uc *LeadUseCase) Get(actor *entity.User, leadID string) (*entity.Lead, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewLead(actor, lead) {
		return nil, domain.ErrAccessDenied
	}
	return lead, nil
}

// UpdateInput entrada para actualizar datos de contacto. Campos nil = sin cambio.
type UpdateInput struct {
	ClientFirstName *string
	ClientLastName  *string
	ClientEmail     *string
	ClientPhone     *string
	ClientCompany   *string
	Source          *string
	Revenue         *decimal.Decimal
}

// Update modifica los datos de contacto de un lead.
func (uc *LeadUseCase) Update(actor *entity.User, leadID string, in UpdateInput) (*entity.Lead, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateLead(actor, lead) {
		return nil, domain.ErrAccessDenied
	}
	if in.ClientFirstName != nil {
		lead.ClientFirstName = *in.ClientFirstName
	}
	if in.ClientLastName != nil {
		lead.ClientLastName = *in.ClientLastName
	}
	if in.ClientEmail != nil {
		lead.ClientEmail = *in.ClientEmail
	}
	if in.ClientPhone != nil {
		lead.ClientPhone = *in.ClientPhone
	}
	if in.ClientCompany != nil {
		lead.ClientCompany = *in.ClientCompany
	}
	if in.Source != nil {
		lead.Source = *in.Source
	}
	if in.Revenue != nil {
		if in.Revenue.IsNegative() {
			return nil, domain.NewValidationError("revenue", "el revenue no puede ser negativo")
		}
		lead.Revenue = *in.Revenue
	}
	lead.UpdatedAt = time.Now()
	if err := uc.leadRepo.Update(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateStatus cambia el estado del lead a cualquier valor del enum.
// No hay grafo estricto fuera de la asignación: la autorización decide
// quién puede tocarlo, no hacia qué estado.
func (uc *LeadUseCase) UpdateStatus(actor *entity.User, leadID, status string) (*entity.Lead, error) {
	if !entity.IsValidLeadStatus(status) {
		return nil, domain.NewValidationError("status", "estado de lead desconocido: "+status)
	}
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateLeadStatus(actor, lead) {
		return nil, domain.ErrAccessDenied
	}
	lead.Status = status
	lead.UpdatedAt = time.Now()
	if err := uc.leadRepo.Update(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Delete elimina un lead (las citas asociadas caen en cascada en BD).
func (uc *LeadUseCase) Delete(actor *entity.User, leadID string) error {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrNotFound
	}
	if !authz.CanDeleteLead(actor, lead) {
		return domain.ErrAccessDenied
	}
	return uc.leadRepo.Delete(leadID)
}

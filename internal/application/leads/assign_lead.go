package leads

import (
	"context"
	"time"

	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// Assign ejecuta el workflow de asignación de un lead:
//
//	Coordinator    -> assignee con rol Sales Manager  => assigned_to_manager
//	Sales Manager  -> assignee con rol Sales Agent de
//	                  su misma organización           => assigned_to_agent
//
// Cualquier otro par de roles se rechaza. En éxito se fijan assigned_to,
// assigned_by, el estado resultante y la organización del lead pasa a ser
// la del assignee (sigue al asignado, no al asignador). Todo dentro de una
// transacción con bloqueo de fila (SELECT FOR UPDATE) sobre el lead, para
// que dos asignaciones concurrentes no se pisen.
func (uc *LeadUseCase) Assign(ctx context.Context, actor *entity.User, leadID, assigneeID string) (*entity.Lead, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanAssignLead(actor, lead) {
		return nil, domain.ErrAccessDenied
	}

	assignee, err := uc.userRepo.GetByID(assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil || !assignee.IsActive {
		return nil, domain.ErrUserNotFound
	}

	newStatus, err := resolveAssignment(actor, assignee)
	if err != nil {
		return nil, err
	}

	var assigned *entity.Lead
	err = uc.txRunner.RunLeads(ctx, func(leadRepo repository.LeadRepository, _ repository.UserRepository) error {
		// Bloquea la fila del lead; revalida contra el estado ya bloqueado.
		locked, err := leadRepo.GetForUpdate(leadID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if !authz.CanAssignLead(actor, locked) {
			return domain.ErrAccessDenied
		}
		locked.AssignedToID = assignee.ID
		locked.AssignedByID = actor.ID
		locked.OrganizationID = assignee.OrganizationID
		locked.Status = newStatus
		locked.UpdatedAt = time.Now()
		if err := leadRepo.Update(locked); err != nil {
			return err
		}
		assigned = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// resolveAssignment valida el par de roles (asignador, asignado) y devuelve
// el estado resultante del lead.
func resolveAssignment(actor, assignee *entity.User) (string, error) {
	switch actor.Role {
	case entity.RoleCoordinator:
		if assignee.Role != entity.RoleSalesManager {
			return "", domain.NewValidationError("assigned_to", "Coordinators can only assign leads to Sales Managers.")
		}
		return entity.LeadStatusAssignedToManager, nil
	case entity.RoleSalesManager:
		if assignee.Role != entity.RoleSalesAgent {
			return "", domain.NewValidationError("assigned_to", "Sales Managers can only assign leads to Sales Agents.")
		}
		if assignee.OrganizationID != actor.OrganizationID {
			return "", domain.NewValidationError("assigned_to", "You can only assign leads to agents within your own organization.")
		}
		return entity.LeadStatusAssignedToAgent, nil
	default:
		return "", domain.NewValidationError("assigned_to", "el rol del asignador no participa en el workflow de asignación")
	}
}

package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// Políticas de Lead. Admin y Group Director pasan todas las comprobaciones
// (bypass global, evaluado primero). Un chequeo denegado nunca aplica
// mutaciones parciales: devuelve false y el caller aborta.

// CanViewAnyLeads: capacidad base de listado.
func CanViewAnyLeads(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapLeadsView)
}

// CanViewLead: capacidad base + (participante directo O dentro del alcance).
// El acceso por participación gana siempre, aunque el lead haya salido del
// alcance organizacional del actor.
func CanViewLead(actor *entity.User, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapLeadsView) {
		return false
	}
	if isLeadParticipant(actor, lead) {
		return true
	}
	return leadInScope(actor, lead)
}

// CanCreateLead: solo capacidad base.
func CanCreateLead(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapLeadsCreate)
}

// CanUpdateLead: capacidad + (asignado O dentro del alcance).
func CanUpdateLead(actor *entity.User, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapLeadsUpdateStatus) {
		return false
	}
	return lead.AssignedToID == actor.ID || leadInScope(actor, lead)
}

// CanDeleteLead: capacidad + (participante O dentro del alcance).
func CanDeleteLead(actor *entity.User, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapLeadsDelete) {
		return false
	}
	return isLeadParticipant(actor, lead) || leadInScope(actor, lead)
}

// CanAssignLead decide quién puede iniciar la asignación de un lead.
// El par de roles (assigner, assignee) se valida aparte en el workflow.
func CanAssignLead(actor *entity.User, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapLeadsAssign) {
		return false
	}
	switch actor.Role {
	case entity.RoleCoordinator:
		// Los coordinadores asignan leads de su organización; los leads nuevos
		// aún no tienen organización y también les corresponden.
		return lead.OrganizationID == "" || lead.OrganizationID == actor.OrganizationID
	case entity.RoleSalesManager:
		// Un manager reasigna leads asignados a él o por él.
		return lead.AssignedToID == actor.ID || lead.AssignedByID == actor.ID
	default:
		return false
	}
}

// CanUpdateLeadStatus decide quién puede cambiar el estado de un lead.
func CanUpdateLeadStatus(actor *entity.User, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapLeadsUpdateStatus) {
		return false
	}
	switch actor.Role {
	case entity.RoleSalesManager:
		return lead.AssignedToID == actor.ID || lead.AssignedByID == actor.ID
	case entity.RoleSalesAgent:
		return lead.AssignedToID == actor.ID
	default:
		return false
	}
}

func isLeadParticipant(actor *entity.User, lead *entity.Lead) bool {
	return lead.AssignedToID == actor.ID ||
		lead.AssignedByID == actor.ID ||
		lead.ReferralID == actor.ID
}

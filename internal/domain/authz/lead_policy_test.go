package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
)

func leadIn(orgID, assignedTo, referralID string) *entity.Lead {
	return &entity.Lead{
		ID:             "lead-1",
		OrganizationID: orgID,
		AssignedToID:   assignedTo,
		ReferralID:     referralID,
		Status:         entity.LeadStatusNew,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CanViewLead
// ──────────────────────────────────────────────────────────────────────────────

func TestCanViewLead_AdminVeCualquierLead(t *testing.T) {
	admin := userWithRole(entity.RoleAdmin, "")
	assert.True(t, authz.CanViewLead(admin, leadIn("org-ajena", "otro", "otro")))
}

func TestCanViewLead_AgenteSoloSiEstaAsignado(t *testing.T) {
	agent := userWithRole(entity.RoleSalesAgent, "org-1")

	assert.True(t, authz.CanViewLead(agent, leadIn("org-1", agent.ID, "")),
		"el agente ve el lead que tiene asignado")
	assert.False(t, authz.CanViewLead(agent, leadIn("org-1", "otro-agente", "")),
		"el agente no ve leads de su organización asignados a otros")
}

func TestCanViewLead_ReferralVeSusLeads(t *testing.T) {
	referral := userWithRole(entity.RoleReferral, "org-root")

	assert.True(t, authz.CanViewLead(referral, leadIn("", "", referral.ID)))
	assert.False(t, authz.CanViewLead(referral, leadIn("", "", "otro-referral")))
}

func TestCanViewLead_ParticipacionGanaAlScope(t *testing.T) {
	// El lead salió de la organización del manager, pero él lo asignó:
	// la participación directa mantiene el acceso.
	manager := userWithRole(entity.RoleSalesManager, "org-1")
	lead := leadIn("org-2", "agente-externo", "")
	lead.AssignedByID = manager.ID

	assert.True(t, authz.CanViewLead(manager, lead))
}

func TestCanViewLead_PartnerDirectorPorOrganizacion(t *testing.T) {
	pd := userWithRole(entity.RolePartnerDirector, "org-1")

	assert.True(t, authz.CanViewLead(pd, leadIn("org-1", "cualquiera", "")))
	assert.False(t, authz.CanViewLead(pd, leadIn("org-2", "cualquiera", "")))
}

// ──────────────────────────────────────────────────────────────────────────────
// CanAssignLead
// ──────────────────────────────────────────────────────────────────────────────

func TestCanAssignLead_CoordinadorSoloSuOrganizacionOLeadsNuevos(t *testing.T) {
	coord := userWithRole(entity.RoleCoordinator, "org-1")

	assert.True(t, authz.CanAssignLead(coord, leadIn("", "", "ref-1")),
		"los leads sin organización (nuevos) corresponden al coordinador")
	assert.True(t, authz.CanAssignLead(coord, leadIn("org-1", "", "")))
	assert.False(t, authz.CanAssignLead(coord, leadIn("org-2", "", "")),
		"un coordinador no asigna leads de otra organización")
}

func TestCanAssignLead_ManagerSoloLeadsPropios(t *testing.T) {
	manager := userWithRole(entity.RoleSalesManager, "org-1")

	assert.True(t, authz.CanAssignLead(manager, leadIn("org-1", manager.ID, "")),
		"el manager reasigna el lead que tiene asignado")
	assert.False(t, authz.CanAssignLead(manager, leadIn("org-1", "otro-manager", "")),
		"el manager no reasigna leads asignados a otros")
}

func TestCanAssignLead_AgenteYReferralNoAsignan(t *testing.T) {
	lead := leadIn("org-1", "", "")
	assert.False(t, authz.CanAssignLead(userWithRole(entity.RoleSalesAgent, "org-1"), lead))
	assert.False(t, authz.CanAssignLead(userWithRole(entity.RoleReferral, "org-1"), lead))
}

func TestCanAssignLead_GroupDirectorBypass(t *testing.T) {
	gd := userWithRole(entity.RoleGroupDirector, "")
	assert.True(t, authz.CanAssignLead(gd, leadIn("org-cualquiera", "otro", "")))
}

// ──────────────────────────────────────────────────────────────────────────────
// CanUpdateLeadStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestCanUpdateLeadStatus_AgenteSoloSuLead(t *testing.T) {
	agent := userWithRole(entity.RoleSalesAgent, "org-1")

	assert.True(t, authz.CanUpdateLeadStatus(agent, leadIn("org-1", agent.ID, "")))
	assert.False(t, authz.CanUpdateLeadStatus(agent, leadIn("org-1", "otro", "")))
}

func TestCanUpdateLeadStatus_CoordinadorNoPuede(t *testing.T) {
	coord := userWithRole(entity.RoleCoordinator, "org-1")
	assert.False(t, authz.CanUpdateLeadStatus(coord, leadIn("org-1", "", "")),
		"el coordinador asigna pero no trabaja el estado del lead")
}

package leads_test

import (
	"context"
	"testing"

	"github.com/protecta/crm-pro/internal/application/leads"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner ejecuta la función con los mismos repos
// (sin transacción real); suficiente para verificar la semántica del workflow.
// ──────────────────────────────────────────────────────────────────────────────

type fakeLeadRepo struct {
	leads map[string]*entity.Lead
}

func newFakeLeadRepo(ls ...*entity.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: map[string]*entity.Lead{}}
	for _, l := range ls {
		cp := *l
		r.leads[l.ID] = &cp
	}
	return r
}

func (r *fakeLeadRepo) Create(lead *entity.Lead) error {
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(id string) (*entity.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) GetForUpdate(id string) (*entity.Lead, error) { return r.GetByID(id) }

func (r *fakeLeadRepo) Update(lead *entity.Lead) error {
	if _, ok := r.leads[lead.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) Delete(id string) error {
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) List(_ repository.ScopeFilter, _ repository.LeadFilters) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, l := range r.leads {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(us ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error      { delete(r.users, id); return nil }
func (r *fakeUserRepo) List(_ repository.ScopeFilter, _ repository.UserFilters) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListByRole(role, orgID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role && u.IsActive && (orgID == "" || u.OrganizationID == orgID) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	leadRepo repository.LeadRepository
	userRepo repository.UserRepository
}

func (tr *fakeTxRunner) RunLeads(_ context.Context, fn func(repository.LeadRepository, repository.UserRepository) error) error {
	return fn(tr.leadRepo, tr.userRepo)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func activeUser(id, role, orgID string) *entity.User {
	return &entity.User{ID: id, Role: role, OrganizationID: orgID, IsActive: true}
}

func buildLeadUseCase(leadRepo *fakeLeadRepo, userRepo *fakeUserRepo) *leads.LeadUseCase {
	tx := &fakeTxRunner{leadRepo: leadRepo, userRepo: userRepo}
	return leads.NewLeadUseCase(tx, leadRepo, userRepo)
}

// ── Asignación Coordinator -> Sales Manager ──────────────────────────────────

func TestAssign_CoordinadorAManager_ActualizaEstadoYOrganizacion(t *testing.T) {
	coordinator := activeUser("coord-1", entity.RoleCoordinator, "org-a")
	manager := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	lead := &entity.Lead{ID: "lead-1", ReferralID: "ref-1", Status: entity.LeadStatusNew}

	leadRepo := newFakeLeadRepo(lead)
	userRepo := newFakeUserRepo(coordinator, manager)
	uc := buildLeadUseCase(leadRepo, userRepo)

	got, err := uc.Assign(context.Background(), coordinator, "lead-1", "mgr-1")
	require.NoError(t, err, "Coordinator -> Sales Manager es una transición válida")

	assert.Equal(t, entity.LeadStatusAssignedToManager, got.Status)
	assert.Equal(t, "mgr-1", got.AssignedToID)
	assert.Equal(t, "coord-1", got.AssignedByID)
	assert.Equal(t, "org-b", got.OrganizationID,
		"la organización del lead debe seguir al assignee, no al asignador")

	persisted, _ := leadRepo.GetByID("lead-1")
	assert.Equal(t, entity.LeadStatusAssignedToManager, persisted.Status, "el cambio debe persistirse")
}

func TestAssign_CoordinadorAAgente_Rechaza(t *testing.T) {
	coordinator := activeUser("coord-1", entity.RoleCoordinator, "org-a")
	agent := activeUser("agent-1", entity.RoleSalesAgent, "org-a")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusNew}

	leadRepo := newFakeLeadRepo(lead)
	uc := buildLeadUseCase(leadRepo, newFakeUserRepo(coordinator, agent))

	_, err := uc.Assign(context.Background(), coordinator, "lead-1", "agent-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Coordinators can only assign leads to Sales Managers.", vErr.Reason)

	persisted, _ := leadRepo.GetByID("lead-1")
	assert.Equal(t, entity.LeadStatusNew, persisted.Status, "un rechazo no debe mutar el lead")
	assert.Empty(t, persisted.AssignedToID)
}

// ── Asignación Sales Manager -> Sales Agent ──────────────────────────────────

func TestAssign_ManagerAAgenteMismaOrganizacion_Avanza(t *testing.T) {
	manager := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	agent := activeUser("agent-1", entity.RoleSalesAgent, "org-b")
	lead := &entity.Lead{
		ID:             "lead-1",
		Status:         entity.LeadStatusAssignedToManager,
		OrganizationID: "org-b",
		AssignedToID:   "mgr-1",
		AssignedByID:   "coord-1",
	}

	leadRepo := newFakeLeadRepo(lead)
	uc := buildLeadUseCase(leadRepo, newFakeUserRepo(manager, agent))

	got, err := uc.Assign(context.Background(), manager, "lead-1", "agent-1")
	require.NoError(t, err)

	assert.Equal(t, entity.LeadStatusAssignedToAgent, got.Status)
	assert.Equal(t, "agent-1", got.AssignedToID)
	assert.Equal(t, "mgr-1", got.AssignedByID)
	assert.Equal(t, "org-b", got.OrganizationID)
}

func TestAssign_ManagerAAgenteDeOtraOrganizacion_Rechaza(t *testing.T) {
	manager := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	foreignAgent := activeUser("agent-x", entity.RoleSalesAgent, "org-c")
	lead := &entity.Lead{
		ID:             "lead-1",
		Status:         entity.LeadStatusAssignedToManager,
		OrganizationID: "org-b",
		AssignedToID:   "mgr-1",
	}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(manager, foreignAgent))

	_, err := uc.Assign(context.Background(), manager, "lead-1", "agent-x")
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "You can only assign leads to agents within your own organization.", vErr.Reason)
}

func TestAssign_ManagerAManager_Rechaza(t *testing.T) {
	manager := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	otherManager := activeUser("mgr-2", entity.RoleSalesManager, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusAssignedToManager, AssignedToID: "mgr-1"}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(manager, otherManager))

	_, err := uc.Assign(context.Background(), manager, "lead-1", "mgr-2")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Sales Managers can only assign leads to Sales Agents.", vErr.Reason)
}

// ── Reasignación en cadena ───────────────────────────────────────────────────

func TestAssign_SecuenciaCompleta_CoordinadorLuegoManager(t *testing.T) {
	coordinator := activeUser("coord-1", entity.RoleCoordinator, "org-a")
	manager := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	agent := activeUser("agent-1", entity.RoleSalesAgent, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusNew}

	leadRepo := newFakeLeadRepo(lead)
	uc := buildLeadUseCase(leadRepo, newFakeUserRepo(coordinator, manager, agent))

	_, err := uc.Assign(context.Background(), coordinator, "lead-1", "mgr-1")
	require.NoError(t, err)

	got, err := uc.Assign(context.Background(), manager, "lead-1", "agent-1")
	require.NoError(t, err)

	assert.Equal(t, entity.LeadStatusAssignedToAgent, got.Status)
	assert.Equal(t, "agent-1", got.AssignedToID)
	assert.Equal(t, "org-b", got.OrganizationID)
}

// ── Roles sin transición definida y otros rechazos ───────────────────────────

func TestAssign_AgenteComoAsignador_Rechaza(t *testing.T) {
	agent := activeUser("agent-1", entity.RoleSalesAgent, "org-b")
	otherAgent := activeUser("agent-2", entity.RoleSalesAgent, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusAssignedToAgent, AssignedToID: "agent-1"}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(agent, otherAgent))

	_, err := uc.Assign(context.Background(), agent, "lead-1", "agent-2")
	assert.ErrorIs(t, err, domain.ErrAccessDenied,
		"un Sales Agent no tiene capacidad de asignación")
}

func TestAssign_CoordinadorSobreLeadDeOtraOrganizacion_Rechaza(t *testing.T) {
	coordinator := activeUser("coord-1", entity.RoleCoordinator, "org-a")
	manager := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusAssignedToManager, OrganizationID: "org-z"}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(coordinator, manager))

	_, err := uc.Assign(context.Background(), coordinator, "lead-1", "mgr-1")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestAssign_AssigneeInactivo_Rechaza(t *testing.T) {
	coordinator := activeUser("coord-1", entity.RoleCoordinator, "org-a")
	inactive := activeUser("mgr-1", entity.RoleSalesManager, "org-b")
	inactive.IsActive = false
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusNew}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(coordinator, inactive))

	_, err := uc.Assign(context.Background(), coordinator, "lead-1", "mgr-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAssign_LeadInexistente_Rechaza(t *testing.T) {
	coordinator := activeUser("coord-1", entity.RoleCoordinator, "org-a")
	uc := buildLeadUseCase(newFakeLeadRepo(), newFakeUserRepo(coordinator))

	_, err := uc.Assign(context.Background(), coordinator, "no-such", "mgr-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── UpdateStatus ─────────────────────────────────────────────────────────────

func TestUpdateStatus_AgenteAsignadoPuedeAvanzar(t *testing.T) {
	agent := activeUser("agent-1", entity.RoleSalesAgent, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusAssignedToAgent, AssignedToID: "agent-1"}

	leadRepo := newFakeLeadRepo(lead)
	uc := buildLeadUseCase(leadRepo, newFakeUserRepo(agent))

	got, err := uc.UpdateStatus(agent, "lead-1", entity.LeadStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusAccepted, got.Status)
}

func TestUpdateStatus_EstadoDesconocido_Rechaza(t *testing.T) {
	agent := activeUser("agent-1", entity.RoleSalesAgent, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusAssignedToAgent, AssignedToID: "agent-1"}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(agent))

	_, err := uc.UpdateStatus(agent, "lead-1", "won")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_AgenteNoAsignado_Rechaza(t *testing.T) {
	agent := activeUser("agent-2", entity.RoleSalesAgent, "org-b")
	lead := &entity.Lead{ID: "lead-1", Status: entity.LeadStatusAssignedToAgent, AssignedToID: "agent-1"}

	uc := buildLeadUseCase(newFakeLeadRepo(lead), newFakeUserRepo(agent))

	_, err := uc.UpdateStatus(agent, "lead-1", entity.LeadStatusContacted)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

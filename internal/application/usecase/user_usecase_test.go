package usecase_test

import (
	"testing"

	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/application/usecase"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserUC(users *fakeUserRepo, orgs *fakeOrgRepo) *usecase.UserUseCase {
	return usecase.NewUserUseCase(users, orgs)
}

func TestUserCreate_AdminCreaCualquierRol(t *testing.T) {
	admin := adminUser()
	userRepo := newFakeUserRepo(admin)
	uc := newUserUC(userRepo, orgTree())

	got, err := uc.Create(admin, dto.CreateUserRequest{
		FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com",
		Password: "secreto123", RoleName: entity.RolePartnerDirector, OrganizationID: "a",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RolePartnerDirector, got.Role)
	assert.Equal(t, "a", got.OrganizationID)
	assert.True(t, got.IsActive)

	persisted, _ := userRepo.GetByEmail("ana@example.com")
	require.NotNil(t, persisted)
	assert.Equal(t, "admin-1", persisted.CreatedBy)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("secreto123")),
		"el password debe persistirse hasheado con bcrypt")
}

func TestUserCreate_ManagerSoloAprovisionaAgentes(t *testing.T) {
	manager := &entity.User{ID: "mgr-1", Role: entity.RoleSalesManager, OrganizationID: "b", IsActive: true}
	uc := newUserUC(newFakeUserRepo(manager), orgTree())

	// rol permitido
	got, err := uc.Create(manager, dto.CreateUserRequest{
		FirstName: "Luis", LastName: "Rojas", Email: "luis@example.com",
		Password: "secreto123", RoleName: entity.RoleSalesAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, "b", got.OrganizationID, "hereda la organización del actor")

	// rol prohibido para un manager
	_, err = uc.Create(manager, dto.CreateUserRequest{
		FirstName: "Eva", LastName: "Mora", Email: "eva@example.com",
		Password: "secreto123", RoleName: entity.RoleSalesManager,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserCreate_ReferralCuelgaDeLaRaiz(t *testing.T) {
	admin := adminUser()
	uc := newUserUC(newFakeUserRepo(admin), orgTree())

	got, err := uc.Create(admin, dto.CreateUserRequest{
		FirstName: "Rita", LastName: "Vega", Email: "rita@example.com",
		Password: "secreto123", RoleName: entity.RoleReferral, OrganizationID: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, "root", got.OrganizationID,
		"los Referral siempre se cuelgan de la organización raíz")
}

func TestUserCreate_EmailDuplicado_Rechaza(t *testing.T) {
	admin := adminUser()
	existing := &entity.User{ID: "u-1", Email: "ana@example.com", Role: entity.RoleSalesAgent, IsActive: true}
	uc := newUserUC(newFakeUserRepo(admin, existing), orgTree())

	_, err := uc.Create(admin, dto.CreateUserRequest{
		FirstName: "Ana", LastName: "Dos", Email: "ana@example.com",
		Password: "secreto123", RoleName: entity.RoleSalesAgent,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_NadieCambiaSuPropioRol(t *testing.T) {
	admin := adminUser()
	userRepo := newFakeUserRepo(admin)
	uc := newUserUC(userRepo, orgTree())

	role := entity.RoleGroupDirector
	_, err := uc.Update(admin, "admin-1", dto.UpdateUserRequest{RoleName: &role})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserUpdate_SoloAdminCambiaRolesAjenos(t *testing.T) {
	director := &entity.User{ID: "pd-1", Role: entity.RolePartnerDirector, OrganizationID: "a", IsActive: true}
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	userRepo := newFakeUserRepo(director, agent)
	uc := newUserUC(userRepo, orgTree())

	role := entity.RoleSalesManager
	_, err := uc.Update(director, "agent-1", dto.UpdateUserRequest{RoleName: &role})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := uc.Update(adminUser(), "agent-1", dto.UpdateUserRequest{RoleName: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSalesManager, got.Role)
}

func TestUserToggleActive_SobreSiMismo_Rechaza(t *testing.T) {
	admin := adminUser()
	uc := newUserUC(newFakeUserRepo(admin), orgTree())

	_, err := uc.ToggleActive(admin, "admin-1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserToggleActive_AlternaElEstado(t *testing.T) {
	admin := adminUser()
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	userRepo := newFakeUserRepo(admin, agent)
	uc := newUserUC(userRepo, orgTree())

	got, err := uc.ToggleActive(admin, "agent-1")
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = uc.ToggleActive(admin, "agent-1")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestUserListAssignable_CoordinadorVeManagers(t *testing.T) {
	coord := &entity.User{ID: "coord-1", Role: entity.RoleCoordinator, OrganizationID: "a", IsActive: true}
	mgrA := &entity.User{ID: "mgr-a", Role: entity.RoleSalesManager, OrganizationID: "a", IsActive: true}
	mgrB := &entity.User{ID: "mgr-b", Role: entity.RoleSalesManager, OrganizationID: "b", IsActive: true}
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	uc := newUserUC(newFakeUserRepo(coord, mgrA, mgrB, agent), orgTree())

	got, err := uc.ListAssignable(coord)
	require.NoError(t, err)
	require.Len(t, got, 2, "los coordinadores asignan a managers de cualquier organización")
	for _, u := range got {
		assert.Equal(t, entity.RoleSalesManager, u.Role)
	}
}

func TestUserListAssignable_ManagerVeAgentesDeSuOrganizacion(t *testing.T) {
	mgr := &entity.User{ID: "mgr-1", Role: entity.RoleSalesManager, OrganizationID: "a", IsActive: true}
	agentA := &entity.User{ID: "agent-a", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	agentB := &entity.User{ID: "agent-b", Role: entity.RoleSalesAgent, OrganizationID: "b", IsActive: true}
	inactive := &entity.User{ID: "agent-off", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: false}
	uc := newUserUC(newFakeUserRepo(mgr, agentA, agentB, inactive), orgTree())

	got, err := uc.ListAssignable(mgr)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "agent-a", got[0].ID)
}

func TestUserListAssignable_AgenteNoAsigna(t *testing.T) {
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	uc := newUserUC(newFakeUserRepo(agent), orgTree())

	_, err := uc.ListAssignable(agent)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUserCreate_ActorSinCapacidad_Rechaza(t *testing.T) {
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	uc := newUserUC(newFakeUserRepo(agent), orgTree())

	_, err := uc.Create(agent, dto.CreateUserRequest{
		FirstName: "X", LastName: "Y", Email: "x@example.com",
		Password: "secreto123", RoleName: entity.RoleReferral,
	})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

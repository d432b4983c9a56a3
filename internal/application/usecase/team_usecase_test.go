package usecase_test

import (
	"testing"

	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/application/usecase"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func managerIn(orgID string) *entity.User {
	return &entity.User{ID: "mgr-1", Role: entity.RoleSalesManager, OrganizationID: orgID, IsActive: true}
}

func TestTeamCreate_GeneraSlugDesdeNombre(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(userRepo)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	got, err := uc.Create(managerIn("org-b"), dto.CreateTeamRequest{Name: "Ventas Bogotá"})
	require.NoError(t, err)
	assert.Equal(t, "ventas-bogota", got.Slug)
	assert.Equal(t, "org-b", got.OrganizationID)
	assert.Equal(t, "mgr-1", got.CreatorID)
}

func TestTeamCreate_SlugDuplicadoEnMismaOrganizacion_Sufija(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-b"},
		&entity.Team{ID: "t2", Slug: "ventas-2", OrganizationID: "org-b"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	got, err := uc.Create(managerIn("org-b"), dto.CreateTeamRequest{Name: "Ventas"})
	require.NoError(t, err)
	assert.Equal(t, "ventas-3", got.Slug, "la colisión avanza al siguiente sufijo libre")
}

func TestTeamCreate_MismoSlugEnOtraOrganizacion_NoColisiona(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-a"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	got, err := uc.Create(managerIn("org-b"), dto.CreateTeamRequest{Name: "Ventas"})
	require.NoError(t, err)
	assert.Equal(t, "ventas", got.Slug, "la unicidad del slug es por organización, no global")
}

func TestTeamAddMember_Duplicado_Rechaza(t *testing.T) {
	manager := managerIn("org-b")
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "org-b", IsActive: true}
	userRepo := newFakeUserRepo(manager, agent)
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-b", CreatorID: "mgr-1"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	require.NoError(t, uc.AddMember(manager, "t1", "agent-1"))
	err := uc.AddMember(manager, "t1", "agent-1")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	members, err := uc.ListMembers(manager, "t1")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestTeamAddMember_UsuarioInactivo_Rechaza(t *testing.T) {
	manager := managerIn("org-b")
	inactive := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "org-b", IsActive: false}
	userRepo := newFakeUserRepo(manager, inactive)
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-b", CreatorID: "mgr-1"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	err := uc.AddMember(manager, "t1", "agent-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTeamAddMember_UsuarioDeOtraOrganizacion_Rechaza(t *testing.T) {
	director := &entity.User{ID: "pd-1", Role: entity.RolePartnerDirector, OrganizationID: "org-a", IsActive: true}
	outsider := &entity.User{ID: "agent-b", Role: entity.RoleSalesAgent, OrganizationID: "org-b", IsActive: true}
	local := &entity.User{ID: "agent-a", Role: entity.RoleSalesAgent, OrganizationID: "org-a", IsActive: true}
	userRepo := newFakeUserRepo(director, outsider, local)
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-a", CreatorID: "pd-1"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	err := uc.AddMember(director, "t1", "agent-b")
	assert.ErrorIs(t, err, domain.ErrValidation,
		"el miembro debe pertenecer a la organización del equipo o a la del actor")

	members, merr := uc.ListMembers(director, "t1")
	require.NoError(t, merr)
	assert.Empty(t, members, "el usuario externo no debe quedar en el equipo")

	require.NoError(t, uc.AddMember(director, "t1", "agent-a"))
}

func TestTeamAddMember_AdminCruzaOrganizaciones(t *testing.T) {
	admin := adminUser()
	outsider := &entity.User{ID: "agent-b", Role: entity.RoleSalesAgent, OrganizationID: "org-b", IsActive: true}
	userRepo := newFakeUserRepo(admin, outsider)
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-a", CreatorID: "pd-1"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	require.NoError(t, uc.AddMember(admin, "t1", "agent-b"))
}

func TestTeamManageMembers_ActorAjeno_Rechaza(t *testing.T) {
	stranger := &entity.User{ID: "mgr-9", Role: entity.RoleSalesManager, OrganizationID: "org-z", IsActive: true}
	userRepo := newFakeUserRepo(stranger)
	teamRepo := newFakeTeamRepo(userRepo,
		&entity.Team{ID: "t1", Slug: "ventas", OrganizationID: "org-b", CreatorID: "mgr-1"},
	)
	uc := usecase.NewTeamUseCase(teamRepo, userRepo)

	err := uc.AddMember(stranger, "t1", "mgr-9")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

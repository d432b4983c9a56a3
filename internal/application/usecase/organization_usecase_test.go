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

func strptr(s string) *string { return &s }

func adminUser() *entity.User {
	return &entity.User{ID: "admin-1", Role: entity.RoleAdmin, IsActive: true}
}

// Árbol de prueba: root -> a -> b -> c
func orgTree() *fakeOrgRepo {
	return newFakeOrgRepo(
		&entity.Organization{ID: "root", Name: "Grupo", IsActive: true},
		&entity.Organization{ID: "a", Name: "Región A", ParentID: "root", IsActive: true},
		&entity.Organization{ID: "b", Name: "Zona B", ParentID: "a", IsActive: true},
		&entity.Organization{ID: "c", Name: "Oficina C", ParentID: "b", IsActive: true},
	)
}

func TestOrganizationUpdate_MoverPadreValido(t *testing.T) {
	orgRepo := orgTree()
	uc := usecase.NewOrganizationUseCase(orgRepo, newFakeUserRepo())

	// mover c directamente bajo root: sin ciclo
	got, err := uc.Update(adminUser(), "c", dto.UpdateOrganizationRequest{ParentID: strptr("root")})
	require.NoError(t, err)
	assert.Equal(t, "root", got.ParentID)
}

func TestOrganizationUpdate_PadreEsDescendiente_Rechaza(t *testing.T) {
	orgRepo := orgTree()
	uc := usecase.NewOrganizationUseCase(orgRepo, newFakeUserRepo())

	// a no puede colgar de c: c desciende de a, formaría ciclo a->c->b->a
	_, err := uc.Update(adminUser(), "a", dto.UpdateOrganizationRequest{ParentID: strptr("c")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	persisted, _ := orgRepo.GetByID("a")
	assert.Equal(t, "root", persisted.ParentID, "un rechazo no debe mutar el árbol")
}

func TestOrganizationUpdate_PadrePropio_Rechaza(t *testing.T) {
	uc := usecase.NewOrganizationUseCase(orgTree(), newFakeUserRepo())

	_, err := uc.Update(adminUser(), "b", dto.UpdateOrganizationRequest{ParentID: strptr("b")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrganizationUpdate_PadreInexistente_Rechaza(t *testing.T) {
	uc := usecase.NewOrganizationUseCase(orgTree(), newFakeUserRepo())

	_, err := uc.Update(adminUser(), "b", dto.UpdateOrganizationRequest{ParentID: strptr("no-such")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrganizationCreate_DirectorSinRolDeDireccion_Rechaza(t *testing.T) {
	agent := &entity.User{ID: "agent-1", Role: entity.RoleSalesAgent, OrganizationID: "a", IsActive: true}
	userRepo := newFakeUserRepo(agent)
	uc := usecase.NewOrganizationUseCase(orgTree(), userRepo)

	_, err := uc.Create(adminUser(), dto.CreateOrganizationRequest{
		Name: "Nueva", ParentID: "root", DirectorID: "agent-1",
	})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "The selected user must have a Director role.", vErr.Reason)
}

func TestOrganizationCreate_ConDirectorValido(t *testing.T) {
	director := &entity.User{ID: "dir-1", Role: entity.RolePartnerDirector, IsActive: true}
	uc := usecase.NewOrganizationUseCase(orgTree(), newFakeUserRepo(director))

	got, err := uc.Create(adminUser(), dto.CreateOrganizationRequest{
		Name: "Nueva", ParentID: "root", DirectorID: "dir-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "dir-1", got.DirectorID)
	assert.True(t, got.IsActive)
}

func TestOrganizationCreate_ActorSinPermiso_Rechaza(t *testing.T) {
	coordinator := &entity.User{ID: "coord-1", Role: entity.RoleCoordinator, OrganizationID: "a", IsActive: true}
	uc := usecase.NewOrganizationUseCase(orgTree(), newFakeUserRepo())

	_, err := uc.Create(coordinator, dto.CreateOrganizationRequest{Name: "Nueva"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

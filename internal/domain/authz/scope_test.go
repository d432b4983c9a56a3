package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
)

func userWithRole(role, orgID string) *entity.User {
	return &entity.User{
		ID:             "actor-1",
		Role:           role,
		OrganizationID: orgID,
		IsActive:       true,
	}
}

func TestResolveScope_AdminYGroupDirector_VenTodo(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleGroupDirector} {
		scope := authz.ResolveScope(userWithRole(role, "org-1"))
		assert.Equal(t, authz.ScopeAll, scope.Kind, "rol %s debe tener scope global", role)
	}
}

func TestResolveScope_PartnerDirector_ScopeDeOrganizacion(t *testing.T) {
	scope := authz.ResolveScope(userWithRole(entity.RolePartnerDirector, "org-1"))

	assert.Equal(t, authz.ScopeOrganization, scope.Kind)
	assert.Equal(t, "org-1", scope.OrganizationID)
	assert.False(t, scope.IncludeAssigned)
}

func TestResolveScope_SalesManager_OrganizacionMasAsignados(t *testing.T) {
	scope := authz.ResolveScope(userWithRole(entity.RoleSalesManager, "org-1"))

	assert.Equal(t, authz.ScopeOrganization, scope.Kind)
	assert.True(t, scope.IncludeAssigned,
		"un manager conserva visibilidad de los leads que asignó aunque cambien de organización")
}

func TestResolveScope_Coordinator_ScopeDeOrganizacion(t *testing.T) {
	scope := authz.ResolveScope(userWithRole(entity.RoleCoordinator, "org-1"))

	assert.Equal(t, authz.ScopeOrganization, scope.Kind)
	assert.False(t, scope.IncludeAssigned)
}

func TestResolveScope_AgenteYReferral_SoloLoPropio(t *testing.T) {
	for _, role := range []string{entity.RoleSalesAgent, entity.RoleReferral} {
		scope := authz.ResolveScope(userWithRole(role, "org-1"))
		assert.Equal(t, authz.ScopeOwn, scope.Kind, "rol %s solo ve sus registros", role)
	}
}

func TestResolveScope_RolDesconocido_SoloLoPropio(t *testing.T) {
	scope := authz.ResolveScope(userWithRole("Becario", "org-1"))
	assert.Equal(t, authz.ScopeOwn, scope.Kind)
}

func TestResolveScope_EsIdempotente(t *testing.T) {
	actor := userWithRole(entity.RoleSalesManager, "org-1")
	assert.Equal(t, authz.ResolveScope(actor), authz.ResolveScope(actor),
		"misma entrada, mismo scope")
}

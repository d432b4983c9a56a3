package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
)

func TestUserPolicy_ActorNil_NiegaSinPanic(t *testing.T) {
	target := userWithRole(entity.RoleSalesAgent, "org-1")

	assert.False(t, authz.CanViewAnyUsers(nil))
	assert.False(t, authz.CanViewUser(nil, target))
	assert.False(t, authz.CanCreateUser(nil))
	assert.False(t, authz.CanUpdateUser(nil, target))
	assert.False(t, authz.CanDeleteUser(nil, target))
}

func TestUserPolicy_TargetNil_Niega(t *testing.T) {
	admin := userWithRole(entity.RoleAdmin, "")

	assert.False(t, authz.CanViewUser(admin, nil))
	assert.False(t, authz.CanUpdateUser(admin, nil))
	assert.False(t, authz.CanDeleteUser(admin, nil))
}

func TestUserPolicy_PropioPerfil_SiemprePermitido(t *testing.T) {
	agent := userWithRole(entity.RoleSalesAgent, "org-1")

	assert.True(t, authz.CanViewUser(agent, agent))
	assert.True(t, authz.CanUpdateUser(agent, agent))
	assert.True(t, authz.CanDeleteUser(agent, agent))
}

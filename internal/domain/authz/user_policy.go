package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// Políticas de User. A diferencia del resto de entidades, el bypass aquí es
// solo para Admin; un Group Director pasa por las capacidades normales.

// CanViewAnyUsers: capacidad base de listado.
func CanViewAnyUsers(actor *entity.User) bool {
	if actor != nil && actor.Role == entity.RoleAdmin {
		return true
	}
	return Can(actor, CapUsersView)
}

// CanViewUser: el propio perfil siempre; el resto requiere la capacidad.
func CanViewUser(actor *entity.User, target *entity.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}
	if actor.ID == target.ID {
		return true
	}
	return Can(actor, CapUsersView)
}

// CanCreateUser: capacidad base. Las reglas de par de roles (qué rol puede
// aprovisionar qué rol) viven en el usecase de usuarios.
func CanCreateUser(actor *entity.User) bool {
	if actor != nil && actor.Role == entity.RoleAdmin {
		return true
	}
	return Can(actor, CapUsersCreate)
}

// CanUpdateUser: el propio perfil siempre; el resto requiere la capacidad.
func CanUpdateUser(actor *entity.User, target *entity.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}
	if actor.ID == target.ID {
		return true
	}
	return Can(actor, CapUsersUpdate)
}

// CanDeleteUser: la propia cuenta siempre; el resto requiere la capacidad.
func CanDeleteUser(actor *entity.User, target *entity.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}
	if actor.ID == target.ID {
		return true
	}
	return Can(actor, CapUsersDelete)
}

package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// Políticas de Team. El participante de un equipo es su creador; los
// miembros tienen acceso de lectura.

// CanViewAnyTeams: capacidad base de listado.
func CanViewAnyTeams(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapTeamsView)
}

// CanViewTeam: creador, miembro, o director con el equipo en su organización.
func CanViewTeam(actor *entity.User, team *entity.Team) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapTeamsView) {
		return false
	}
	if team.CreatorID == actor.ID || team.HasMember(actor.ID) {
		return true
	}
	if actor.Role == entity.RolePartnerDirector {
		return actor.OrganizationID == team.OrganizationID
	}
	return false
}

// CanCreateTeam: solo capacidad base.
func CanCreateTeam(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapTeamsCreate)
}

// CanUpdateTeam: creador o director de la organización del equipo.
func CanUpdateTeam(actor *entity.User, team *entity.Team) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapTeamsUpdate) {
		return false
	}
	if team.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entity.RolePartnerDirector && actor.OrganizationID == team.OrganizationID
}

// CanDeleteTeam: creador o director de la organización del equipo.
func CanDeleteTeam(actor *entity.User, team *entity.Team) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapTeamsDelete) {
		return false
	}
	if team.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entity.RolePartnerDirector && actor.OrganizationID == team.OrganizationID
}

// CanManageTeamMembers: creador o director de la organización del equipo.
func CanManageTeamMembers(actor *entity.User, team *entity.Team) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapTeamsManageMembers) {
		return false
	}
	if team.CreatorID == actor.ID {
		return true
	}
	return actor.Role == entity.RolePartnerDirector && actor.OrganizationID == team.OrganizationID
}

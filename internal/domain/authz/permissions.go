// Package authz contiene el motor de autorización: tabla explícita de
// permisos por rol, resolución de alcance (scope) y políticas puras por
// entidad. Todas las funciones reciben el actor de forma explícita y no
// tienen efectos secundarios.
package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// Capability es un permiso atómico con convención recurso.acción.
type Capability string

const (
	CapUsersCreate Capability = "users.create"
	CapUsersView   Capability = "users.view"
	CapUsersUpdate Capability = "users.update"
	CapUsersDelete Capability = "users.delete"

	CapOrganizationsCreate Capability = "organizations.create"
	CapOrganizationsView   Capability = "organizations.view"
	CapOrganizationsUpdate Capability = "organizations.update"
	CapOrganizationsDelete Capability = "organizations.delete"

	CapTeamsCreate        Capability = "teams.create"
	CapTeamsView          Capability = "teams.view"
	CapTeamsUpdate        Capability = "teams.update"
	CapTeamsDelete        Capability = "teams.delete"
	CapTeamsManageMembers Capability = "teams.manage_members"

	CapLeadsCreate        Capability = "leads.create"
	CapLeadsView          Capability = "leads.view"
	CapLeadsAssign        Capability = "leads.assign"
	CapLeadsAcceptDecline Capability = "leads.accept-decline"
	CapLeadsUpdateStatus  Capability = "leads.update-status"
	CapLeadsDelete        Capability = "leads.delete"

	CapAppointmentsCreate Capability = "appointments.create"
	CapAppointmentsView   Capability = "appointments.view"
	CapAppointmentsUpdate Capability = "appointments.update"
	CapAppointmentsDelete Capability = "appointments.delete"

	CapReportsView Capability = "reports.view"
)

func allCapabilities() []Capability {
	return []Capability{
		CapUsersCreate, CapUsersView, CapUsersUpdate, CapUsersDelete,
		CapOrganizationsCreate, CapOrganizationsView, CapOrganizationsUpdate, CapOrganizationsDelete,
		CapTeamsCreate, CapTeamsView, CapTeamsUpdate, CapTeamsDelete, CapTeamsManageMembers,
		CapLeadsCreate, CapLeadsView, CapLeadsAssign, CapLeadsAcceptDecline, CapLeadsUpdateStatus, CapLeadsDelete,
		CapAppointmentsCreate, CapAppointmentsView, CapAppointmentsUpdate, CapAppointmentsDelete,
		CapReportsView,
	}
}

// rolePermissions es la tabla rol → conjunto de capacidades, resuelta una vez
// al inicializar el paquete. Sustituye las consultas dinámicas por rol en
// tiempo de ejecución por variantes exhaustivas por rol.
var rolePermissions = buildPermissionTable()

func buildPermissionTable() map[string]map[Capability]struct{} {
	grants := map[string][]Capability{
		// Admin y Group Director: todas las capacidades (además del bypass en políticas).
		entity.RoleAdmin:         allCapabilities(),
		entity.RoleGroupDirector: allCapabilities(),

		// Partner Director: administra su organización, sus usuarios y equipos.
		entity.RolePartnerDirector: {
			CapOrganizationsView, CapOrganizationsUpdate,
			CapUsersCreate, CapUsersView, CapUsersUpdate,
			CapTeamsCreate, CapTeamsView, CapTeamsUpdate, CapTeamsDelete, CapTeamsManageMembers,
			CapLeadsView,
			CapAppointmentsView, CapAppointmentsCreate, CapAppointmentsUpdate, CapAppointmentsDelete,
			CapReportsView,
		},

		// Coordinator: recibe leads entrantes y los asigna.
		entity.RoleCoordinator: {
			CapLeadsView, CapLeadsAssign,
			CapTeamsView,
			CapAppointmentsView, CapAppointmentsCreate, CapAppointmentsUpdate,
		},

		// Sales Manager: gestiona un equipo de agentes y sus leads.
		entity.RoleSalesManager: {
			CapUsersCreate, CapUsersView,
			CapLeadsView, CapLeadsAssign, CapLeadsAcceptDecline, CapLeadsUpdateStatus,
			CapTeamsCreate, CapTeamsView, CapTeamsManageMembers,
			CapAppointmentsView, CapAppointmentsCreate, CapAppointmentsUpdate, CapAppointmentsDelete,
			CapReportsView,
		},

		// Sales Agent: trabaja los leads que le asignan.
		entity.RoleSalesAgent: {
			CapLeadsView, CapLeadsAcceptDecline, CapLeadsUpdateStatus,
			CapTeamsView,
			CapAppointmentsView, CapAppointmentsCreate, CapAppointmentsUpdate,
		},

		// Referral: crea leads y ve los suyos.
		entity.RoleReferral: {
			CapLeadsCreate, CapLeadsView,
		},
	}

	table := make(map[string]map[Capability]struct{}, len(grants))
	for role, caps := range grants {
		set := make(map[Capability]struct{}, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		table[role] = set
	}
	return table
}

// Can verifica si el rol del actor incluye la capacidad. Roles desconocidos
// no tienen ninguna capacidad.
func Can(actor *entity.User, cap Capability) bool {
	if actor == nil {
		return false
	}
	set, ok := rolePermissions[actor.Role]
	if !ok {
		return false
	}
	_, ok = set[cap]
	return ok
}

// isSuperRole indica si el actor salta todas las comprobaciones por entidad
// (se evalúa primero en cada política).
func isSuperRole(actor *entity.User) bool {
	return actor != nil && actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector)
}

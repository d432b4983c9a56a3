package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// ScopeKind clasifica el alcance de visibilidad de un actor.
type ScopeKind int

const (
	// ScopeAll: sin restricción (Admin, Group Director).
	ScopeAll ScopeKind = iota
	// ScopeOrganization: registros de la organización del actor.
	ScopeOrganization
	// ScopeOwn: solo registros donde el actor es participante directo
	// (asignado, referral o parte agendada).
	ScopeOwn
)

// Scope describe el subconjunto de registros que un actor puede ver.
// Se usa de forma idéntica para filtrar listados y para la comprobación
// de acceso a un registro individual.
type Scope struct {
	Kind           ScopeKind
	OrganizationID string
	// IncludeAssigned amplía un scope de organización con los registros donde
	// el actor es quien asignó o el asignado, aunque la organización del
	// registro haya cambiado después (unión, no scope puro de organización).
	IncludeAssigned bool
}

// ResolveScope calcula el alcance del actor a partir de rol + organización.
// Reglas en orden; la primera que aplica gana. Función pura.
func ResolveScope(actor *entity.User) Scope {
	switch {
	case actor == nil:
		return Scope{Kind: ScopeOwn}
	case actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector):
		return Scope{Kind: ScopeAll}
	case actor.Role == entity.RolePartnerDirector:
		return Scope{Kind: ScopeOrganization, OrganizationID: actor.OrganizationID}
	case actor.Role == entity.RoleSalesManager:
		// Los managers conservan visibilidad de los leads que asignaron
		// personalmente aunque el lead haya cambiado de organización.
		return Scope{Kind: ScopeOrganization, OrganizationID: actor.OrganizationID, IncludeAssigned: true}
	case actor.Role == entity.RoleCoordinator:
		return Scope{Kind: ScopeOrganization, OrganizationID: actor.OrganizationID}
	default:
		return Scope{Kind: ScopeOwn}
	}
}

// leadInScope evalúa si un lead cae dentro del alcance del actor.
func leadInScope(actor *entity.User, lead *entity.Lead) bool {
	scope := ResolveScope(actor)
	switch scope.Kind {
	case ScopeAll:
		return true
	case ScopeOrganization:
		if lead.OrganizationID != "" && lead.OrganizationID == scope.OrganizationID {
			return true
		}
		if scope.IncludeAssigned {
			return lead.AssignedToID == actor.ID || lead.AssignedByID == actor.ID
		}
		return false
	default:
		return lead.AssignedToID == actor.ID || lead.ReferralID == actor.ID
	}
}

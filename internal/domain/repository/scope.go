package repository

import "github.com/protecta/crm-pro/internal/domain/authz"

// ScopeFilter empaqueta el alcance resuelto del actor junto con su ID para
// que los adaptadores de persistencia traduzcan el scope a cláusulas SQL.
// El mismo valor sirve para listados y para las consultas del dashboard.
type ScopeFilter struct {
	Scope   authz.Scope
	ActorID string
}

// ScopeFor construye el filtro de alcance para un listado.
func ScopeFor(scope authz.Scope, actorID string) ScopeFilter {
	return ScopeFilter{Scope: scope, ActorID: actorID}
}

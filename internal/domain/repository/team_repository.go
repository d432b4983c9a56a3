package repository

import "github.com/protecta/crm-pro/internal/domain/entity"

// TeamFilters filtros de listado de equipos.
type TeamFilters struct {
	OrganizationID string
	Search         string
	Limit          int
	Offset         int
}

// TeamRepository define el puerto de persistencia para Team y su membresía.
type TeamRepository interface {
	Create(team *entity.Team) error
	// GetByID carga el equipo con MemberIDs poblado.
	GetByID(id string) (*entity.Team, error)
	Update(team *entity.Team) error
	Delete(id string) error
	List(scope ScopeFilter, f TeamFilters) ([]*entity.Team, error)
	// SlugExists verifica si el slug ya está en uso dentro de la organización,
	// excluyendo opcionalmente un equipo (para updates).
	SlugExists(organizationID, slug, excludeTeamID string) (bool, error)
	AddMember(teamID, userID string) error
	RemoveMember(teamID, userID string) error
	ListMembers(teamID string) ([]*entity.User, error)
	// ListForUser devuelve los equipos donde el usuario es miembro o creador.
	ListForUser(userID string) ([]*entity.Team, error)
}

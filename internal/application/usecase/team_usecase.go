package usecase

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"github.com/protecta/crm-pro/pkg/slug"
)

// TeamUseCase gestiona equipos y su membresía. El slug es único por
// organización, no global: ante colisión se sufija -2, -3, ...
type TeamUseCase struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamUseCase {
	return &TeamUseCase{teamRepo: teamRepo, userRepo: userRepo}
}

// Create registra un equipo en la organización del actor (o la indicada,
// si el actor tiene alcance global).
func (uc *TeamUseCase) Create(actor *entity.User, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if !authz.CanCreateTeam(actor) {
		return nil, domain.ErrAccessDenied
	}
	orgID := actor.OrganizationID
	if in.OrganizationID != "" && actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector) {
		orgID = in.OrganizationID
	}
	if orgID == "" {
		return nil, domain.NewValidationError("organization_id", "el equipo necesita una organización")
	}

	base := in.Slug
	if base == "" {
		base = slug.Make(in.Name)
	}
	unique, err := uc.uniqueSlug(orgID, base, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	team := &entity.Team{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Slug:           unique,
		CreatorID:      actor.ID,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.teamRepo.Create(team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

// uniqueSlug prueba base, base-2, base-3... hasta encontrar un slug libre
// dentro de la organización.
func (uc *TeamUseCase) uniqueSlug(orgID, base, excludeTeamID string) (string, error) {
	if base == "" {
		base = "equipo"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := uc.teamRepo.SlugExists(orgID, candidate, excludeTeamID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

// Get devuelve un equipo si el actor puede verlo.
func (uc *TeamUseCase) Get(actor *entity.User, teamID string) (*dto.TeamResponse, error) {
	team, err := uc.loadVisible(actor, teamID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (uc *TeamUseCase) loadVisible(actor *entity.User, teamID string) (*entity.Team, error) {
	team, err := uc.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewTeam(actor, team) {
		return nil, domain.ErrAccessDenied
	}
	return team, nil
}

// List devuelve los equipos visibles para el actor.
func (uc *TeamUseCase) List(actor *entity.User, f repository.TeamFilters) ([]*dto.TeamResponse, error) {
	if !authz.CanViewAnyTeams(actor) {
		return nil, domain.ErrAccessDenied
	}
	scope := repository.ScopeFor(authz.ResolveScope(actor), actor.ID)
	teams, err := uc.teamRepo.List(scope, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	return out, nil
}

// ListMine devuelve los equipos donde el actor es miembro o creador,
// sin pasar por el scope: la propia membresía siempre es visible.
func (uc *TeamUseCase) ListMine(actor *entity.User) ([]*dto.TeamResponse, error) {
	teams, err := uc.teamRepo.ListForUser(actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	return out, nil
}

// Update modifica nombre, descripción o slug. Cambiar el slug revalida
// unicidad dentro de la organización.
func (uc *TeamUseCase) Update(actor *entity.User, teamID string, in dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := uc.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanUpdateTeam(actor, team) {
		return nil, domain.ErrAccessDenied
	}
	if in.Name != nil {
		team.Name = *in.Name
	}
	if in.Description != nil {
		team.Description = *in.Description
	}
	if in.Slug != nil && *in.Slug != team.Slug {
		unique, err := uc.uniqueSlug(team.OrganizationID, *in.Slug, team.ID)
		if err != nil {
			return nil, err
		}
		team.Slug = unique
	}
	team.UpdatedAt = time.Now()
	if err := uc.teamRepo.Update(team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

// Delete elimina un equipo.
func (uc *TeamUseCase) Delete(actor *entity.User, teamID string) error {
	team, err := uc.teamRepo.GetByID(teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return domain.ErrNotFound
	}
	if !authz.CanDeleteTeam(actor, team) {
		return domain.ErrAccessDenied
	}
	return uc.teamRepo.Delete(teamID)
}

// AddMember agrega un usuario activo al equipo.
func (uc *TeamUseCase) AddMember(actor *entity.User, teamID, userID string) error {
	team, err := uc.teamRepo.GetByID(teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return domain.ErrNotFound
	}
	if !authz.CanManageTeamMembers(actor, team) {
		return domain.ErrAccessDenied
	}
	member, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if member == nil || !member.IsActive {
		return domain.ErrUserNotFound
	}
	// El miembro debe pertenecer a la organización del equipo o a la del
	// actor; Admin y Group Director pueden cruzar organizaciones.
	if !actor.HasRole(entity.RoleAdmin, entity.RoleGroupDirector) &&
		member.OrganizationID != team.OrganizationID &&
		member.OrganizationID != actor.OrganizationID {
		return domain.NewValidationError("user_id", "el usuario pertenece a otra organización")
	}
	if team.HasMember(userID) {
		return domain.ErrDuplicate
	}
	return uc.teamRepo.AddMember(teamID, userID)
}

// RemoveMember quita un usuario del equipo.
func (uc *TeamUseCase) RemoveMember(actor *entity.User, teamID, userID string) error {
	team, err := uc.teamRepo.GetByID(teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return domain.ErrNotFound
	}
	if !authz.CanManageTeamMembers(actor, team) {
		return domain.ErrAccessDenied
	}
	if !team.HasMember(userID) {
		return domain.ErrNotFound
	}
	return uc.teamRepo.RemoveMember(teamID, userID)
}

// ListMembers devuelve los miembros de un equipo visible para el actor.
func (uc *TeamUseCase) ListMembers(actor *entity.User, teamID string) ([]*dto.UserResponse, error) {
	if _, err := uc.loadVisible(actor, teamID); err != nil {
		return nil, err
	}
	members, err := uc.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toUserResponse(m))
	}
	return out, nil
}

func toTeamResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Slug:           t.Slug,
		CreatorID:      t.CreatorID,
		OrganizationID: t.OrganizationID,
		MemberCount:    len(t.MemberIDs),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

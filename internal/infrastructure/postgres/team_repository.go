package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación de TeamRepository sobre PostgreSQL. La membresía
// vive en la tabla puente team_members.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador de equipos.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

const teamColumns = `
	id, name, COALESCE(description, ''), slug, creator_id, organization_id, created_at, updated_at`

// Create persiste un equipo nuevo.
func (r *TeamRepo) Create(team *entity.Team) error {
	query := `
		INSERT INTO teams (id, name, description, slug, creator_id, organization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		team.ID, team.Name, team.Description, team.Slug, team.CreatorID,
		team.OrganizationID, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo con MemberIDs poblado; nil si no existe.
func (r *TeamRepo) GetByID(id string) (*entity.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE id = $1`
	team, err := scanTeam(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	memberRows, err := r.q.Query(context.Background(),
		`SELECT user_id FROM team_members WHERE team_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("load team members: %w", err)
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var userID string
		if err := memberRows.Scan(&userID); err != nil {
			return nil, err
		}
		team.MemberIDs = append(team.MemberIDs, userID)
	}
	return team, memberRows.Err()
}

// Update persiste los campos mutables del equipo.
func (r *TeamRepo) Update(team *entity.Team) error {
	query := `
		UPDATE teams SET name = $2, description = $3, slug = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		team.ID, team.Name, team.Description, team.Slug, team.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// Delete elimina un equipo; la membresía cae por FK ON DELETE CASCADE.
func (r *TeamRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// List devuelve equipos dentro del scope del actor, con filtros opcionales.
func (r *TeamRepo) List(scope repository.ScopeFilter, f repository.TeamFilters) ([]*entity.Team, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch scope.Scope.Kind {
	case authz.ScopeAll:
		conds = append(conds, "TRUE")
	case authz.ScopeOrganization:
		conds = append(conds, "organization_id = "+arg(scope.Scope.OrganizationID))
	default:
		p := arg(scope.ActorID)
		conds = append(conds, "(creator_id = "+p+
			" OR id IN (SELECT team_id FROM team_members WHERE user_id = "+p+"))")
	}
	if f.OrganizationID != "" {
		conds = append(conds, "organization_id = "+arg(f.OrganizationID))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, "(name ILIKE "+p+" OR slug ILIKE "+p+")")
	}

	query := `SELECT` + teamColumns + ` FROM teams WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY name` + limitOffset(f.Limit, f.Offset, &args)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []*entity.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SlugExists verifica si el slug ya está en uso dentro de la organización.
func (r *TeamRepo) SlugExists(organizationID, slug, excludeTeamID string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM teams
		WHERE organization_id = $1 AND slug = $2 AND ($3 = '' OR id <> $3))`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, organizationID, slug, excludeTeamID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check team slug: %w", err)
	}
	return exists, nil
}

// AddMember agrega un usuario al equipo.
func (r *TeamRepo) AddMember(teamID, userID string) error {
	query := `INSERT INTO team_members (team_id, user_id, created_at) VALUES ($1, $2, now())`
	_, err := r.q.Exec(context.Background(), query, teamID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

// RemoveMember quita un usuario del equipo.
func (r *TeamRepo) RemoveMember(teamID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	return nil
}

// ListMembers devuelve los usuarios miembros del equipo.
func (r *TeamRepo) ListMembers(teamID string) ([]*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users
		WHERE id IN (SELECT user_id FROM team_members WHERE team_id = $1)
		ORDER BY last_name, first_name`
	rows, err := r.q.Query(context.Background(), query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListForUser devuelve los equipos donde el usuario es miembro o creador.
func (r *TeamRepo) ListForUser(userID string) ([]*entity.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams
		WHERE creator_id = $1
		   OR id IN (SELECT team_id FROM team_members WHERE user_id = $1)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams for user: %w", err)
	}
	defer rows.Close()

	var out []*entity.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTeam(row pgx.Row) (*entity.Team, error) {
	var t entity.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Slug, &t.CreatorID,
		&t.OrganizationID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const organizationColumns = `
	id, name, COALESCE(parent_id, ''), COALESCE(director_id, ''), is_active, created_at, updated_at`

// Create persiste una organización nueva.
func (r *OrganizationRepo) Create(org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, parent_id, director_id, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.ParentID, org.DirectorID, org.IsActive, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID; nil si no existe.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	query := `SELECT` + organizationColumns + ` FROM organizations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetRoot obtiene la organización raíz del grupo (sin padre); nil si no hay.
func (r *OrganizationRepo) GetRoot() (*entity.Organization, error) {
	query := `SELECT` + organizationColumns + ` FROM organizations
		WHERE parent_id IS NULL ORDER BY created_at LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query))
}

// Update persiste los campos mutables de la organización.
func (r *OrganizationRepo) Update(org *entity.Organization) error {
	query := `
		UPDATE organizations SET
			name = $2, parent_id = NULLIF($3, ''), director_id = NULLIF($4, ''),
			is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.ParentID, org.DirectorID, org.IsActive, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

// Delete elimina una organización.
func (r *OrganizationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

// List devuelve organizaciones dentro del scope del actor. Con scope de
// organización se incluyen también las hijas directas.
func (r *OrganizationRepo) List(scope repository.ScopeFilter, limit, offset int) ([]*entity.Organization, error) {
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
		p := arg(scope.Scope.OrganizationID)
		conds = append(conds, "(id = "+p+" OR parent_id = "+p+")")
	default:
		p := arg(scope.ActorID)
		conds = append(conds, "id IN (SELECT organization_id FROM users WHERE id = "+p+")")
	}

	query := `SELECT` + organizationColumns + ` FROM organizations
		WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY name` + limitOffset(limit, offset, &args)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetTree devuelve todas las organizaciones como mapa plano id → org, para
// recorrer la cadena de padres sin armar un grafo de punteros.
func (r *OrganizationRepo) GetTree() (map[string]*entity.Organization, error) {
	query := `SELECT` + organizationColumns + ` FROM organizations`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("load organization tree: %w", err)
	}
	defer rows.Close()

	tree := map[string]*entity.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		tree[o.ID] = o
	}
	return tree, rows.Err()
}

func (r *OrganizationRepo) scanOne(row pgx.Row) (*entity.Organization, error) {
	o, err := scanOrganization(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(&o.ID, &o.Name, &o.ParentID, &o.DirectorID, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

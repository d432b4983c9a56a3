package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación de LeadRepository sobre PostgreSQL (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador de leads. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadColumns = `
	id, referral_id, COALESCE(organization_id, ''), client_first_name, client_last_name,
	COALESCE(client_email, ''), COALESCE(client_phone, ''), COALESCE(client_company, ''),
	status, COALESCE(assigned_to, ''), COALESCE(assigned_by, ''), COALESCE(source, ''),
	revenue, created_at, updated_at`

// Create persiste un lead nuevo.
func (r *LeadRepo) Create(lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, referral_id, organization_id, client_first_name, client_last_name,
			client_email, client_phone, client_company, status, assigned_to, assigned_by,
			source, revenue, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		lead.ID, lead.ReferralID, lead.OrganizationID, lead.ClientFirstName, lead.ClientLastName,
		lead.ClientEmail, lead.ClientPhone, lead.ClientCompany, lead.Status, lead.AssignedToID,
		lead.AssignedByID, lead.Source, lead.Revenue, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID; nil si no existe.
func (r *LeadRepo) GetByID(id string) (*entity.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un lead bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *LeadRepo) GetForUpdate(id string) (*entity.Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste todos los campos mutables del lead.
func (r *LeadRepo) Update(lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			organization_id = NULLIF($2, ''), client_first_name = $3, client_last_name = $4,
			client_email = $5, client_phone = $6, client_company = $7, status = $8,
			assigned_to = NULLIF($9, ''), assigned_by = NULLIF($10, ''), source = $11,
			revenue = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lead.ID, lead.OrganizationID, lead.ClientFirstName, lead.ClientLastName,
		lead.ClientEmail, lead.ClientPhone, lead.ClientCompany, lead.Status,
		lead.AssignedToID, lead.AssignedByID, lead.Source, lead.Revenue, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// Delete elimina un lead; las citas caen por FK ON DELETE CASCADE.
func (r *LeadRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

// List devuelve leads dentro del scope del actor, con filtros opcionales.
func (r *LeadRepo) List(scope repository.ScopeFilter, f repository.LeadFilters) ([]*entity.Lead, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	conds = append(conds, leadScopeCondition(scope, "", arg))
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.AssignedToID != "" {
		conds = append(conds, "assigned_to = "+arg(f.AssignedToID))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, "(client_first_name ILIKE "+p+
			" OR client_last_name ILIKE "+p+
			" OR client_email ILIKE "+p+
			" OR client_company ILIKE "+p+")")
	}

	query := `SELECT` + leadColumns + ` FROM leads WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC` + limitOffset(f.Limit, f.Offset, &args)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// leadScopeCondition traduce el scope del actor a SQL sobre la tabla leads.
// alias califica las columnas en consultas con JOIN ("l." por ejemplo);
// vacío para consultas sin alias.
func leadScopeCondition(scope repository.ScopeFilter, alias string, arg func(any) string) string {
	switch scope.Scope.Kind {
	case authz.ScopeAll:
		return "TRUE"
	case authz.ScopeOrganization:
		cond := alias + "organization_id = " + arg(scope.Scope.OrganizationID)
		if scope.Scope.IncludeAssigned {
			p := arg(scope.ActorID)
			cond = "(" + cond + " OR " + alias + "assigned_to = " + p + " OR " + alias + "assigned_by = " + p + ")"
		}
		return cond
	default:
		p := arg(scope.ActorID)
		return "(" + alias + "assigned_to = " + p + " OR " + alias + "referral_id = " + p + ")"
	}
}

func (r *LeadRepo) scanOne(row pgx.Row) (*entity.Lead, error) {
	l, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.ReferralID, &l.OrganizationID, &l.ClientFirstName, &l.ClientLastName,
		&l.ClientEmail, &l.ClientPhone, &l.ClientCompany, &l.Status, &l.AssignedToID,
		&l.AssignedByID, &l.Source, &l.Revenue, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

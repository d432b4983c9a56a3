package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL (usable con pool o tx).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador de citas. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `
	id, lead_id, scheduled_by, COALESCE(scheduled_with, ''), scheduled_at, duration,
	COALESCE(location, ''), COALESCE(notes, ''), status, created_at, updated_at`

// appointmentColumnsAliased igual que appointmentColumns pero calificadas con
// el alias "a" para las consultas con JOIN a leads.
const appointmentColumnsAliased = `
	a.id, a.lead_id, a.scheduled_by, COALESCE(a.scheduled_with, ''), a.scheduled_at, a.duration,
	COALESCE(a.location, ''), COALESCE(a.notes, ''), a.status, a.created_at, a.updated_at`

// Create persiste una cita nueva.
func (r *AppointmentRepo) Create(appt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, lead_id, scheduled_by, scheduled_with, scheduled_at,
			duration, location, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		appt.ID, appt.LeadID, appt.ScheduledBy, appt.ScheduledWith, appt.ScheduledAt,
		appt.Duration, appt.Location, appt.Notes, appt.Status, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID; nil si no existe.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE id = $1`
	a, err := scanAppointment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// Update persiste los campos mutables de la cita.
func (r *AppointmentRepo) Update(appt *entity.Appointment) error {
	query := `
		UPDATE appointments SET
			scheduled_with = NULLIF($2, ''), scheduled_at = $3, duration = $4,
			location = $5, notes = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		appt.ID, appt.ScheduledWith, appt.ScheduledAt, appt.Duration,
		appt.Location, appt.Notes, appt.Status, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// Delete elimina una cita.
func (r *AppointmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// List devuelve citas cuyos leads caen dentro del scope del actor.
func (r *AppointmentRepo) List(scope repository.ScopeFilter, f repository.AppointmentFilters) ([]*entity.Appointment, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	conds = append(conds, appointmentScopeCondition(scope, arg))
	appendAppointmentFilters(&conds, arg, f)

	query := `SELECT` + appointmentColumnsAliased + ` FROM appointments a
		JOIN leads l ON l.id = a.lead_id
		WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY a.scheduled_at` + limitOffset(f.Limit, f.Offset, &args)

	return r.queryMany(query, args)
}

// appointmentScopeCondition traduce el scope del actor a SQL. Las citas se
// filtran por su lead (organización) o por participación directa del actor.
func appointmentScopeCondition(scope repository.ScopeFilter, arg func(any) string) string {
	switch scope.Scope.Kind {
	case authz.ScopeAll:
		return "TRUE"
	case authz.ScopeOrganization:
		cond := "l.organization_id = " + arg(scope.Scope.OrganizationID)
		if scope.Scope.IncludeAssigned {
			p := arg(scope.ActorID)
			cond = "(" + cond + " OR l.assigned_to = " + p + " OR l.assigned_by = " + p + ")"
		}
		return cond
	default:
		p := arg(scope.ActorID)
		return "(a.scheduled_by = " + p + " OR a.scheduled_with = " + p +
			" OR l.assigned_to = " + p + " OR l.referral_id = " + p + ")"
	}
}

func appendAppointmentFilters(conds *[]string, arg func(any) string, f repository.AppointmentFilters) {
	if f.Status != "" {
		*conds = append(*conds, "a.status = "+arg(f.Status))
	}
	if f.LeadID != "" {
		*conds = append(*conds, "a.lead_id = "+arg(f.LeadID))
	}
	if f.ScheduledBy != "" {
		*conds = append(*conds, "a.scheduled_by = "+arg(f.ScheduledBy))
	}
	if f.ScheduledWith != "" {
		*conds = append(*conds, "a.scheduled_with = "+arg(f.ScheduledWith))
	}
	if !f.From.IsZero() {
		*conds = append(*conds, "a.scheduled_at >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		*conds = append(*conds, "a.scheduled_at < "+arg(f.To))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		*conds = append(*conds, "(a.location ILIKE "+p+" OR a.notes ILIKE "+p+")")
	}
}

// ListForUser devuelve citas donde el usuario agenda o es agendado.
func (r *AppointmentRepo) ListForUser(userID string, f repository.AppointmentFilters) ([]*entity.Appointment, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	p := arg(userID)
	conds = append(conds, "(a.scheduled_by = "+p+" OR a.scheduled_with = "+p+")")
	appendAppointmentFilters(&conds, arg, f)

	query := `SELECT` + appointmentColumnsAliased + ` FROM appointments a
		WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY a.scheduled_at` + limitOffset(f.Limit, f.Offset, &args)

	return r.queryMany(query, args)
}

// ListUpcoming devuelve citas no terminales del usuario en los próximos días.
func (r *AppointmentRepo) ListUpcoming(userID string, days int) ([]*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments
		WHERE (scheduled_by = $1 OR scheduled_with = $1)
		  AND status NOT IN ($2, $3)
		  AND scheduled_at >= now()
		  AND scheduled_at < now() + ($4 * INTERVAL '1 day')
		ORDER BY scheduled_at`
	args := []any{userID, entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted, days}
	return r.queryMany(query, args)
}

// ListByLead devuelve todas las citas de un lead.
func (r *AppointmentRepo) ListByLead(leadID string) ([]*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE lead_id = $1 ORDER BY scheduled_at`
	return r.queryMany(query, []any{leadID})
}

// FindConflictsForUpdate devuelve las citas no terminales del usuario que se
// solapan con el intervalo candidato [scheduledAt, scheduledAt + duration).
// Usar dentro de una transacción: toma un advisory lock por usuario antes de
// consultar, de modo que dos agendamientos concurrentes del mismo
// participante se serializan aunque el calendario esté vacío (FOR UPDATE
// solo bloquearía filas ya existentes, no inserciones fantasma).
func (r *AppointmentRepo) FindConflictsForUpdate(userID string, scheduledAt time.Time, durationMinutes int, excludeID string) ([]*entity.Appointment, error) {
	if _, err := r.q.Exec(context.Background(), `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return nil, fmt.Errorf("advisory lock user %s: %w", userID, err)
	}
	query := `SELECT` + appointmentColumns + ` FROM appointments
		WHERE (scheduled_by = $1 OR scheduled_with = $1)
		  AND status NOT IN ($2, $3)
		  AND id <> COALESCE(NULLIF($4, ''), '00000000-0000-0000-0000-000000000000')
		  AND scheduled_at < $5 + ($6 * INTERVAL '1 minute')
		  AND scheduled_at + (duration * INTERVAL '1 minute') > $5`
	args := []any{
		userID, entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted,
		excludeID, scheduledAt, durationMinutes,
	}
	return r.queryMany(query, args)
}

func (r *AppointmentRepo) queryMany(query string, args []any) ([]*entity.Appointment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.LeadID, &a.ScheduledBy, &a.ScheduledWith, &a.ScheduledAt, &a.Duration,
		&a.Location, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

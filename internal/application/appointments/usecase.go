package appointments

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/authz"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
	"github.com/protecta/crm-pro/internal/domain/scheduling"
)

// AppointmentUseCase agenda, consulta y muta citas sobre leads.
// Toda escritura que cambie el intervalo pasa por validación de horario y
// detección de conflictos para ambos participantes dentro de una transacción.
type AppointmentUseCase struct {
	txRunner TxRunner
	apptRepo repository.AppointmentRepository
	leadRepo repository.LeadRepository
	now      func() time.Time
}

// NewAppointmentUseCase construye el caso de uso. now permite inyectar el
// reloj en tests; con nil usa time.Now.
func NewAppointmentUseCase(txRunner TxRunner, apptRepo repository.AppointmentRepository, leadRepo repository.LeadRepository, now func() time.Time) *AppointmentUseCase {
	if now == nil {
		now = time.Now
	}
	return &AppointmentUseCase{txRunner: txRunner, apptRepo: apptRepo, leadRepo: leadRepo, now: now}
}

// ScheduleInput entrada para agendar una cita.
type ScheduleInput struct {
	LeadID        string
	ScheduledWith string
	ScheduledAt   time.Time
	Duration      int
	Location      string
	Notes         string
}

// Schedule crea una cita: valida horario y duración, y dentro de una
// transacción busca solapamientos (con bloqueo de filas) para quien agenda
// y para el agendado; cualquier conflicto aborta la operación completa.
func (uc *AppointmentUseCase) Schedule(ctx context.Context, actor *entity.User, in ScheduleInput) (*entity.Appointment, error) {
	if !authz.CanCreateAppointment(actor) {
		return nil, domain.ErrAccessDenied
	}
	lead, err := uc.leadRepo.GetByID(in.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewLead(actor, lead) {
		return nil, domain.ErrAccessDenied
	}
	if err := scheduling.ValidateDuration(in.Duration); err != nil {
		return nil, err
	}
	if err := scheduling.ValidateTiming(in.ScheduledAt, uc.now()); err != nil {
		return nil, err
	}

	now := uc.now()
	appt := &entity.Appointment{
		ID:            uuid.New().String(),
		LeadID:        lead.ID,
		ScheduledBy:   actor.ID,
		ScheduledWith: in.ScheduledWith,
		ScheduledAt:   in.ScheduledAt,
		Duration:      in.Duration,
		Location:      in.Location,
		Notes:         in.Notes,
		Status:        entity.AppointmentStatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunAppointments(ctx, func(apptRepo repository.AppointmentRepository) error {
		if err := uc.checkConflicts(apptRepo, appt, ""); err != nil {
			return err
		}
		return apptRepo.Create(appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// checkConflicts busca solapamientos para ambos participantes (si son
// distintos) usando los repos de la transacción. Los IDs de todas las citas
// en conflicto viajan en el ConflictError. Los participantes se recorren en
// orden lexicográfico: el repo toma un lock por usuario y el orden fijo
// evita interbloqueos entre agendamientos cruzados.
func (uc *AppointmentUseCase) checkConflicts(apptRepo repository.AppointmentRepository, appt *entity.Appointment, excludeID string) error {
	participants := []string{appt.ScheduledBy}
	if appt.ScheduledWith != "" && appt.ScheduledWith != appt.ScheduledBy {
		participants = append(participants, appt.ScheduledWith)
	}
	sort.Strings(participants)
	var conflictIDs []string
	seen := map[string]struct{}{}
	for _, userID := range participants {
		overlapping, err := apptRepo.FindConflictsForUpdate(userID, appt.ScheduledAt, appt.Duration, excludeID)
		if err != nil {
			return err
		}
		ids := scheduling.FindConflicts(overlapping, userID, appt.ScheduledAt, appt.Duration, excludeID)
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			conflictIDs = append(conflictIDs, id)
		}
	}
	if len(conflictIDs) > 0 {
		return &domain.ConflictError{AppointmentIDs: conflictIDs}
	}
	return nil
}

// getAuthorized carga cita + lead y verifica visibilidad del actor.
func (uc *AppointmentUseCase) getAuthorized(actor *entity.User, apptID string) (*entity.Appointment, *entity.Lead, error) {
	appt, err := uc.apptRepo.GetByID(apptID)
	if err != nil {
		return nil, nil, err
	}
	if appt == nil {
		return nil, nil, domain.ErrNotFound
	}
	lead, err := uc.leadRepo.GetByID(appt.LeadID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanViewAppointment(actor, appt, lead) {
		return nil, nil, domain.ErrAccessDenied
	}
	return appt, lead, nil
}

// Get devuelve una cita si el actor puede verla.
func (uc *AppointmentUseCase) Get(actor *entity.User, apptID string) (*entity.Appointment, error) {
	appt, _, err := uc.getAuthorized(actor, apptID)
	return appt, err
}

// List devuelve las citas visibles para el actor según su scope.
func (uc *AppointmentUseCase) List(actor *entity.User, f repository.AppointmentFilters) ([]*entity.Appointment, error) {
	if !authz.CanViewAnyAppointments(actor) {
		return nil, domain.ErrAccessDenied
	}
	scope := repository.ScopeFor(authz.ResolveScope(actor), actor.ID)
	return uc.apptRepo.List(scope, f)
}

// ListByLead devuelve las citas de un lead visible para el actor.
func (uc *AppointmentUseCase) ListByLead(actor *entity.User, leadID string) ([]*entity.Appointment, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewLead(actor, lead) {
		return nil, domain.ErrAccessDenied
	}
	return uc.apptRepo.ListByLead(leadID)
}

// UpdateInput entrada para actualizar una cita. Campos nil = sin cambio.
type UpdateInput struct {
	ScheduledWith *string
	ScheduledAt   *time.Time
	Duration      *int
	Location      *string
	Notes         *string
}

// Update modifica una cita. Si cambia el intervalo o el participante, se
// revalida horario y conflictos en transacción.
func (uc *AppointmentUseCase) Update(ctx context.Context, actor *entity.User, apptID string, in UpdateInput) (*entity.Appointment, error) {
	appt, lead, err := uc.getAuthorized(actor, apptID)
	if err != nil {
		return nil, err
	}
	if !authz.CanUpdateAppointment(actor, appt, lead) {
		return nil, domain.ErrAccessDenied
	}
	if appt.IsTerminal() {
		return nil, domain.NewValidationError("status", "una cita cancelada o completada no puede modificarse")
	}

	intervalChanged := false
	if in.ScheduledWith != nil && *in.ScheduledWith != appt.ScheduledWith {
		appt.ScheduledWith = *in.ScheduledWith
		intervalChanged = true
	}
	if in.ScheduledAt != nil && !in.ScheduledAt.Equal(appt.ScheduledAt) {
		appt.ScheduledAt = *in.ScheduledAt
		intervalChanged = true
	}
	if in.Duration != nil && *in.Duration != appt.Duration {
		appt.Duration = *in.Duration
		intervalChanged = true
	}
	if in.Location != nil {
		appt.Location = *in.Location
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	appt.UpdatedAt = uc.now()

	if !intervalChanged {
		if err := uc.apptRepo.Update(appt); err != nil {
			return nil, err
		}
		return appt, nil
	}

	if err := scheduling.ValidateDuration(appt.Duration); err != nil {
		return nil, err
	}
	if err := scheduling.ValidateTiming(appt.ScheduledAt, uc.now()); err != nil {
		return nil, err
	}
	err = uc.txRunner.RunAppointments(ctx, func(apptRepo repository.AppointmentRepository) error {
		if err := uc.checkConflicts(apptRepo, appt, appt.ID); err != nil {
			return err
		}
		return apptRepo.Update(appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Reschedule mueve la cita a otro horario y la devuelve a scheduled.
func (uc *AppointmentUseCase) Reschedule(ctx context.Context, actor *entity.User, apptID string, scheduledAt time.Time, notes string) (*entity.Appointment, error) {
	appt, lead, err := uc.getAuthorized(actor, apptID)
	if err != nil {
		return nil, err
	}
	if !authz.CanUpdateAppointment(actor, appt, lead) {
		return nil, domain.ErrAccessDenied
	}
	if appt.IsTerminal() {
		return nil, domain.NewValidationError("status", "una cita cancelada o completada no puede reagendarse")
	}
	if err := scheduling.ValidateTiming(scheduledAt, uc.now()); err != nil {
		return nil, err
	}

	appt.ScheduledAt = scheduledAt
	appt.Status = entity.AppointmentStatusScheduled
	if notes != "" {
		appt.Notes = notes
	}
	appt.UpdatedAt = uc.now()

	err = uc.txRunner.RunAppointments(ctx, func(apptRepo repository.AppointmentRepository) error {
		if err := uc.checkConflicts(apptRepo, appt, appt.ID); err != nil {
			return err
		}
		return apptRepo.Update(appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marca la cita como cancelada (estado terminal, libera agenda).
func (uc *AppointmentUseCase) Cancel(actor *entity.User, apptID, notes string) (*entity.Appointment, error) {
	appt, lead, err := uc.getAuthorized(actor, apptID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCancelAppointment(actor, appt, lead) {
		return nil, domain.ErrAccessDenied
	}
	return uc.setStatus(appt, entity.AppointmentStatusCancelled, notes)
}

// Confirm marca la cita como confirmada.
func (uc *AppointmentUseCase) Confirm(actor *entity.User, apptID string) (*entity.Appointment, error) {
	return uc.UpdateStatus(actor, apptID, entity.AppointmentStatusConfirmed, "")
}

// Complete marca la cita como completada (estado terminal).
func (uc *AppointmentUseCase) Complete(actor *entity.User, apptID, notes string) (*entity.Appointment, error) {
	return uc.UpdateStatus(actor, apptID, entity.AppointmentStatusCompleted, notes)
}

// NoShow marca que el cliente no se presentó.
func (uc *AppointmentUseCase) NoShow(actor *entity.User, apptID, notes string) (*entity.Appointment, error) {
	return uc.UpdateStatus(actor, apptID, entity.AppointmentStatusNoShow, notes)
}

// UpdateStatus cambia el estado de la cita a cualquier valor del enum.
// Sin grafo estricto: la autorización decide quién, no hacia dónde.
func (uc *AppointmentUseCase) UpdateStatus(actor *entity.User, apptID, status, notes string) (*entity.Appointment, error) {
	if !entity.IsValidAppointmentStatus(status) {
		return nil, domain.NewValidationError("status", "estado de cita desconocido: "+status)
	}
	appt, lead, err := uc.getAuthorized(actor, apptID)
	if err != nil {
		return nil, err
	}
	if !authz.CanUpdateAppointment(actor, appt, lead) {
		return nil, domain.ErrAccessDenied
	}
	return uc.setStatus(appt, status, notes)
}

func (uc *AppointmentUseCase) setStatus(appt *entity.Appointment, status, notes string) (*entity.Appointment, error) {
	appt.Status = status
	if notes != "" {
		appt.Notes = notes
	}
	appt.UpdatedAt = uc.now()
	if err := uc.apptRepo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Delete elimina una cita.
func (uc *AppointmentUseCase) Delete(actor *entity.User, apptID string) error {
	appt, lead, err := uc.getAuthorized(actor, apptID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteAppointment(actor, appt, lead) {
		return domain.ErrAccessDenied
	}
	return uc.apptRepo.Delete(apptID)
}

// ListUpcoming devuelve las citas no terminales del actor en los próximos días.
func (uc *AppointmentUseCase) ListUpcoming(actor *entity.User, days int) ([]*entity.Appointment, error) {
	if days <= 0 {
		days = 7
	}
	return uc.apptRepo.ListUpcoming(actor.ID, days)
}

// DailySchedule devuelve la agenda del actor para un día.
func (uc *AppointmentUseCase) DailySchedule(actor *entity.User, day time.Time) ([]*entity.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return uc.apptRepo.ListForUser(actor.ID, repository.AppointmentFilters{
		From: start,
		To:   start.AddDate(0, 0, 1),
	})
}

// WeeklySchedule devuelve la agenda del actor para la semana (lunes a domingo)
// que contiene el día dado.
func (uc *AppointmentUseCase) WeeklySchedule(actor *entity.User, day time.Time) ([]*entity.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	offset := (int(start.Weekday()) + 6) % 7 // lunes = 0
	start = start.AddDate(0, 0, -offset)
	return uc.apptRepo.ListForUser(actor.ID, repository.AppointmentFilters{
		From: start,
		To:   start.AddDate(0, 0, 7),
	})
}

// Statistics conteos de citas del actor por estado, más próximas y vencidas.
type Statistics struct {
	Total     int
	Scheduled int
	Confirmed int
	Completed int
	Cancelled int
	NoShow    int
	Upcoming  int
	Overdue   int
}

// GetStatistics calcula los conteos sobre todas las citas del actor.
func (uc *AppointmentUseCase) GetStatistics(actor *entity.User) (*Statistics, error) {
	appts, err := uc.apptRepo.ListForUser(actor.ID, repository.AppointmentFilters{})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	stats := &Statistics{Total: len(appts)}
	for _, a := range appts {
		switch a.Status {
		case entity.AppointmentStatusScheduled:
			stats.Scheduled++
		case entity.AppointmentStatusConfirmed:
			stats.Confirmed++
		case entity.AppointmentStatusCompleted:
			stats.Completed++
		case entity.AppointmentStatusCancelled:
			stats.Cancelled++
		case entity.AppointmentStatusNoShow:
			stats.NoShow++
		}
		if a.IsTerminal() {
			continue
		}
		if a.ScheduledAt.After(now) {
			stats.Upcoming++
		} else if a.EndsAt().Before(now) {
			stats.Overdue++
		}
	}
	return stats, nil
}

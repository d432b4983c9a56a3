package entity

import "time"

// Estados de una cita. cancelled y completed son terminales:
// quedan fuera de la detección de conflictos de agenda.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusNoShow    = "no_show"
)

// Límites de duración de una cita, en minutos.
const (
	AppointmentMinDuration = 15
	AppointmentMaxDuration = 480
)

// AppointmentStatuses devuelve todos los estados válidos de una cita.
func AppointmentStatuses() []string {
	return []string{
		AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted, AppointmentStatusNoShow,
	}
}

// IsValidAppointmentStatus verifica pertenencia al enum de estados.
func IsValidAppointmentStatus(status string) bool {
	for _, s := range AppointmentStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment representa una cita sobre un Lead. ScheduledWith es opcional
// (segundo participante). Duration en minutos.
type Appointment struct {
	ID            string
	LeadID        string
	ScheduledBy   string
	ScheduledWith string
	ScheduledAt   time.Time
	Duration      int
	Location      string
	Notes         string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTerminal indica si la cita ya no bloquea agenda (cancelada o completada).
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}

// EndsAt devuelve el fin del intervalo semiabierto [ScheduledAt, ScheduledAt+Duration).
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.Duration) * time.Minute)
}

// Involves indica si el usuario participa en la cita (agenda o es agendado).
func (a *Appointment) Involves(userID string) bool {
	return a.ScheduledBy == userID || (a.ScheduledWith != "" && a.ScheduledWith == userID)
}

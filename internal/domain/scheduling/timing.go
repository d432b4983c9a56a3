// Package scheduling contiene las reglas puras de agenda: validación de
// horario de una cita y detección de solapamientos sobre intervalos
// semiabiertos. Sin acceso a persistencia; el caller trae los datos.
package scheduling

import (
	"time"

	"github.com/protecta/crm-pro/internal/domain"
	"github.com/protecta/crm-pro/internal/domain/entity"
)

// Ventana de negocio para citas.
const (
	maxMonthsAhead    = 6
	businessHourStart = 8  // 08:00 local
	businessHourEnd   = 18 // a partir de las 19:00 se rechaza
)

// ValidateTiming valida la fecha/hora de una cita contra el reloj `now`:
// no en el pasado, no a más de 6 meses, dentro de horario laboral y nunca
// en fin de semana. Devuelve un *domain.ValidationError en el primer
// incumplimiento.
func ValidateTiming(scheduledAt, now time.Time) error {
	if !scheduledAt.After(now) {
		return domain.NewValidationError("scheduled_at", "la cita no puede agendarse en el pasado")
	}
	if scheduledAt.After(now.AddDate(0, maxMonthsAhead, 0)) {
		return domain.NewValidationError("scheduled_at", "la cita no puede agendarse con más de 6 meses de antelación")
	}
	hour := scheduledAt.Hour()
	if hour < businessHourStart || hour > businessHourEnd {
		return domain.NewValidationError("scheduled_at", "las citas solo pueden agendarse entre las 8:00 y las 18:00")
	}
	switch scheduledAt.Weekday() {
	case time.Saturday, time.Sunday:
		return domain.NewValidationError("scheduled_at", "las citas no pueden agendarse en fin de semana")
	}
	return nil
}

// ValidateDuration valida los límites de duración en minutos.
func ValidateDuration(minutes int) error {
	if minutes < entity.AppointmentMinDuration || minutes > entity.AppointmentMaxDuration {
		return domain.NewValidationError("duration", "la duración debe estar entre 15 y 480 minutos")
	}
	return nil
}

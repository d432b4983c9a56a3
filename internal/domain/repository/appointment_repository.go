package repository

import (
	"time"

	"github.com/protecta/crm-pro/internal/domain/entity"
)

// AppointmentFilters filtros de listado de citas.
type AppointmentFilters struct {
	Status        string
	LeadID        string
	ScheduledBy   string
	ScheduledWith string
	From          time.Time
	To            time.Time
	Search        string
	Limit         int
	Offset        int
}

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Create(appt *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	Update(appt *entity.Appointment) error
	Delete(id string) error
	List(scope ScopeFilter, f AppointmentFilters) ([]*entity.Appointment, error)
	// ListForUser devuelve citas donde el usuario agenda o es agendado.
	ListForUser(userID string, f AppointmentFilters) ([]*entity.Appointment, error)
	// ListUpcoming devuelve citas no terminales del usuario en los próximos días.
	ListUpcoming(userID string, days int) ([]*entity.Appointment, error)
	ListByLead(leadID string) ([]*entity.Appointment, error)
	// FindConflictsForUpdate devuelve las citas no terminales del usuario que
	// se solapan con el intervalo candidato, serializando agendamientos
	// concurrentes del mismo usuario (lock por usuario a nivel de
	// transacción) para que dos llamadas no pasen ambas el chequeo contra
	// datos obsoletos. Usar dentro de una transacción.
	FindConflictsForUpdate(userID string, scheduledAt time.Time, durationMinutes int, excludeID string) ([]*entity.Appointment, error)
}

package appointments

import (
	"context"

	"github.com/protecta/crm-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El chequeo de conflictos y la escritura de
// la cita deben ocurrir en la misma transacción: dos agendamientos
// concurrentes no pueden pasar ambos el chequeo contra datos obsoletos.
type TxRunner interface {
	RunAppointments(ctx context.Context, fn func(
		apptRepo repository.AppointmentRepository,
	) error) error
}

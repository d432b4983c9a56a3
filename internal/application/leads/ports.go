package leads

import (
	"context"

	"github.com/protecta/crm-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que asignación y cambio de
// organización del lead se persistan de forma atómica.
type TxRunner interface {
	RunLeads(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		userRepo repository.UserRepository,
	) error) error
}

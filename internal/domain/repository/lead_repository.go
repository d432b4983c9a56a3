package repository

import "github.com/protecta/crm-pro/internal/domain/entity"

// LeadFilters filtros de listado de leads (además del scope del actor).
type LeadFilters struct {
	Status       string
	AssignedToID string
	Search       string
	Limit        int
	Offset       int
}

// LeadRepository define el puerto de persistencia para Lead.
type LeadRepository interface {
	Create(lead *entity.Lead) error
	GetByID(id string) (*entity.Lead, error)
	// GetForUpdate carga el lead bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Lead, error)
	Update(lead *entity.Lead) error
	Delete(id string) error
	List(scope ScopeFilter, f LeadFilters) ([]*entity.Lead, error)
}

package repository

import "github.com/protecta/crm-pro/internal/domain/entity"

// OrganizationRepository define el puerto de persistencia para Organization.
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	// GetRoot devuelve la organización raíz del grupo (sin padre), o nil.
	GetRoot() (*entity.Organization, error)
	Update(org *entity.Organization) error
	Delete(id string) error
	List(scope ScopeFilter, limit, offset int) ([]*entity.Organization, error)
	// GetTree devuelve todas las organizaciones como mapa plano id → org,
	// para validar la cadena de padres sin grafo de punteros en memoria.
	GetTree() (map[string]*entity.Organization, error)
}

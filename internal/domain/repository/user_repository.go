package repository

import "github.com/protecta/crm-pro/internal/domain/entity"

// UserFilters filtros de listado de usuarios.
type UserFilters struct {
	Role     string
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// List aplica el scope del actor además de los filtros.
	List(scope ScopeFilter, f UserFilters) ([]*entity.User, error)
	// ListByRole devuelve usuarios activos con el rol dado; organizationID
	// vacío no filtra por organización.
	ListByRole(role, organizationID string) ([]*entity.User, error)
}

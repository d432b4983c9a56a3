package entity

import "time"

// Organization representa un nodo del árbol de organizaciones.
// ParentID vacío = organización raíz (grupo). La cadena de padres no puede formar ciclos;
// la validación recorre el árbol como mapa plano id → Organization (ver usecase).
type Organization struct {
	ID         string
	Name       string
	ParentID   string
	DirectorID string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

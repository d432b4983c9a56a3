package entity

import "time"

// Team agrupa usuarios dentro de una organización.
// El slug es único por organización, no globalmente.
type Team struct {
	ID             string
	Name           string
	Description    string
	Slug           string
	CreatorID      string
	OrganizationID string
	MemberIDs      []string // poblado por el repositorio al cargar el equipo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasMember verifica pertenencia al equipo.
func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

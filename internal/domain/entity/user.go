package entity

import "time"

// Roles de negocio. Cada usuario tiene exactamente un rol principal;
// el rol determina tanto el alcance de visibilidad como la capacidad de mutación.
const (
	RoleAdmin           = "Admin"
	RoleGroupDirector   = "Group Director"
	RolePartnerDirector = "Partner Director"
	RoleCoordinator     = "Coordinator"
	RoleSalesManager    = "Sales Manager"
	RoleSalesAgent      = "Sales Agent"
	RoleReferral        = "Referral"
)

// Roles devuelve el conjunto completo de roles válidos.
func Roles() []string {
	return []string{
		RoleAdmin, RoleGroupDirector, RolePartnerDirector,
		RoleCoordinator, RoleSalesManager, RoleSalesAgent, RoleReferral,
	}
}

// IsValidRole verifica pertenencia al conjunto de roles.
func IsValidRole(role string) bool {
	for _, r := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// IsDirectorRole indica si el rol califica para dirigir una organización.
func IsDirectorRole(role string) bool {
	switch role {
	case RoleAdmin, RoleGroupDirector, RolePartnerDirector:
		return true
	}
	return false
}

// User representa una cuenta del sistema. OrganizationID puede estar vacío
// para administradores de nivel superior; CreatedBy registra quién aprovisionó la cuenta.
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string // hash bcrypt, nunca en claro después de persistir
	OrganizationID string
	CreatedBy      string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName devuelve nombre y apellido concatenados.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasRole verifica si el usuario tiene alguno de los roles indicados.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

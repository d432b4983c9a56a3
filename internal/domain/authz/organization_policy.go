package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// Políticas de Organization. El participante es el director.

// CanViewAnyOrganizations: capacidad base de listado.
func CanViewAnyOrganizations(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapOrganizationsView)
}

// CanViewOrganization: la propia organización o una hija directa de ella.
func CanViewOrganization(actor *entity.User, org *entity.Organization) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapOrganizationsView) {
		return false
	}
	return actor.OrganizationID == org.ID ||
		(org.ParentID != "" && actor.OrganizationID == org.ParentID)
}

// CanCreateOrganization: solo capacidad base.
func CanCreateOrganization(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapOrganizationsCreate)
}

// CanUpdateOrganization: solo el director de la organización.
func CanUpdateOrganization(actor *entity.User, org *entity.Organization) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapOrganizationsUpdate) {
		return false
	}
	return actor.ID == org.DirectorID
}

// CanDeleteOrganization: solo el director de la organización.
func CanDeleteOrganization(actor *entity.User, org *entity.Organization) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapOrganizationsDelete) {
		return false
	}
	return actor.ID == org.DirectorID
}

package authz

import "github.com/protecta/crm-pro/internal/domain/entity"

// Políticas de Appointment. Las citas pertenecen a un lead; el alcance
// organizacional se evalúa sobre la organización del lead, que el caller
// carga y pasa de forma explícita (puede ser nil si el lead no existe).

// CanViewAnyAppointments: capacidad base de listado.
func CanViewAnyAppointments(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapAppointmentsView)
}

// CanViewAppointment: capacidad + (participante de la cita O lead dentro del
// alcance). Un agente también ve las citas del lead que tiene asignado.
func CanViewAppointment(actor *entity.User, appt *entity.Appointment, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapAppointmentsView) {
		return false
	}
	if appt.Involves(actor.ID) {
		return true
	}
	return lead != nil && leadInScope(actor, lead)
}

// CanCreateAppointment: solo capacidad base.
func CanCreateAppointment(actor *entity.User) bool {
	if isSuperRole(actor) {
		return true
	}
	return Can(actor, CapAppointmentsCreate)
}

// CanUpdateAppointment: capacidad + (participante O lead dentro del alcance).
func CanUpdateAppointment(actor *entity.User, appt *entity.Appointment, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapAppointmentsUpdate) {
		return false
	}
	if appt.Involves(actor.ID) {
		return true
	}
	return lead != nil && leadInScope(actor, lead)
}

// CanDeleteAppointment: capacidad + (quien la agendó O rol con alcance de
// organización sobre el lead). El participante agendado no puede borrarla.
func CanDeleteAppointment(actor *entity.User, appt *entity.Appointment, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapAppointmentsDelete) {
		return false
	}
	if appt.ScheduledBy == actor.ID {
		return true
	}
	if ResolveScope(actor).Kind != ScopeOrganization {
		return false
	}
	return lead != nil && leadInScope(actor, lead)
}

// CanCancelAppointment: ambos participantes pueden cancelar; el resto
// necesita derechos de actualización.
func CanCancelAppointment(actor *entity.User, appt *entity.Appointment, lead *entity.Lead) bool {
	if isSuperRole(actor) {
		return true
	}
	if !Can(actor, CapAppointmentsUpdate) {
		return false
	}
	if appt.Involves(actor.ID) {
		return true
	}
	return CanUpdateAppointment(actor, appt, lead)
}

package http

import (
	"github.com/protecta/crm-pro/internal/application/appointments"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/domain/entity"
)

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:              l.ID,
		ReferralID:      l.ReferralID,
		OrganizationID:  l.OrganizationID,
		ClientFirstName: l.ClientFirstName,
		ClientLastName:  l.ClientLastName,
		ClientEmail:     l.ClientEmail,
		ClientPhone:     l.ClientPhone,
		ClientCompany:   l.ClientCompany,
		Status:          l.Status,
		AssignedToID:    l.AssignedToID,
		AssignedByID:    l.AssignedByID,
		Source:          l.Source,
		Revenue:         l.Revenue,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func toLeadResponses(items []*entity.Lead) []*dto.LeadResponse {
	out := make([]*dto.LeadResponse, 0, len(items))
	for _, l := range items {
		out = append(out, toLeadResponse(l))
	}
	return out
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:            a.ID,
		LeadID:        a.LeadID,
		ScheduledBy:   a.ScheduledBy,
		ScheduledWith: a.ScheduledWith,
		ScheduledAt:   a.ScheduledAt,
		Duration:      a.Duration,
		Location:      a.Location,
		Notes:         a.Notes,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toAppointmentResponses(items []*entity.Appointment) []*dto.AppointmentResponse {
	out := make([]*dto.AppointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func toStatisticsDTO(s *appointments.Statistics) *dto.AppointmentStatisticsDTO {
	return &dto.AppointmentStatisticsDTO{
		Total:     s.Total,
		Scheduled: s.Scheduled,
		Confirmed: s.Confirmed,
		Completed: s.Completed,
		Cancelled: s.Cancelled,
		NoShow:    s.NoShow,
		Upcoming:  s.Upcoming,
		Overdue:   s.Overdue,
	}
}

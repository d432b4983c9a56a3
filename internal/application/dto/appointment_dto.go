package dto

import "time"

// CreateAppointmentRequest entrada para agendar una cita sobre un lead.
type CreateAppointmentRequest struct {
	LeadID        string    `json:"lead_id" validate:"required,uuid"`
	ScheduledWith string    `json:"scheduled_with" validate:"omitempty,uuid"`
	ScheduledAt   time.Time `json:"scheduled_at" validate:"required"`
	Duration      int       `json:"duration" validate:"required,min=15,max=480"`
	Location      string    `json:"location" validate:"omitempty,max=300"`
	Notes         string    `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateAppointmentRequest entrada para actualizar una cita. Campos nil = sin cambio.
type UpdateAppointmentRequest struct {
	ScheduledWith *string    `json:"scheduled_with"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	Duration      *int       `json:"duration"`
	Location      *string    `json:"location"`
	Notes         *string    `json:"notes"`
}

// RescheduleAppointmentRequest entrada para reagendar (estado vuelve a scheduled).
type RescheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes"`
}

// UpdateAppointmentStatusRequest entrada para cambiar el estado de una cita.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// AppointmentFiltersRequest filtros de listado de citas (query params).
type AppointmentFiltersRequest struct {
	Status        string `query:"status"`
	LeadID        string `query:"lead_id"`
	ScheduledBy   string `query:"scheduled_by"`
	ScheduledWith string `query:"scheduled_with"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	Search        string `query:"search"`
	PageRequest
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"lead_id"`
	ScheduledBy   string    `json:"scheduled_by"`
	ScheduledWith string    `json:"scheduled_with,omitempty"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Duration      int       `json:"duration"`
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AppointmentStatisticsDTO conteos de citas por estado para un usuario.
type AppointmentStatisticsDTO struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"no_show"`
	Upcoming  int `json:"upcoming"`
	Overdue   int `json:"overdue"`
}

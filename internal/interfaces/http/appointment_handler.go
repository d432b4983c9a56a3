package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/protecta/crm-pro/internal/application/appointments"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/domain/entity"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// AppointmentHandler maneja las peticiones HTTP para citas (protegido).
type AppointmentHandler struct {
	uc *appointments.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *appointments.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar cita sobre un lead (con detección de conflictos)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "Datos de la cita"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LeadID == "" || in.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_id y scheduled_at son requeridos"})
	}
	out, err := h.uc.Schedule(c.Context(), GetActor(c), appointments.ScheduleInput{
		LeadID:        in.LeadID,
		ScheduledWith: in.ScheduledWith,
		ScheduledAt:   in.ScheduledAt,
		Duration:      in.Duration,
		Location:      in.Location,
		Notes:         in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAppointmentResponse(out))
}

// List godoc
// @Summary      Listar citas visibles para el actor
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "Filtro por estado"
// @Param        lead_id         query  string  false  "Filtro por lead"
// @Param        scheduled_by    query  string  false  "Filtro por quien agenda"
// @Param        scheduled_with  query  string  false  "Filtro por segundo participante"
// @Param        start_date      query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        end_date        query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Param        search          query  string  false  "Búsqueda en ubicación y notas"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	var q dto.AppointmentFiltersRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	q.DefaultPage()
	f := repository.AppointmentFilters{
		Status:        q.Status,
		LeadID:        q.LeadID,
		ScheduledBy:   q.ScheduledBy,
		ScheduledWith: q.ScheduledWith,
		Search:        q.Search,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	var err error
	if f.From, err = parseTimeParam(q.StartDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido"})
	}
	if f.To, err = parseTimeParam(q.EndDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido"})
	}
	out, err := h.uc.List(GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponses(out))
}

// GetByID godoc
// @Summary      Obtener cita por ID
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(out))
}

// ListByLead godoc
// @Summary      Listar citas de un lead
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lead"
// @Success      200  {array}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/appointments [get]
func (h *AppointmentHandler) ListByLead(c *fiber.Ctx) error {
	out, err := h.uc.ListByLead(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponses(out))
}

// Update godoc
// @Summary      Actualizar cita (revalida horario y conflictos si cambia el intervalo)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.UpdateAppointmentRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [put]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), appointments.UpdateInput{
		ScheduledWith: in.ScheduledWith,
		ScheduledAt:   in.ScheduledAt,
		Duration:      in.Duration,
		Location:      in.Location,
		Notes:         in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(out))
}

// Reschedule godoc
// @Summary      Reagendar cita (vuelve a scheduled)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.RescheduleAppointmentRequest  true  "Nuevo horario"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *fiber.Ctx) error {
	var in dto.RescheduleAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "scheduled_at es requerido"})
	}
	out, err := h.uc.Reschedule(c.Context(), GetActor(c), c.Params("id"), in.ScheduledAt, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(out))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la cita
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.UpdateAppointmentStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(GetActor(c), c.Params("id"), in.Status, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(out))
}

// Cancel godoc
// @Summary      Cancelar cita (libera el horario)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Router       /api/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	return h.statusAction(c, h.uc.Cancel)
}

// Confirm godoc
// @Summary      Confirmar cita
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Router       /api/appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(out))
}

// Complete godoc
// @Summary      Marcar cita como completada
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Router       /api/appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	return h.statusAction(c, h.uc.Complete)
}

// NoShow godoc
// @Summary      Marcar cita como no asistida
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Router       /api/appointments/{id}/no-show [post]
func (h *AppointmentHandler) NoShow(c *fiber.Ctx) error {
	return h.statusAction(c, h.uc.NoShow)
}

// Delete godoc
// @Summary      Eliminar cita
// @Tags         appointments
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cita"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Upcoming godoc
// @Summary      Próximas citas del actor
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments/upcoming [get]
func (h *AppointmentHandler) Upcoming(c *fiber.Ctx) error {
	out, err := h.uc.ListUpcoming(GetActor(c), c.QueryInt("days", 7))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponses(out))
}

// Daily godoc
// @Summary      Agenda del día
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, default hoy)"
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments/daily [get]
func (h *AppointmentHandler) Daily(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválido, formato YYYY-MM-DD"})
	}
	out, err := h.uc.DailySchedule(GetActor(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponses(out))
}

// Weekly godoc
// @Summary      Agenda de la semana (lunes a domingo)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Cualquier día de la semana (YYYY-MM-DD, default hoy)"
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments/weekly [get]
func (h *AppointmentHandler) Weekly(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválido, formato YYYY-MM-DD"})
	}
	out, err := h.uc.WeeklySchedule(GetActor(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponses(out))
}

// Statistics godoc
// @Summary      Estadísticas de citas del actor
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AppointmentStatisticsDTO
// @Router       /api/appointments/statistics [get]
func (h *AppointmentHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.GetStatistics(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStatisticsDTO(out))
}

type statusActionFn func(actor *entity.User, apptID, notes string) (*entity.Appointment, error)

func (h *AppointmentHandler) statusAction(c *fiber.Ctx, fn statusActionFn) error {
	var in struct {
		Notes string `json:"notes"`
	}
	// El body es opcional en estas acciones.
	_ = c.BodyParser(&in)
	out, err := fn(GetActor(c), c.Params("id"), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAppointmentResponse(out))
}

// parseTimeParam acepta RFC 3339 o YYYY-MM-DD; vacío devuelve el cero de time.Time.
func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// parseDayParam como parseTimeParam pero vacío = hoy.
func parseDayParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/application/leads"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// LeadHandler maneja las peticiones HTTP para leads (protegido).
type LeadHandler struct {
	uc *leads.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *leads.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lead (el actor queda como referral)
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), leads.CreateInput{
		ClientFirstName: in.ClientFirstName,
		ClientLastName:  in.ClientLastName,
		ClientEmail:     in.ClientEmail,
		ClientPhone:     in.ClientPhone,
		ClientCompany:   in.ClientCompany,
		Source:          in.Source,
		Revenue:         in.Revenue,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLeadResponse(out))
}

// List godoc
// @Summary      Listar leads visibles para el actor
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Filtro por estado"
// @Param        assigned_to  query  string  false  "Filtro por asignado"
// @Param        search       query  string  false  "Búsqueda por nombre, email o empresa"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	var q dto.LeadFiltersRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	q.DefaultPage()
	f := repository.LeadFilters{
		Status:       q.Status,
		AssignedToID: q.AssignedTo,
		Search:       q.Search,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	out, err := h.uc.List(GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeadResponses(out))
}

// GetByID godoc
// @Summary      Obtener lead por ID
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeadResponse(out))
}

// Update godoc
// @Summary      Actualizar datos de contacto del lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.UpdateLeadRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetActor(c), c.Params("id"), leads.UpdateInput{
		ClientFirstName: in.ClientFirstName,
		ClientLastName:  in.ClientLastName,
		ClientEmail:     in.ClientEmail,
		ClientPhone:     in.ClientPhone,
		ClientCompany:   in.ClientCompany,
		Source:          in.Source,
		Revenue:         in.Revenue,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeadResponse(out))
}

// Assign godoc
// @Summary      Asignar lead (Coordinator → Sales Manager → Sales Agent)
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.AssignLeadRequest  true  "ID del asignado"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/assign [post]
func (h *LeadHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AssignedTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assigned_to es requerido"})
	}
	out, err := h.uc.Assign(c.Context(), GetActor(c), c.Params("id"), in.AssignedTo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeadResponse(out))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.UpdateLeadStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeadResponse(out))
}

// Delete godoc
// @Summary      Eliminar lead
// @Tags         leads
// @Security     Bearer
// @Param        id  path  string  true  "ID del lead"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

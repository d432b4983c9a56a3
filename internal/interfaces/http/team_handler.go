package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/protecta/crm-pro/internal/application/dto"
	"github.com/protecta/crm-pro/internal/application/usecase"
	"github.com/protecta/crm-pro/internal/domain/repository"
)

// TeamHandler maneja las peticiones HTTP para equipos y su membresía (protegido).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create godoc
// @Summary      Crear equipo (slug autogenerado si no se envía)
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeamRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.TeamResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar equipos visibles para el actor
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        organization_id  query  string  false  "Filtro por organización"
// @Param        search           query  string  false  "Búsqueda por nombre"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TeamResponse
// @Router       /api/teams [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	f := repository.TeamFilters{
		OrganizationID: c.Query("organization_id"),
		Search:         c.Query("search"),
		Limit:          pageLimit(c),
		Offset:         pageOffset(c),
	}
	out, err := h.uc.List(GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Listar los equipos del actor (miembro o creador)
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamResponse
// @Router       /api/teams/mine [get]
func (h *TeamHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo por ID
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del equipo"
// @Success      200  {object}  dto.TeamResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [get]
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar equipo
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del equipo"
// @Param        body  body  dto.UpdateTeamRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TeamResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [put]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar equipo
// @Tags         teams
// @Security     Bearer
// @Param        id  path  string  true  "ID del equipo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMember godoc
// @Summary      Agregar miembro al equipo
// @Tags         teams
// @Security     Bearer
// @Param        id       path  string  true  "ID del equipo"
// @Param        user_id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/teams/{id}/members/{user_id} [post]
func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	if err := h.uc.AddMember(GetActor(c), c.Params("id"), c.Params("user_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Quitar miembro del equipo
// @Tags         teams
// @Security     Bearer
// @Param        id       path  string  true  "ID del equipo"
// @Param        user_id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/teams/{id}/members/{user_id} [delete]
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(GetActor(c), c.Params("id"), c.Params("user_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMembers godoc
// @Summary      Listar miembros del equipo
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del equipo"
// @Success      200  {array}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/teams/{id}/members [get]
func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

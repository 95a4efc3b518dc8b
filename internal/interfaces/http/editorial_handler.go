package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
)

const editorialEntity = "Editorial"

// EditorialHandler maneja las peticiones HTTP de editoriales (protegido).
type EditorialHandler struct {
	uc *usecase.EditorialUseCase
}

// NewEditorialHandler construye el handler.
func NewEditorialHandler(uc *usecase.EditorialUseCase) *EditorialHandler {
	return &EditorialHandler{uc: uc}
}

// List GET /api/editorials
func (h *EditorialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageRequest(c))
	if err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear editorial
// @Tags         editorials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EditorialRequest  true  "Datos de la editorial"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/editorials [post]
func (h *EditorialHandler) Create(c *fiber.Ctx) error {
	var in dto.EditorialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return ok(c, editorialEntity, "created", "editorial", out)
}

// GetByID GET /api/editorials/:id
func (h *EditorialHandler) GetByID(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, editorialEntity)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return ok(c, editorialEntity, "found", "editorial", out)
}

// Update PUT /api/editorials/:id
func (h *EditorialHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, editorialEntity)
	}
	var in dto.EditorialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return ok(c, editorialEntity, "updated", "editorial", out)
}

// Delete DELETE /api/editorials/:id
func (h *EditorialHandler) Delete(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, editorialEntity)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return ok(c, editorialEntity, "deleted", "", nil)
}

// ByName GET /api/editorials/name?name=
func (h *EditorialHandler) ByName(c *fiber.Ctx) error {
	out, err := h.uc.FindByName(c.Context(), c.Query("name"))
	if err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return ok(c, editorialEntity, "found", "editorial", out)
}

// ByCountry GET /api/editorials/country?country=
func (h *EditorialHandler) ByCountry(c *fiber.Ctx) error {
	out, err := h.uc.FindByCountry(c.Context(), c.Query("country"))
	if err != nil {
		return catalogError(c, editorialEntity, err)
	}
	return ok(c, editorialEntity, "found", "editorials", out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
)

const categoryEntity = "Category"

// CategoryHandler maneja las peticiones HTTP de categorías (protegido).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageRequest(c))
	if err != nil {
		return catalogError(c, categoryEntity, err)
	}
	return c.JSON(out)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return catalogError(c, categoryEntity, err)
	}
	return ok(c, categoryEntity, "created", "category", out)
}

func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, categoryEntity)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return catalogError(c, categoryEntity, err)
	}
	return ok(c, categoryEntity, "found", "category", out)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, categoryEntity)
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return catalogError(c, categoryEntity, err)
	}
	return ok(c, categoryEntity, "updated", "category", out)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, categoryEntity)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return catalogError(c, categoryEntity, err)
	}
	return ok(c, categoryEntity, "deleted", "", nil)
}

// ByName GET /api/categories/name?name=
func (h *CategoryHandler) ByName(c *fiber.Ctx) error {
	out, err := h.uc.FindByName(c.Context(), c.Query("name"))
	if err != nil {
		return catalogError(c, categoryEntity, err)
	}
	return ok(c, categoryEntity, "found", "category", out)
}

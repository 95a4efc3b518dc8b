package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
)

const authorEntity = "Author"

// AuthorHandler maneja las peticiones HTTP de autores (protegido).
type AuthorHandler struct {
	uc *usecase.AuthorUseCase
}

// NewAuthorHandler construye el handler.
func NewAuthorHandler(uc *usecase.AuthorUseCase) *AuthorHandler {
	return &AuthorHandler{uc: uc}
}

// List godoc
// @Summary      Listar autores
// @Tags         authors
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(10)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.AuthorResponse]
// @Router       /api/authors [get]
func (h *AuthorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageRequest(c))
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear autor
// @Tags         authors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuthorRequest  true  "Datos del autor"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/authors [post]
func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var in dto.AuthorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "created", "author", out)
}

// GetByID godoc
// @Summary      Obtener autor
// @Tags         authors
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del autor"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/authors/{id} [get]
func (h *AuthorHandler) GetByID(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, authorEntity)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "found", "author", out)
}

// Update godoc
// @Summary      Actualizar autor
// @Tags         authors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del autor"
// @Param        body  body  dto.AuthorRequest  true  "Datos del autor"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.MessageResponse
// @Router       /api/authors/{id} [put]
func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, authorEntity)
	}
	var in dto.AuthorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "updated", "author", out)
}

// Delete godoc
// @Summary      Eliminar autor
// @Tags         authors
// @Security     Bearer
// @Param        id   path  int  true  "ID del autor"
// @Success      200  {object}  dto.CodeMessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, authorEntity)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "deleted", "", nil)
}

// ByName GET /api/authors/name?name=
func (h *AuthorHandler) ByName(c *fiber.Ctx) error {
	out, err := h.uc.FindByName(c.Context(), c.Query("name"))
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "found", "author", out)
}

// ByLastName GET /api/authors/last_name?last_name=
func (h *AuthorHandler) ByLastName(c *fiber.Ctx) error {
	out, err := h.uc.FindByLastName(c.Context(), c.Query("last_name"))
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "found", "author", out)
}

// ByNationality GET /api/authors/nationality?nationality=
func (h *AuthorHandler) ByNationality(c *fiber.Ctx) error {
	out, err := h.uc.FindByNationality(c.Context(), c.Query("nationality"))
	if err != nil {
		return catalogError(c, authorEntity, err)
	}
	return ok(c, authorEntity, "found", "authors", out)
}

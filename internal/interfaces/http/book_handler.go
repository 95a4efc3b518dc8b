package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
)

// BookHandler maneja las peticiones HTTP del catálogo de libros (protegido).
type BookHandler struct {
	uc *usecase.BookUseCase
}

// NewBookHandler construye el handler.
func NewBookHandler(uc *usecase.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// List godoc
// @Summary      Listar libros
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(10)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.BookResponse]
// @Router       /api/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageRequest(c))
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookRequest  true  "Datos del libro"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.BookRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "created", "book", out)
}

// Search godoc
// @Summary      Buscar libro por id
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookSearchRequest  true  "id del libro"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.MessageResponse
// @Router       /api/books/search [post]
func (h *BookHandler) Search(c *fiber.Ctx) error {
	var in dto.BookSearchRequest
	if err := c.BodyParser(&in); err != nil || in.ID <= 0 {
		return notFound(c, bookEntity)
	}
	out, err := h.uc.GetByID(c.Context(), in.ID)
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "book", out)
}

// Update PUT /api/books/:id
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, bookEntity)
	}
	var in dto.BookRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "updated", "book", out)
}

// Delete DELETE /api/books/:id
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return notFound(c, bookEntity)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "deleted", "", nil)
}

// ByAuthor GET /api/books/author?author_id=
func (h *BookHandler) ByAuthor(c *fiber.Ctx) error {
	authorID, valid := queryID(c, "author_id")
	if !valid {
		return notFound(c, bookEntity)
	}
	out, err := h.uc.ListByAuthor(c.Context(), authorID, pageRequest(c))
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "books", out)
}

// ByEditorial GET /api/books/editorial?editorial_id=
func (h *BookHandler) ByEditorial(c *fiber.Ctx) error {
	editorialID, valid := queryID(c, "editorial_id")
	if !valid {
		return notFound(c, bookEntity)
	}
	out, err := h.uc.FindFirstByEditorial(c.Context(), editorialID)
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "book", out)
}

// ByCategory GET /api/books/category?category_id=
func (h *BookHandler) ByCategory(c *fiber.Ctx) error {
	categoryID, valid := queryID(c, "category_id")
	if !valid {
		return notFound(c, bookEntity)
	}
	out, err := h.uc.FindFirstByCategory(c.Context(), categoryID)
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "book", out)
}

// ByTitle GET /api/books/title?title=
func (h *BookHandler) ByTitle(c *fiber.Ctx) error {
	out, err := h.uc.FindByTitle(c.Context(), c.Query("title"))
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "book", out)
}

// Filters godoc
// @Summary      Filtrar libros
// @Description  "all" o vacío en cualquier parámetro = sin filtro. El rango de precio requiere ambos extremos.
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "ID de categoría o all"
// @Param        language     query  string  false  "Idioma o all"
// @Param        min_price    query  string  false  "Precio mínimo"
// @Param        max_price    query  string  false  "Precio máximo"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/books/filters [get]
func (h *BookHandler) Filters(c *fiber.Ctx) error {
	var q dto.BookFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.Filter(c.Context(), q, pageRequest(c))
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "books", out)
}

// Random GET /api/books/random
func (h *BookHandler) Random(c *fiber.Ctx) error {
	out, err := h.uc.Random(c.Context())
	if err != nil {
		return catalogError(c, bookEntity, err)
	}
	return ok(c, bookEntity, "found", "books", out)
}

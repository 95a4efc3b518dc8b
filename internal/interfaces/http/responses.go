package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
)

// ok responde {code:200, message:"<Entity> <verb> successfully", <key>: value}.
// Con key vacío solo se envían code y message.
func ok(c *fiber.Ctx, entity, verb, key string, value any) error {
	body := fiber.Map{
		"code":    fiber.StatusOK,
		"message": entity + " " + verb + " successfully",
	}
	if key != "" {
		body[key] = value
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// notFound responde 404 {message:"<Entity> not found"}.
func notFound(c *fiber.Ctx, entity string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: entity + " not found"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// catalogError traduce errores de dominio del catálogo a HTTP.
func catalogError(c *fiber.Ctx, entity string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, entity)
	case errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: entity + " ya existe"})
	case errors.Is(err, domain.ErrInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_USE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// paramID lee un id numérico de la ruta (:id).
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// queryID lee un id numérico de la query.
func queryID(c *fiber.Ctx, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(key), 10, 64)
	return id, err == nil && id > 0
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 10), Offset: c.QueryInt("offset", 0)}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/application/sales"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/pkg/logger"
)

const (
	saleEntity = "Sale"
	bookEntity = "Book"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc  *sales.SaleUseCase
	log *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, log: log}
}

// Index godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SaleResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) Index(c *fiber.Ctx) error {
	list, err := h.uc.ListSales(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sales.ToResponseList(list))
}

// Store godoc
// @Summary      Registrar venta
// @Description  Crea la venta y sus líneas en una sola transacción. El total lo calcula el servidor.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "id_client y saleDetails"
// @Success      200   {object}  dto.SaleEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.SaleFailureResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Store(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	sale, err := h.uc.CreateSale(c.Context(), in)
	if err != nil {
		var txErr *sales.TransactionError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return badRequest(c, "VALIDATION", err.Error())
		case errors.Is(err, domain.ErrBookNotFound):
			return notFound(c, bookEntity)
		case errors.As(err, &txErr):
			h.log.Error().Err(txErr.Err).
				Str("request_id", GetRequestID(c)).
				Str("step", txErr.Step).
				Int64("id_client", in.ClientID).
				Int("items", len(in.SaleDetails)).
				Msg("creación de venta revertida")
		default:
			h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("creación de venta")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SaleFailureResponse{
			Code:    fiber.StatusInternalServerError,
			Message: "Sale creation failed",
			Error:   err.Error(),
		})
	}
	return c.JSON(dto.SaleEnvelope{
		Code:    fiber.StatusOK,
		Message: "Sale created successfully",
		Sale:    sales.ToResponse(sale),
	})
}

// Show godoc
// @Summary      Buscar venta por id
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id_sale  query  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleEnvelope
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/sales/search [get]
func (h *SaleHandler) Show(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Query("id_sale"))
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return notFound(c, saleEntity)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SaleEnvelope{
		Code:    fiber.StatusOK,
		Message: "Sale found successfully",
		Sale:    sales.ToResponse(sale),
	})
}

// Delete godoc
// @Summary      Eliminar venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID de la venta"
// @Success      200  {object}  dto.CodeMessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/sales/delete [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSale(c.Context(), c.Query("id")); err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return notFound(c, saleEntity)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CodeMessageResponse{Code: fiber.StatusOK, Message: "Sale deleted successfully"})
}

// ShowByUser godoc
// @Summary      Ventas de un cliente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id_user  query  int  true  "ID del cliente"
// @Success      200  {object}  dto.SalesEnvelope
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/sales/user [get]
func (h *SaleHandler) ShowByUser(c *fiber.Ctx) error {
	clientID, valid := queryID(c, "id_user")
	if !valid {
		return notFound(c, saleEntity)
	}
	list, err := h.uc.ListSalesByClient(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SalesEnvelope{
		Code:    fiber.StatusOK,
		Message: "Sale found successfully",
		Sales:   sales.ToResponseList(list),
	})
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id_sale  query  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/sales/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Query("id_sale")
	pdf, err := h.uc.SaleReceipt(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return notFound(c, saleEntity)
		}
		h.log.Error().Err(err).Str("id_sale", id).Msg("generación de recibo")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+id+`.pdf"`)
	return c.Send(pdf)
}

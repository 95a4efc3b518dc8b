package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ClientID    int64                   `json:"id_client"`
	SaleDetails []SaleDetailItemRequest `json:"saleDetails"`
}

// SaleDetailItemRequest línea de venta tal como la envía el cliente.
type SaleDetailItemRequest struct {
	BookID    int64           `json:"book_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse venta con su detalle.
type SaleResponse struct {
	ID          string               `json:"id"`
	ClientID    int64                `json:"id_client"`
	Date        time.Time            `json:"date"`
	Total       decimal.Decimal      `json:"total"`
	SaleDetails []SaleDetailResponse `json:"sale_detail"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// SaleDetailResponse línea de detalle en la respuesta.
type SaleDetailResponse struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"id_sale"`
	BookID    int64           `json:"id_book"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaleEnvelope {code, message, sale} para creación y búsqueda.
type SaleEnvelope struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Sale    *SaleResponse `json:"sale"`
}

// SalesEnvelope {code, message, sales} para /sales/user.
type SalesEnvelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Sales   []SaleResponse `json:"sales"`
}

// SaleFailureResponse cuerpo del 500 cuando la transacción de venta falla.
type SaleFailureResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CodeMessageResponse {code, message} para borrados exitosos.
type CodeMessageResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un SaleRepository atado a ella.
// Si fn retorna error (o hace panic) la transacción se revierte; si no, se hace commit.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error
}

// Clock abstrae la hora del servidor para la fecha de la venta.
type Clock interface {
	Now() time.Time
}

// IDGenerator genera identificadores para ventas y líneas de detalle.
type IDGenerator interface {
	NewID() string
}

// ReceiptRenderer genera la representación PDF de una venta.
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, sale *entity.Sale, lines []ReceiptLine) ([]byte, error)
}

// ReceiptLine línea del recibo con el título resuelto desde el catálogo (vacío si el libro ya no existe).
type ReceiptLine struct {
	Detail    *entity.SaleDetail
	BookTitle string
}

// SystemClock usa time.Now en UTC.
type SystemClock struct{}

// Now implementa Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator genera UUID v4.
type UUIDGenerator struct{}

// NewID implementa IDGenerator.
func (UUIDGenerator) NewID() string { return uuid.New().String() }

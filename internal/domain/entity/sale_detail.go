package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDetail representa una línea de venta. UnitPrice es una copia del precio al momento de la venta.
type SaleDetail struct {
	ID        string
	SaleID    string
	BookID    int64
	Quantity  int
	UnitPrice decimal.Decimal
	LineNo    int // posición (1..n) en la petición
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal devuelve Quantity * UnitPrice.
func (d *SaleDetail) Subtotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

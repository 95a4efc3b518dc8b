package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta. Total se deriva de los detalles y nunca lo envía el cliente.
type Sale struct {
	ID        string
	ClientID  int64 // comprador; no se valida contra la tabla de usuarios
	Date      time.Time
	Total     decimal.Decimal
	Details   []*SaleDetail // ordenados por LineNo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotal suma quantity * unit_price de los detalles cargados.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Details {
		total = total.Add(d.Subtotal())
	}
	return total
}

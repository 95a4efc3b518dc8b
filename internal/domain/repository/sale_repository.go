package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleRepository define el puerto de persistencia para Sale y sus detalles.
// Las implementaciones pueden estar atadas a una transacción (ver sales.TxRunner).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateDetail(ctx context.Context, detail *entity.SaleDetail) error
	UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal, updatedAt time.Time) error
	// GetByID devuelve (nil, nil) si la venta no existe. No carga detalles.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetDetailsBySaleIDs devuelve los detalles agrupados por venta, ordenados por line_no.
	GetDetailsBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error)
	List(ctx context.Context) ([]*entity.Sale, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Sale, error)
	// Delete devuelve false si no había fila con ese id.
	Delete(ctx context.Context, id string) (bool, error)
}

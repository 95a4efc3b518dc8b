package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, id_client, date, total, created_at, updated_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, id_client, date, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ClientID, sale.Date, sale.Total, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de detalle.
func (r *SaleRepo) CreateDetail(ctx context.Context, detail *entity.SaleDetail) error {
	query := `
		INSERT INTO sale_detail (id, id_sale, id_book, quantity, unit_price, line_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		detail.ID, detail.SaleID, detail.BookID, detail.Quantity, detail.UnitPrice,
		detail.LineNo, detail.CreatedAt, detail.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

// UpdateTotal escribe el total calculado en la cabecera.
func (r *SaleRepo) UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET total = $2, updated_at = $3 WHERE id = $1`,
		saleID, total, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	if cmd.RowsAffected() != 1 {
		return fmt.Errorf("update sale total: %d filas afectadas", cmd.RowsAffected())
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. Un id que no es UUID se trata como inexistente.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var s entity.Sale
	err := r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.ClientID, &s.Date, &s.Total, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetDetailsBySaleIDs carga los detalles de varias ventas en una sola consulta.
func (r *SaleRepo) GetDetailsBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error) {
	out := make(map[string][]*entity.SaleDetail, len(saleIDs))
	if len(saleIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT id, id_sale, id_book, quantity, unit_price, line_no, created_at, updated_at
		FROM sale_detail
		WHERE id_sale = ANY($1::uuid[])
		ORDER BY id_sale, line_no`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.BookID, &d.Quantity, &d.UnitPrice, &d.LineNo, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		out[d.SaleID] = append(out[d.SaleID], &d)
	}
	return out, rows.Err()
}

// List devuelve todas las ventas (sin detalles), más antiguas primero.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY date, id`)
}

// ListByClient devuelve las ventas de un cliente (sin detalles).
func (r *SaleRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM sales WHERE id_client = $1 ORDER BY date, id`, clientID)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Date, &s.Total, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina la venta; sale_detail se borra en cascada por la FK.
func (r *SaleRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

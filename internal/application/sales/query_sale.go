package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

// GetSale obtiene una venta con sus líneas en el orden de entrada.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	if id == "" {
		return nil, domain.ErrSaleNotFound
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if err := uc.attachDetails(ctx, []*entity.Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales lista todas las ventas con sus detalles.
func (uc *SaleUseCase) ListSales(ctx context.Context) ([]*entity.Sale, error) {
	list, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.attachDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListSalesByClient lista las ventas de un cliente. Sin ventas devuelve un slice vacío.
func (uc *SaleUseCase) ListSalesByClient(ctx context.Context, clientID int64) ([]*entity.Sale, error) {
	list, err := uc.saleRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Sale{}
	}
	if err := uc.attachDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteSale elimina una venta. Las líneas se eliminan por la FK ON DELETE CASCADE.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrSaleNotFound
	}
	deleted, err := uc.saleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrSaleNotFound
	}
	return nil
}

// SaleReceipt genera el recibo PDF de una venta.
func (uc *SaleUseCase) SaleReceipt(ctx context.Context, id string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, fmt.Errorf("recibos PDF no configurados")
	}
	sale, err := uc.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	lines := make([]ReceiptLine, 0, len(sale.Details))
	for _, d := range sale.Details {
		line := ReceiptLine{Detail: d}
		if uc.books != nil {
			if book, err := uc.books.GetByID(ctx, d.BookID); err == nil && book != nil {
				line.BookTitle = book.Title
			}
		}
		lines = append(lines, line)
	}
	return uc.receipts.RenderSaleReceipt(ctx, sale, lines)
}

func (uc *SaleUseCase) attachDetails(ctx context.Context, list []*entity.Sale) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	bySale, err := uc.saleRepo.GetDetailsBySaleIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, s := range list {
		s.Details = bySale[s.ID]
		if s.Details == nil {
			s.Details = []*entity.SaleDetail{}
		}
	}
	return nil
}

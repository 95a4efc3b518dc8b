package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
	"github.com/jhoicas/bookstore-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

var maxUnitPrice = decimal.New(1, 8)

// Options ajustes del caso de uso de ventas.
type Options struct {
	// VerifyBooks consulta cada book_id en el catálogo antes de abrir la transacción.
	// Desactivado, un libro inexistente solo se detecta por la FK de sale_detail (error 500).
	VerifyBooks bool
}

// SaleUseCase crea, consulta y elimina ventas. La creación es atómica: cabecera y detalles
// se persisten en una sola transacción o no se persiste nada.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	books    repository.BookReader
	receipts ReceiptRenderer
	clock    Clock
	ids      IDGenerator
	opts     Options
}

// NewSaleUseCase construye el caso de uso. books y receipts pueden ser nil si no se usan
// VerifyBooks ni recibos PDF.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	books repository.BookReader,
	receipts ReceiptRenderer,
	clock Clock,
	ids IDGenerator,
	opts Options,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		books:    books,
		receipts: receipts,
		clock:    clock,
		ids:      ids,
		opts:     opts,
	}
}

// CreateSale persiste la venta y sus líneas en orden, acumula el total con los valores
// recibidos y lo escribe en la cabecera antes del commit.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if err := validateSaleRequest(in); err != nil {
		return nil, err
	}
	if uc.opts.VerifyBooks {
		if err := uc.verifyBooks(ctx, in.SaleDetails); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	// TIMESTAMPTZ guarda microsegundos.
	now := uc.clock.Now().Truncate(time.Microsecond)
	sale := &entity.Sale{
		ID:        uc.ids.NewID(),
		ClientID:  in.ClientID,
		Date:      now,
		Total:     decimal.Zero,
		Details:   make([]*entity.SaleDetail, 0, len(in.SaleDetails)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ran := false
	err := uc.txRunner.RunSales(ctx, func(saleRepo repository.SaleRepository) error {
		ran = true
		if err := saleRepo.Create(ctx, sale); err != nil {
			return &TransactionError{Step: StepCreateSale, Err: err}
		}

		for i, item := range in.SaleDetails {
			detail := &entity.SaleDetail{
				ID:        uc.ids.NewID(),
				SaleID:    sale.ID,
				BookID:    item.BookID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineNo:    i + 1,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := saleRepo.CreateDetail(ctx, detail); err != nil {
				return &TransactionError{Step: StepCreateDetail, Err: err}
			}
			sale.Details = append(sale.Details, detail)
		}

		total := sale.ComputeTotal()
		if err := saleRepo.UpdateTotal(ctx, sale.ID, total, now); err != nil {
			return &TransactionError{Step: StepUpdateTotal, Err: err}
		}
		sale.Total = total
		return nil
	})
	if err != nil {
		metrics.SalesFailedTotal.Inc()
		var txErr *TransactionError
		if errors.As(err, &txErr) {
			return nil, txErr
		}
		step := StepCommit
		if !ran {
			step = StepBegin
		}
		return nil, &TransactionError{Step: step, Err: err}
	}

	metrics.SalesCreatedTotal.Inc()
	metrics.SaleLineItems.Observe(float64(len(sale.Details)))
	metrics.SaleCreationDuration.Observe(time.Since(start).Seconds())
	return sale, nil
}

func validateSaleRequest(in dto.CreateSaleRequest) error {
	if in.ClientID <= 0 {
		return fmt.Errorf("%w: id_client es requerido", domain.ErrInvalidInput)
	}
	for i, item := range in.SaleDetails {
		if item.BookID <= 0 {
			return fmt.Errorf("%w: saleDetails[%d].book_id es requerido", domain.ErrInvalidInput, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: saleDetails[%d].quantity debe ser mayor que 0", domain.ErrInvalidInput, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: saleDetails[%d].unit_price no puede ser negativo", domain.ErrInvalidInput, i)
		}
		// unit_price es NUMERIC(10,2): se rechaza lo que la columna redondearía o no cabe.
		if !item.UnitPrice.Equal(item.UnitPrice.Round(2)) || item.UnitPrice.GreaterThanOrEqual(maxUnitPrice) {
			return fmt.Errorf("%w: saleDetails[%d].unit_price admite máximo 2 decimales y 8 enteros", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// verifyBooks consulta el catálogo fuera de la transacción (solo lectura).
func (uc *SaleUseCase) verifyBooks(ctx context.Context, items []dto.SaleDetailItemRequest) error {
	if uc.books == nil {
		return nil
	}
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if seen[item.BookID] {
			continue
		}
		book, err := uc.books.GetByID(ctx, item.BookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: id %d", domain.ErrBookNotFound, item.BookID)
		}
		seen[item.BookID] = true
	}
	return nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type pendingTotal struct {
	total decimal.Decimal
	at    time.Time
}

// txRepo acumula las escrituras de una transacción. Las lecturas ven lo confirmado más lo
// pendiente. Se usa con Store.mu tomado.
type txRepo struct {
	store   *Store
	sales   map[string]*entity.Sale
	order   []string
	details map[string][]*entity.SaleDetail
	totals  map[string]pendingTotal
	calls   map[Op]int
}

func (t *txRepo) check(op Op) error {
	t.calls[op]++
	if t.store.fault == nil {
		return nil
	}
	return t.store.fault(op, t.calls[op])
}

func (t *txRepo) saleExists(id string) bool {
	if _, ok := t.sales[id]; ok {
		return true
	}
	_, ok := t.store.sales[id]
	return ok
}

func (t *txRepo) Create(_ context.Context, sale *entity.Sale) error {
	if err := t.check(OpCreateSale); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	if sale.ID == "" {
		return fmt.Errorf("insert sale: id vacío")
	}
	if t.saleExists(sale.ID) {
		return fmt.Errorf("insert sale: duplicate key value violates unique constraint \"sales_pkey\"")
	}
	t.sales[sale.ID] = cloneSale(sale)
	t.order = append(t.order, sale.ID)
	return nil
}

func (t *txRepo) CreateDetail(_ context.Context, detail *entity.SaleDetail) error {
	if err := t.check(OpCreateDetail); err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	if !t.saleExists(detail.SaleID) {
		return fmt.Errorf("insert sale detail: violates foreign key constraint \"sale_detail_id_sale_fkey\"")
	}
	if len(t.store.books) > 0 {
		if _, ok := t.store.books[detail.BookID]; !ok {
			return fmt.Errorf("insert sale detail: violates foreign key constraint \"sale_detail_id_book_fkey\"")
		}
	}
	cp := *detail
	t.details[detail.SaleID] = append(t.details[detail.SaleID], &cp)
	return nil
}

func (t *txRepo) UpdateTotal(_ context.Context, saleID string, total decimal.Decimal, updatedAt time.Time) error {
	if err := t.check(OpUpdateTotal); err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	if sale, ok := t.sales[saleID]; ok {
		sale.Total = total
		sale.UpdatedAt = updatedAt
		return nil
	}
	if _, ok := t.store.sales[saleID]; ok {
		if t.totals == nil {
			t.totals = make(map[string]pendingTotal)
		}
		t.totals[saleID] = pendingTotal{total: total, at: updatedAt}
	}
	return nil
}

func (t *txRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	if sale, ok := t.sales[id]; ok {
		return cloneSale(sale), nil
	}
	if sale, ok := t.store.sales[id]; ok {
		return cloneSale(sale), nil
	}
	return nil, nil
}

func (t *txRepo) GetDetailsBySaleIDs(_ context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error) {
	out := make(map[string][]*entity.SaleDetail, len(saleIDs))
	for _, id := range saleIDs {
		var list []*entity.SaleDetail
		for _, d := range t.store.details[id] {
			dd := *d
			list = append(list, &dd)
		}
		for _, d := range t.details[id] {
			dd := *d
			list = append(list, &dd)
		}
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].LineNo < list[j].LineNo })
		out[id] = list
	}
	return out, nil
}

func (t *txRepo) List(_ context.Context) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, id := range t.store.order {
		out = append(out, cloneSale(t.store.sales[id]))
	}
	for _, id := range t.order {
		out = append(out, cloneSale(t.sales[id]))
	}
	return out, nil
}

func (t *txRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.Sale, error) {
	all, _ := t.List(ctx)
	var out []*entity.Sale
	for _, s := range all {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *txRepo) Delete(_ context.Context, id string) (bool, error) {
	return false, fmt.Errorf("delete sale: no soportado dentro de la transacción en memoria")
}

// Package memory implementa un almacén transaccional en memoria para ventas y libros.
// Lo usan los tests del caso de uso y de los handlers: replica commit/rollback, la FK
// sale_detail -> sales (y -> books si hay libros cargados), el ON DELETE CASCADE y
// permite inyectar fallos en pasos concretos de la transacción.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/bookstore-api/internal/application/sales"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.SaleRepository = (*Store)(nil)
	_ repository.BookReader     = (*bookReader)(nil)
	_ sales.TxRunner            = (*Store)(nil)
)

// Op identifica una operación de escritura dentro de una transacción.
type Op string

const (
	OpCreateSale   Op = "create_sale"
	OpCreateDetail Op = "create_detail"
	OpUpdateTotal  Op = "update_total"
	OpCommit       Op = "commit"
)

// FaultFunc decide si la n-ésima llamada (1-based, por transacción) a op debe fallar.
type FaultFunc func(op Op, n int) error

// FailOnCall falla la n-ésima llamada a op con err.
func FailOnCall(op Op, n int, err error) FaultFunc {
	return func(got Op, calls int) error {
		if got == op && calls == n {
			return err
		}
		return nil
	}
}

// Store guarda ventas, detalles y libros. Las transacciones se serializan con mu.
type Store struct {
	mu      sync.Mutex
	sales   map[string]*entity.Sale
	order   []string // orden de inserción de ventas confirmadas
	details map[string][]*entity.SaleDetail
	books   map[int64]*entity.Book
	fault   FaultFunc
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		sales:   make(map[string]*entity.Sale),
		details: make(map[string][]*entity.SaleDetail),
		books:   make(map[int64]*entity.Book),
	}
}

// AddBook carga un libro. Con al menos un libro cargado se exige la FK sale_detail.book_id.
func (s *Store) AddBook(b *entity.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.books[b.ID] = &cp
}

// InjectFault configura un fallo para las próximas transacciones (nil lo quita).
func (s *Store) InjectFault(f FaultFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = f
}

// SaleCount número de ventas confirmadas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

// DetailCount número total de líneas confirmadas.
func (s *Store) DetailCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, list := range s.details {
		n += len(list)
	}
	return n
}

// RunSales ejecuta fn con un repositorio que acumula escrituras y las aplica solo si fn
// y el commit terminan sin error. Un panic en fn descarta lo acumulado.
func (s *Store) RunSales(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txRepo{
		store:   s,
		sales:   make(map[string]*entity.Sale),
		details: make(map[string][]*entity.SaleDetail),
		calls:   make(map[Op]int),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.check(OpCommit); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.apply(tx)
	return nil
}

// apply requiere mu tomado.
func (s *Store) apply(tx *txRepo) {
	for _, id := range tx.order {
		s.sales[id] = tx.sales[id]
		s.order = append(s.order, id)
	}
	for saleID, list := range tx.details {
		s.details[saleID] = append(s.details[saleID], list...)
	}
	for saleID, total := range tx.totals {
		if sale, ok := s.sales[saleID]; ok {
			sale.Total = total.total
			sale.UpdatedAt = total.at
		}
	}
}

// Create inserta una venta fuera de transacción (autocommit).
func (s *Store) Create(ctx context.Context, sale *entity.Sale) error {
	return s.RunSales(ctx, func(r repository.SaleRepository) error { return r.Create(ctx, sale) })
}

// CreateDetail inserta una línea fuera de transacción (autocommit).
func (s *Store) CreateDetail(ctx context.Context, detail *entity.SaleDetail) error {
	return s.RunSales(ctx, func(r repository.SaleRepository) error { return r.CreateDetail(ctx, detail) })
}

// UpdateTotal actualiza el total fuera de transacción (autocommit).
func (s *Store) UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal, updatedAt time.Time) error {
	return s.RunSales(ctx, func(r repository.SaleRepository) error { return r.UpdateTotal(ctx, saleID, total, updatedAt) })
}

// GetByID implementa repository.SaleRepository.
func (s *Store) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

// GetDetailsBySaleIDs implementa repository.SaleRepository.
func (s *Store) GetDetailsBySaleIDs(_ context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]*entity.SaleDetail, len(saleIDs))
	for _, id := range saleIDs {
		list := s.details[id]
		if len(list) == 0 {
			continue
		}
		cp := make([]*entity.SaleDetail, 0, len(list))
		for _, d := range list {
			dd := *d
			cp = append(cp, &dd)
		}
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].LineNo < cp[j].LineNo })
		out[id] = cp
	}
	return out, nil
}

// List implementa repository.SaleRepository (orden de inserción).
func (s *Store) List(_ context.Context) ([]*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Sale, 0, len(s.order))
	for _, id := range s.order {
		if sale, ok := s.sales[id]; ok {
			out = append(out, cloneSale(sale))
		}
	}
	return out, nil
}

// ListByClient implementa repository.SaleRepository.
func (s *Store) ListByClient(_ context.Context, clientID int64) ([]*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Sale
	for _, id := range s.order {
		if sale, ok := s.sales[id]; ok && sale.ClientID == clientID {
			out = append(out, cloneSale(sale))
		}
	}
	return out, nil
}

// Delete elimina la venta y sus líneas (ON DELETE CASCADE).
func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[id]; !ok {
		return false, nil
	}
	delete(s.sales, id)
	delete(s.details, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Books devuelve la vista de solo lectura del catálogo de libros.
func (s *Store) Books() repository.BookReader {
	return &bookReader{store: s}
}

type bookReader struct {
	store *Store
}

func (r *bookReader) GetByID(_ context.Context, id int64) (*entity.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func cloneSale(s *entity.Sale) *entity.Sale {
	cp := *s
	cp.Details = nil
	return &cp
}

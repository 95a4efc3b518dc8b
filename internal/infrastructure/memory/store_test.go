package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
	"github.com/jhoicas/bookstore-api/internal/infrastructure/memory"
)

func newSale(id string, clientID int64) *entity.Sale {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	return &entity.Sale{ID: id, ClientID: clientID, Date: now, Total: decimal.Zero, CreatedAt: now, UpdatedAt: now}
}

func TestRunSales_CommitHaceVisibleLasFilas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.RunSales(ctx, func(r repository.SaleRepository) error {
		require.NoError(t, r.Create(ctx, newSale("s1", 7)))
		require.NoError(t, r.CreateDetail(ctx, &entity.SaleDetail{ID: "d1", SaleID: "s1", BookID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(3), LineNo: 1}))
		return r.UpdateTotal(ctx, "s1", decimal.NewFromInt(3), time.Now())
	})
	require.NoError(t, err)

	sale, err := store.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 1, store.DetailCount())
}

func TestRunSales_ErrorDescartaTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.RunSales(ctx, func(r repository.SaleRepository) error {
		require.NoError(t, r.Create(ctx, newSale("s1", 7)))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.SaleCount())
}

func TestRunSales_PanicDescartaTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	assert.Panics(t, func() {
		_ = store.RunSales(ctx, func(r repository.SaleRepository) error {
			_ = r.Create(ctx, newSale("s1", 7))
			panic("inesperado")
		})
	})
	assert.Equal(t, 0, store.SaleCount())

	// El lock se liberó: otra transacción funciona.
	require.NoError(t, store.Create(ctx, newSale("s2", 7)))
	assert.Equal(t, 1, store.SaleCount())
}

func TestCreateDetail_SinVentaViolaFK(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.CreateDetail(ctx, &entity.SaleDetail{ID: "d1", SaleID: "no-existe", BookID: 1, Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foreign key")
}

func TestCreateDetail_LibroInexistenteViolaFKSiHayCatalogo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.AddBook(&entity.Book{ID: 1, Title: "1984"})
	require.NoError(t, store.Create(ctx, newSale("s1", 7)))

	err := store.CreateDetail(ctx, &entity.SaleDetail{ID: "d1", SaleID: "s1", BookID: 99, Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sale_detail_id_book_fkey")
}

func TestInjectFault_FallaEnLaLlamadaIndicada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.InjectFault(memory.FailOnCall(memory.OpCommit, 1, errors.New("disk full")))

	err := store.Create(ctx, newSale("s1", 7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 0, store.SaleCount())
}

func TestDelete_EliminaEnCascada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Create(ctx, newSale("s1", 7)))
	require.NoError(t, store.CreateDetail(ctx, &entity.SaleDetail{ID: "d1", SaleID: "s1", BookID: 1, Quantity: 1, LineNo: 1}))

	deleted, err := store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, store.DetailCount())

	deleted, err = store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

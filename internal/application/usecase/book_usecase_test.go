package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBookRepo struct {
	repository.BookRepository
	books      map[int64]*entity.Book
	nextID     int64
	lastFilter entity.BookFilter
	lastLimit  int
	lastOffset int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[int64]*entity.Book{}}
}

func (r *fakeBookRepo) Create(_ context.Context, b *entity.Book) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id int64) (*entity.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *entity.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) List(_ context.Context, limit, offset int) ([]*entity.Book, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return nil, nil
}

func (r *fakeBookRepo) Filter(_ context.Context, f entity.BookFilter, limit, offset int) ([]*entity.Book, error) {
	r.lastFilter = f
	r.lastLimit, r.lastOffset = limit, offset
	return []*entity.Book{}, nil
}

func validBook() dto.BookRequest {
	desc := "Novela del realismo mágico"
	return dto.BookRequest{
		Title:       "Cien años de soledad",
		AuthorID:    1,
		ISBN:        "978-0307474728",
		EditorialID: 1,
		CategoryID:  1,
		Price:       decimal.RequireFromString("22.00"),
		Stock:       10,
		ReleaseDate: "1967-05-30",
		Language:    "Español",
		Image:       "cien.jpg",
		Description: &desc,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestBook_CreateYUpdateConservaDescripcion(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewBookUseCase(newFakeBookRepo())

	created, err := uc.Create(ctx, validBook())
	require.NoError(t, err)
	assert.Equal(t, "1967-05-30", created.ReleaseDate)

	upd := validBook()
	upd.Description = nil
	upd.Stock = 3
	out, err := uc.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Stock)
	assert.Equal(t, "Novela del realismo mágico", out.Description)
}

func TestBook_Validacion(t *testing.T) {
	uc := usecase.NewBookUseCase(newFakeBookRepo())
	mutations := map[string]func(*dto.BookRequest){
		"sin título":     func(b *dto.BookRequest) { b.Title = " " },
		"stock negativo": func(b *dto.BookRequest) { b.Stock = -1 },
		"precio negativo": func(b *dto.BookRequest) {
			b.Price = decimal.RequireFromString("-1")
		},
		"fecha inválida": func(b *dto.BookRequest) { b.ReleaseDate = "30/05/1967" },
		"sin autor":      func(b *dto.BookRequest) { b.AuthorID = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validBook()
			mutate(&in)
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestBook_GetInexistente(t *testing.T) {
	uc := usecase.NewBookUseCase(newFakeBookRepo())
	_, err := uc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(context.Background(), 99, validBook())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseBookFilter_ComodinAll(t *testing.T) {
	f, err := usecase.ParseBookFilter(dto.BookFilterQuery{CategoryID: "all", Language: "ALL", MinPrice: "all", MaxPrice: "50"})
	require.NoError(t, err)
	assert.Zero(t, f.CategoryID)
	assert.Empty(t, f.Language)
	assert.Nil(t, f.MinPrice, "el rango exige ambos extremos")
	assert.Nil(t, f.MaxPrice)
}

func TestParseBookFilter_Completo(t *testing.T) {
	f, err := usecase.ParseBookFilter(dto.BookFilterQuery{CategoryID: "3", Language: "Español", MinPrice: "10", MaxPrice: "25.50"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.CategoryID)
	assert.Equal(t, "Español", f.Language)
	require.NotNil(t, f.MinPrice)
	assert.True(t, f.MaxPrice.Equal(decimal.RequireFromString("25.5")))
}

func TestParseBookFilter_Invalido(t *testing.T) {
	cases := []dto.BookFilterQuery{
		{CategoryID: "abc"},
		{MinPrice: "x", MaxPrice: "10"},
		{MinPrice: "30", MaxPrice: "10"},
	}
	for _, q := range cases {
		_, err := usecase.ParseBookFilter(q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestBook_ListNormalizaPaginacion(t *testing.T) {
	repo := newFakeBookRepo()
	uc := usecase.NewBookUseCase(repo)

	out, err := uc.List(context.Background(), dto.PageRequest{Limit: 1000, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
	assert.NotNil(t, out.Items)

	_, err = uc.Filter(context.Background(), dto.BookFilterQuery{Language: "Inglés"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, "Inglés", repo.lastFilter.Language)
}

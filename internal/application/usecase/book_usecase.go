package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

const (
	releaseDateLayout = "2006-01-02"
	filterAll         = "all"
	randomBooksLimit  = 10
)

// BookUseCase casos de uso del catálogo de libros.
type BookUseCase struct {
	repo repository.BookRepository
	now  func() time.Time
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository) *BookUseCase {
	return &BookUseCase{repo: repo, now: time.Now}
}

// Create crea un libro. Autor, editorial o categoría inexistentes -> ErrInvalidInput.
func (uc *BookUseCase) Create(ctx context.Context, in dto.BookRequest) (*dto.BookResponse, error) {
	b := &entity.Book{}
	if err := applyBook(b, in); err != nil {
		return nil, err
	}
	b.CreatedAt = uc.now()
	b.UpdatedAt = b.CreatedAt
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

// GetByID busca un libro por id (POST /books/search).
func (uc *BookUseCase) GetByID(ctx context.Context, id int64) (*dto.BookResponse, error) {
	return bookOrNotFound(uc.repo.GetByID(ctx, id))
}

// Update reemplaza los datos del libro. Si description no viene, se conserva.
func (uc *BookUseCase) Update(ctx context.Context, id int64, in dto.BookRequest) (*dto.BookResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyBook(b, in); err != nil {
		return nil, err
	}
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

func (uc *BookUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *BookUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.BookResponse], error) {
	page.Normalize()
	return pagedBooks(uc.repo.List(ctx, page.Limit, page.Offset))(page)
}

// ListByAuthor libros de un autor, paginados.
func (uc *BookUseCase) ListByAuthor(ctx context.Context, authorID int64, page dto.PageRequest) (*dto.ListResponse[dto.BookResponse], error) {
	page.Normalize()
	return pagedBooks(uc.repo.ListByAuthor(ctx, authorID, page.Limit, page.Offset))(page)
}

func (uc *BookUseCase) FindFirstByEditorial(ctx context.Context, editorialID int64) (*dto.BookResponse, error) {
	return bookOrNotFound(uc.repo.FindFirstByEditorial(ctx, editorialID))
}

func (uc *BookUseCase) FindFirstByCategory(ctx context.Context, categoryID int64) (*dto.BookResponse, error) {
	return bookOrNotFound(uc.repo.FindFirstByCategory(ctx, categoryID))
}

func (uc *BookUseCase) FindByTitle(ctx context.Context, title string) (*dto.BookResponse, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	}
	return bookOrNotFound(uc.repo.FindByTitle(ctx, strings.TrimSpace(title)))
}

// Filter aplica category_id, language y rango de precio. El rango solo se aplica
// cuando vienen ambos extremos.
func (uc *BookUseCase) Filter(ctx context.Context, q dto.BookFilterQuery, page dto.PageRequest) (*dto.ListResponse[dto.BookResponse], error) {
	f, err := ParseBookFilter(q)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	return pagedBooks(uc.repo.Filter(ctx, f, page.Limit, page.Offset))(page)
}

// Random devuelve hasta 10 libros al azar.
func (uc *BookUseCase) Random(ctx context.Context) ([]dto.BookResponse, error) {
	list, err := uc.repo.Random(ctx, randomBooksLimit)
	if err != nil {
		return nil, err
	}
	return toBookResponses(list), nil
}

// ParseBookFilter convierte los parámetros de consulta en entity.BookFilter.
func ParseBookFilter(q dto.BookFilterQuery) (entity.BookFilter, error) {
	var f entity.BookFilter
	if v := filterValue(q.CategoryID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("%w: category_id inválido", domain.ErrInvalidInput)
		}
		f.CategoryID = id
	}
	f.Language = filterValue(q.Language)

	minV, maxV := filterValue(q.MinPrice), filterValue(q.MaxPrice)
	if minV != "" && maxV != "" {
		minP, err := decimal.NewFromString(minV)
		if err != nil {
			return f, fmt.Errorf("%w: min_price inválido", domain.ErrInvalidInput)
		}
		maxP, err := decimal.NewFromString(maxV)
		if err != nil {
			return f, fmt.Errorf("%w: max_price inválido", domain.ErrInvalidInput)
		}
		if minP.GreaterThan(maxP) {
			return f, fmt.Errorf("%w: min_price mayor que max_price", domain.ErrInvalidInput)
		}
		f.MinPrice, f.MaxPrice = &minP, &maxP
	}
	return f, nil
}

func filterValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, filterAll) {
		return ""
	}
	return s
}

func applyBook(b *entity.Book, in dto.BookRequest) error {
	var err error
	if b.Title, err = requireString("title", in.Title, maxStringLen); err != nil {
		return err
	}
	if b.ISBN, err = requireString("isbn", in.ISBN, maxStringLen); err != nil {
		return err
	}
	if b.Language, err = requireString("language", in.Language, maxStringLen); err != nil {
		return err
	}
	if b.Image, err = requireString("image", in.Image, maxStringLen); err != nil {
		return err
	}
	if err := requireID("author_id", in.AuthorID); err != nil {
		return err
	}
	if err := requireID("editorial_id", in.EditorialID); err != nil {
		return err
	}
	if err := requireID("category_id", in.CategoryID); err != nil {
		return err
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	rd, err := time.Parse(releaseDateLayout, strings.TrimSpace(in.ReleaseDate))
	if err != nil {
		return fmt.Errorf("%w: release_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if in.Description != nil {
		if b.Description, err = optionalString("description", *in.Description, maxDescriptionLen); err != nil {
			return err
		}
	}
	b.AuthorID = in.AuthorID
	b.EditorialID = in.EditorialID
	b.CategoryID = in.CategoryID
	b.Stock = in.Stock
	b.Price = in.Price
	b.ReleaseDate = rd
	return nil
}

func pagedBooks(list []*entity.Book, err error) func(dto.PageRequest) (*dto.ListResponse[dto.BookResponse], error) {
	return func(page dto.PageRequest) (*dto.ListResponse[dto.BookResponse], error) {
		if err != nil {
			return nil, err
		}
		return &dto.ListResponse[dto.BookResponse]{
			Items: toBookResponses(list),
			Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
		}, nil
	}
}

func bookOrNotFound(b *entity.Book, err error) (*dto.BookResponse, error) {
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBookResponse(b), nil
}

func toBookResponse(b *entity.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		AuthorName:    b.AuthorName,
		ISBN:          b.ISBN,
		EditorialID:   b.EditorialID,
		EditorialName: b.EditorialName,
		CategoryID:    b.CategoryID,
		CategoryName:  b.CategoryName,
		Price:         b.Price,
		Stock:         b.Stock,
		ReleaseDate:   b.ReleaseDate.Format(releaseDateLayout),
		Language:      b.Language,
		Image:         b.Image,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookResponses(list []*entity.Book) []dto.BookResponse {
	out := make([]dto.BookResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBookResponse(b))
	}
	return out
}

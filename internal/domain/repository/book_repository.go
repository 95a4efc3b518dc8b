package repository

import (
	"context"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

// BookReader es la parte de solo lectura que necesitan otros módulos (ventas, recibos).
type BookReader interface {
	GetByID(ctx context.Context, id int64) (*entity.Book, error)
}

// BookRepository define el puerto de persistencia para Book (DIP).
type BookRepository interface {
	BookReader
	Create(ctx context.Context, book *entity.Book) error
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.Book, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*entity.Book, error)
	FindFirstByEditorial(ctx context.Context, editorialID int64) (*entity.Book, error)
	FindFirstByCategory(ctx context.Context, categoryID int64) (*entity.Book, error)
	FindByTitle(ctx context.Context, title string) (*entity.Book, error)
	Filter(ctx context.Context, f entity.BookFilter, limit, offset int) ([]*entity.Book, error)
	Random(ctx context.Context, limit int) ([]*entity.Book, error)
}

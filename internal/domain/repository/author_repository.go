package repository

import (
	"context"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

// AuthorRepository define el puerto de persistencia para Author (DIP).
type AuthorRepository interface {
	Create(ctx context.Context, author *entity.Author) error
	GetByID(ctx context.Context, id int64) (*entity.Author, error)
	Update(ctx context.Context, author *entity.Author) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.Author, error)
	FindByName(ctx context.Context, name string) (*entity.Author, error)
	FindByLastName(ctx context.Context, lastName string) (*entity.Author, error)
	FindByNationality(ctx context.Context, nationality string) ([]*entity.Author, error)
}

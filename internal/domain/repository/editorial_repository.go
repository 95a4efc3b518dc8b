package repository

import (
	"context"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

// EditorialRepository define el puerto de persistencia para Editorial (DIP).
type EditorialRepository interface {
	Create(ctx context.Context, editorial *entity.Editorial) error
	GetByID(ctx context.Context, id int64) (*entity.Editorial, error)
	Update(ctx context.Context, editorial *entity.Editorial) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.Editorial, error)
	FindByName(ctx context.Context, name string) (*entity.Editorial, error)
	FindByCountry(ctx context.Context, country string) ([]*entity.Editorial, error)
}

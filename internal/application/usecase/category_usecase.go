package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

const maxDescriptionLen = 10000

// CategoryUseCase casos de uso CRUD de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, now: time.Now}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	c.CreatedAt = uc.now()
	c.UpdatedAt = c.CreatedAt
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	return categoryOrNotFound(uc.repo.GetByID(ctx, id))
}

func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.CategoryResponse], error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return &dto.ListResponse[dto.CategoryResponse]{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *CategoryUseCase) FindByName(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	return categoryOrNotFound(uc.repo.FindByName(ctx, name))
}

func applyCategory(c *entity.Category, in dto.CategoryRequest) error {
	var err error
	if c.Name, err = requireString("name", in.Name, maxStringLen); err != nil {
		return err
	}
	if c.Description, err = requireString("description", in.Description, maxDescriptionLen); err != nil {
		return err
	}
	return nil
}

func categoryOrNotFound(c *entity.Category, err error) (*dto.CategoryResponse, error) {
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

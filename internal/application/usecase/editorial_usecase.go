package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

// EditorialUseCase casos de uso CRUD y búsquedas de editoriales.
type EditorialUseCase struct {
	repo repository.EditorialRepository
	now  func() time.Time
}

// NewEditorialUseCase construye el caso de uso.
func NewEditorialUseCase(repo repository.EditorialRepository) *EditorialUseCase {
	return &EditorialUseCase{repo: repo, now: time.Now}
}

// Create crea una editorial. Nombre duplicado -> ErrDuplicate.
func (uc *EditorialUseCase) Create(ctx context.Context, in dto.EditorialRequest) (*dto.EditorialResponse, error) {
	e := &entity.Editorial{}
	if err := applyEditorial(e, in); err != nil {
		return nil, err
	}
	e.CreatedAt = uc.now()
	e.UpdatedAt = e.CreatedAt
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEditorialResponse(e), nil
}

func (uc *EditorialUseCase) GetByID(ctx context.Context, id int64) (*dto.EditorialResponse, error) {
	return editorialOrNotFound(uc.repo.GetByID(ctx, id))
}

func (uc *EditorialUseCase) Update(ctx context.Context, id int64, in dto.EditorialRequest) (*dto.EditorialResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyEditorial(e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEditorialResponse(e), nil
}

func (uc *EditorialUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *EditorialUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.EditorialResponse], error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.EditorialResponse]{
		Items: toEditorialResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *EditorialUseCase) FindByName(ctx context.Context, name string) (*dto.EditorialResponse, error) {
	return editorialOrNotFound(uc.repo.FindByName(ctx, name))
}

// FindByCountry editoriales de un país (posiblemente vacío).
func (uc *EditorialUseCase) FindByCountry(ctx context.Context, country string) ([]dto.EditorialResponse, error) {
	list, err := uc.repo.FindByCountry(ctx, country)
	if err != nil {
		return nil, err
	}
	return toEditorialResponses(list), nil
}

func applyEditorial(e *entity.Editorial, in dto.EditorialRequest) error {
	var err error
	if e.Name, err = requireString("name", in.Name, maxStringLen); err != nil {
		return err
	}
	if e.Country, err = requireString("country", in.Country, maxStringLen); err != nil {
		return err
	}
	if e.Website, err = optionalString("website", in.Website, maxStringLen); err != nil {
		return err
	}
	if e.Website != "" {
		u, perr := url.Parse(e.Website)
		if perr != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: website debe ser una URL http(s)", domain.ErrInvalidInput)
		}
	}
	return nil
}

func editorialOrNotFound(e *entity.Editorial, err error) (*dto.EditorialResponse, error) {
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEditorialResponse(e), nil
}

func toEditorialResponse(e *entity.Editorial) *dto.EditorialResponse {
	return &dto.EditorialResponse{
		ID:        e.ID,
		Name:      e.Name,
		Country:   e.Country,
		Website:   e.Website,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEditorialResponses(list []*entity.Editorial) []dto.EditorialResponse {
	out := make([]dto.EditorialResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEditorialResponse(e))
	}
	return out
}

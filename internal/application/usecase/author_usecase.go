package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

// AuthorUseCase casos de uso CRUD y búsquedas de autores.
type AuthorUseCase struct {
	repo repository.AuthorRepository
	now  func() time.Time
}

// NewAuthorUseCase construye el caso de uso.
func NewAuthorUseCase(repo repository.AuthorRepository) *AuthorUseCase {
	return &AuthorUseCase{repo: repo, now: time.Now}
}

// Create crea un autor.
func (uc *AuthorUseCase) Create(ctx context.Context, in dto.AuthorRequest) (*dto.AuthorResponse, error) {
	author := &entity.Author{}
	if err := applyAuthor(author, in); err != nil {
		return nil, err
	}
	author.CreatedAt = uc.now()
	author.UpdatedAt = author.CreatedAt
	if err := uc.repo.Create(ctx, author); err != nil {
		return nil, err
	}
	return toAuthorResponse(author), nil
}

// GetByID obtiene un autor. ErrNotFound si no existe.
func (uc *AuthorUseCase) GetByID(ctx context.Context, id int64) (*dto.AuthorResponse, error) {
	author, err := uc.repo.GetByID(ctx, id)
	return authorOrNotFound(author, err)
}

// Update reemplaza los datos de un autor.
func (uc *AuthorUseCase) Update(ctx context.Context, id int64, in dto.AuthorRequest) (*dto.AuthorResponse, error) {
	author, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyAuthor(author, in); err != nil {
		return nil, err
	}
	author.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, author); err != nil {
		return nil, err
	}
	return toAuthorResponse(author), nil
}

// Delete elimina un autor.
func (uc *AuthorUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List lista autores paginados.
func (uc *AuthorUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.AuthorResponse], error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.AuthorResponse]{
		Items: toAuthorResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// FindByName primer autor con ese nombre.
func (uc *AuthorUseCase) FindByName(ctx context.Context, name string) (*dto.AuthorResponse, error) {
	return authorOrNotFound(uc.repo.FindByName(ctx, name))
}

// FindByLastName primer autor con ese apellido.
func (uc *AuthorUseCase) FindByLastName(ctx context.Context, lastName string) (*dto.AuthorResponse, error) {
	return authorOrNotFound(uc.repo.FindByLastName(ctx, lastName))
}

// FindByNationality autores de una nacionalidad (posiblemente vacío).
func (uc *AuthorUseCase) FindByNationality(ctx context.Context, nationality string) ([]dto.AuthorResponse, error) {
	list, err := uc.repo.FindByNationality(ctx, nationality)
	if err != nil {
		return nil, err
	}
	return toAuthorResponses(list), nil
}

func applyAuthor(a *entity.Author, in dto.AuthorRequest) error {
	var err error
	if a.Name, err = requireString("name", in.Name, maxStringLen); err != nil {
		return err
	}
	if a.LastName, err = requireString("last_name", in.LastName, maxStringLen); err != nil {
		return err
	}
	if a.Nationality, err = requireString("nationality", in.Nationality, maxStringLen); err != nil {
		return err
	}
	return nil
}

func authorOrNotFound(a *entity.Author, err error) (*dto.AuthorResponse, error) {
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAuthorResponse(a), nil
}

func toAuthorResponse(a *entity.Author) *dto.AuthorResponse {
	return &dto.AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		LastName:    a.LastName,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAuthorResponses(list []*entity.Author) []dto.AuthorResponse {
	out := make([]dto.AuthorResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAuthorResponse(a))
	}
	return out
}

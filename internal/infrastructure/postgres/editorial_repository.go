package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

var _ repository.EditorialRepository = (*EditorialRepo)(nil)

const editorialColumns = `id, name, country, website, created_at, updated_at`

// EditorialRepo implementación del puerto EditorialRepository sobre PostgreSQL.
type EditorialRepo struct {
	q Querier
}

// NewEditorialRepository construye el adaptador de persistencia para editoriales.
func NewEditorialRepository(q Querier) *EditorialRepo {
	return &EditorialRepo{q: q}
}

// Create persiste una editorial. El nombre es único.
func (r *EditorialRepo) Create(ctx context.Context, e *entity.Editorial) error {
	query := `
		INSERT INTO editorials (name, country, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, e.Name, e.Country, nullIfEmpty(e.Website), e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert editorial: %w", err)
	}
	return nil
}

// GetByID obtiene una editorial por ID.
func (r *EditorialRepo) GetByID(ctx context.Context, id int64) (*entity.Editorial, error) {
	return r.findOne(ctx, `SELECT `+editorialColumns+` FROM editorials WHERE id = $1`, id)
}

// Update actualiza una editorial.
func (r *EditorialRepo) Update(ctx context.Context, e *entity.Editorial) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE editorials SET name = $2, country = $3, website = $4, updated_at = $5 WHERE id = $1`,
		e.ID, e.Name, e.Country, nullIfEmpty(e.Website), e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update editorial: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una editorial sin libros asociados.
func (r *EditorialRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM editorials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete editorial: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista editoriales con paginación.
func (r *EditorialRepo) List(ctx context.Context, limit, offset int) ([]*entity.Editorial, error) {
	return r.findMany(ctx, `SELECT `+editorialColumns+` FROM editorials ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

// FindByName busca por nombre exacto.
func (r *EditorialRepo) FindByName(ctx context.Context, name string) (*entity.Editorial, error) {
	return r.findOne(ctx, `SELECT `+editorialColumns+` FROM editorials WHERE name = $1`, name)
}

// FindByCountry todas las editoriales de un país.
func (r *EditorialRepo) FindByCountry(ctx context.Context, country string) ([]*entity.Editorial, error) {
	return r.findMany(ctx, `SELECT `+editorialColumns+` FROM editorials WHERE country = $1 ORDER BY id`, country)
}

func (r *EditorialRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Editorial, error) {
	var e entity.Editorial
	var website *string
	err := r.q.QueryRow(ctx, query, args...).Scan(&e.ID, &e.Name, &e.Country, &website, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get editorial: %w", err)
	}
	e.Website = derefString(website)
	return &e, nil
}

func (r *EditorialRepo) findMany(ctx context.Context, query string, args ...any) ([]*entity.Editorial, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list editorials: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Editorial, 0)
	for rows.Next() {
		var e entity.Editorial
		var website *string
		if err := rows.Scan(&e.ID, &e.Name, &e.Country, &website, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan editorial: %w", err)
		}
		e.Website = derefString(website)
		list = append(list, &e)
	}
	return list, rows.Err()
}

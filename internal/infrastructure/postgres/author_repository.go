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

var _ repository.AuthorRepository = (*AuthorRepo)(nil)

const authorColumns = `id, name, last_name, nationality, created_at, updated_at`

// AuthorRepo implementación del puerto AuthorRepository sobre PostgreSQL.
type AuthorRepo struct {
	q Querier
}

// NewAuthorRepository construye el adaptador de persistencia para autores.
func NewAuthorRepository(q Querier) *AuthorRepo {
	return &AuthorRepo{q: q}
}

// Create persiste un autor y asigna el ID generado.
func (r *AuthorRepo) Create(ctx context.Context, a *entity.Author) error {
	query := `
		INSERT INTO authors (name, last_name, nationality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, a.Name, a.LastName, a.Nationality, a.CreatedAt, a.UpdatedAt).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

// GetByID obtiene un autor por ID.
func (r *AuthorRepo) GetByID(ctx context.Context, id int64) (*entity.Author, error) {
	return r.findOne(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
}

// Update actualiza un autor. ErrNotFound si no existe.
func (r *AuthorRepo) Update(ctx context.Context, a *entity.Author) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE authors SET name = $2, last_name = $3, nationality = $4, updated_at = $5 WHERE id = $1`,
		a.ID, a.Name, a.LastName, a.Nationality, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un autor. ErrInUse si tiene libros.
func (r *AuthorRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete author: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista autores con paginación.
func (r *AuthorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Author, error) {
	return r.findMany(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

// FindByName primer autor cuyo nombre coincide exactamente.
func (r *AuthorRepo) FindByName(ctx context.Context, name string) (*entity.Author, error) {
	return r.findOne(ctx, `SELECT `+authorColumns+` FROM authors WHERE name = $1 ORDER BY id LIMIT 1`, name)
}

// FindByLastName primer autor con ese apellido.
func (r *AuthorRepo) FindByLastName(ctx context.Context, lastName string) (*entity.Author, error) {
	return r.findOne(ctx, `SELECT `+authorColumns+` FROM authors WHERE last_name = $1 ORDER BY id LIMIT 1`, lastName)
}

// FindByNationality todos los autores de una nacionalidad.
func (r *AuthorRepo) FindByNationality(ctx context.Context, nationality string) ([]*entity.Author, error) {
	return r.findMany(ctx, `SELECT `+authorColumns+` FROM authors WHERE nationality = $1 ORDER BY id`, nationality)
}

func (r *AuthorRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Author, error) {
	var a entity.Author
	err := r.q.QueryRow(ctx, query, args...).Scan(&a.ID, &a.Name, &a.LastName, &a.Nationality, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get author: %w", err)
	}
	return &a, nil
}

func (r *AuthorRepo) findMany(ctx context.Context, query string, args ...any) ([]*entity.Author, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Author, 0)
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.LastName, &a.Nationality, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

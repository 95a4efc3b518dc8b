package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// Consulta base con los nombres de autor, editorial y categoría.
const bookSelect = `
	SELECT b.id, b.title, b.id_author, b.isbn, b.id_editorial, b.id_category,
	       b.price, b.stock, b.release_date, b.language, b.image, b.description,
	       COALESCE(a.name || ' ' || a.last_name, ''), COALESCE(e.name, ''), COALESCE(c.name, ''),
	       b.created_at, b.updated_at
	FROM books b
	LEFT JOIN authors a ON a.id = b.id_author
	LEFT JOIN editorials e ON e.id = b.id_editorial
	LEFT JOIN categories c ON c.id = b.id_category`

// BookRepo implementación del puerto BookRepository sobre PostgreSQL.
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador de persistencia para libros.
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

// Create persiste un libro. ISBN es único; autor, editorial y categoría deben existir.
func (r *BookRepo) Create(ctx context.Context, b *entity.Book) error {
	query := `
		INSERT INTO books (title, id_author, isbn, id_editorial, id_category, price, stock, release_date, language, image, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		b.Title, b.AuthorID, b.ISBN, b.EditorialID, b.CategoryID, b.Price, b.Stock,
		b.ReleaseDate, b.Language, nullIfEmpty(b.Image), nullIfEmpty(b.Description),
		b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return mapBookWriteError("insert book", err)
	}
	return nil
}

// GetByID obtiene un libro por ID (findBookById).
func (r *BookRepo) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	return r.findOne(ctx, bookSelect+` WHERE b.id = $1`, id)
}

// Update actualiza un libro existente.
func (r *BookRepo) Update(ctx context.Context, b *entity.Book) error {
	query := `
		UPDATE books SET title = $2, id_author = $3, isbn = $4, id_editorial = $5, id_category = $6,
		       price = $7, stock = $8, release_date = $9, language = $10, image = $11, description = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.Title, b.AuthorID, b.ISBN, b.EditorialID, b.CategoryID, b.Price, b.Stock,
		b.ReleaseDate, b.Language, nullIfEmpty(b.Image), nullIfEmpty(b.Description), b.UpdatedAt,
	)
	if err != nil {
		return mapBookWriteError("update book", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un libro. Si ya aparece en ventas devuelve ErrInUse.
func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete book: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista libros con paginación.
func (r *BookRepo) List(ctx context.Context, limit, offset int) ([]*entity.Book, error) {
	return r.findMany(ctx, bookSelect+` ORDER BY b.id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByAuthor libros de un autor con paginación.
func (r *BookRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*entity.Book, error) {
	return r.findMany(ctx, bookSelect+` WHERE b.id_author = $1 ORDER BY b.id LIMIT $2 OFFSET $3`, authorID, limit, offset)
}

// FindFirstByEditorial primer libro de la editorial.
func (r *BookRepo) FindFirstByEditorial(ctx context.Context, editorialID int64) (*entity.Book, error) {
	return r.findOne(ctx, bookSelect+` WHERE b.id_editorial = $1 ORDER BY b.id LIMIT 1`, editorialID)
}

// FindFirstByCategory primer libro de la categoría.
func (r *BookRepo) FindFirstByCategory(ctx context.Context, categoryID int64) (*entity.Book, error) {
	return r.findOne(ctx, bookSelect+` WHERE b.id_category = $1 ORDER BY b.id LIMIT 1`, categoryID)
}

// FindByTitle primer libro cuyo título contiene el texto (sin distinguir mayúsculas).
func (r *BookRepo) FindByTitle(ctx context.Context, title string) (*entity.Book, error) {
	return r.findOne(ctx, bookSelect+` WHERE b.title ILIKE $1 ORDER BY b.id LIMIT 1`, likePattern(title))
}

// Filter aplica los criterios de BookFilter. El rango de precio solo aplica con ambos extremos.
func (r *BookRepo) Filter(ctx context.Context, f entity.BookFilter, limit, offset int) ([]*entity.Book, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID > 0 {
		add("b.id_category = $%d", f.CategoryID)
	}
	if f.Language != "" {
		add("lower(b.language) = lower($%d)", f.Language)
	}
	if f.MinPrice != nil && f.MaxPrice != nil {
		add("b.price >= $%d", *f.MinPrice)
		add("b.price <= $%d", *f.MaxPrice)
	}

	query := bookSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY b.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.findMany(ctx, query, args...)
}

// Random devuelve hasta limit libros en orden aleatorio.
func (r *BookRepo) Random(ctx context.Context, limit int) ([]*entity.Book, error) {
	return r.findMany(ctx, bookSelect+` ORDER BY random() LIMIT $1`, limit)
}

func (r *BookRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Book, error) {
	b, err := scanBook(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *BookRepo) findMany(ctx context.Context, query string, args ...any) ([]*entity.Book, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBook(row pgx.Row) (*entity.Book, error) {
	var b entity.Book
	var image, description *string
	err := row.Scan(
		&b.ID, &b.Title, &b.AuthorID, &b.ISBN, &b.EditorialID, &b.CategoryID,
		&b.Price, &b.Stock, &b.ReleaseDate, &b.Language, &image, &description,
		&b.AuthorName, &b.EditorialName, &b.CategoryName,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Image = derefString(image)
	b.Description = derefString(description)
	return &b, nil
}

func mapBookWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: autor, editorial o categoría inexistente", domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

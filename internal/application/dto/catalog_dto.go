package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthorRequest body para POST/PUT /api/authors.
type AuthorRequest struct {
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	Nationality string `json:"nationality"`
}

// AuthorResponse autor en respuestas.
type AuthorResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LastName    string    `json:"last_name"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EditorialRequest body para POST/PUT /api/editorials.
type EditorialRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Website string `json:"website"`
}

// EditorialResponse editorial en respuestas.
type EditorialResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRequest body para POST/PUT /api/categories.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookRequest body para POST/PUT /api/books. ReleaseDate en formato YYYY-MM-DD.
type BookRequest struct {
	Title       string          `json:"title"`
	AuthorID    int64           `json:"author_id"`
	ISBN        string          `json:"isbn"`
	EditorialID int64           `json:"editorial_id"`
	CategoryID  int64           `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ReleaseDate string          `json:"release_date"`
	Language    string          `json:"language"`
	Image       string          `json:"image"`
	Description *string         `json:"description,omitempty"`
}

// BookResponse libro en respuestas (nombres relacionados solo en listados con JOIN).
type BookResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	AuthorID      int64           `json:"author_id"`
	AuthorName    string          `json:"author_name,omitempty"`
	ISBN          string          `json:"isbn"`
	EditorialID   int64           `json:"editorial_id"`
	EditorialName string          `json:"editorial_name,omitempty"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	ReleaseDate   string          `json:"release_date"`
	Language      string          `json:"language"`
	Image         string          `json:"image"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookSearchRequest body para POST /api/books/search.
type BookSearchRequest struct {
	ID int64 `json:"id"`
}

// ListResponse listado paginado genérico del catálogo.
type ListResponse[T any] struct {
	Items []T          `json:"data"`
	Page  PageResponse `json:"page"`
}

// BookFilterQuery parámetros de /api/books/filters. "all" o vacío = sin filtro.
type BookFilterQuery struct {
	CategoryID string `query:"category_id"`
	Language   string `query:"language"`
	MinPrice   string `query:"min_price"`
	MaxPrice   string `query:"max_price"`
}

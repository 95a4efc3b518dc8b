package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book representa un libro del catálogo.
// AuthorName, EditorialName y CategoryName solo se llenan en consultas con JOIN.
type Book struct {
	ID            int64
	Title         string
	AuthorID      int64
	ISBN          string
	EditorialID   int64
	CategoryID    int64
	Price         decimal.Decimal
	Stock         int
	ReleaseDate   time.Time
	Language      string
	Image         string
	Description   string
	AuthorName    string
	EditorialName string
	CategoryName  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookFilter criterios de /books/filters. Campos vacíos o "all" no filtran.
type BookFilter struct {
	CategoryID int64
	Language   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

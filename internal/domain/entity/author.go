package entity

import "time"

// Author representa un autor del catálogo.
type Author struct {
	ID          int64
	Name        string
	LastName    string
	Nationality string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

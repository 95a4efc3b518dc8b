package entity

import "time"

// Editorial representa una casa editorial.
type Editorial struct {
	ID        int64
	Name      string
	Country   string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

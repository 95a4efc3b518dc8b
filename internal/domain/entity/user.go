package entity

import "time"

// User representa un usuario autenticable. Su ID es el id_client de las ventas.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

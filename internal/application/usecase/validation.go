package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/bookstore-api/internal/domain"
)

const maxStringLen = 255

// requireString valida un campo obligatorio de texto y devuelve el valor sin espacios extremos.
func requireString(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(v) > max {
		return "", fmt.Errorf("%w: %s admite máximo %d caracteres", domain.ErrInvalidInput, field, max)
	}
	return v, nil
}

// optionalString valida longitud de un campo opcional.
func optionalString(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) > max {
		return "", fmt.Errorf("%w: %s admite máximo %d caracteres", domain.ErrInvalidInput, field, max)
	}
	return v, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, field)
	}
	return nil
}

package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/fims/internal/domain"
)

// DateLayout formato de fechas en los bodies (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha YYYY-MM-DD en UTC; vacío devuelve el tiempo cero.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

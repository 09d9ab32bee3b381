package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ParseMonth interpreta "01".."12" (ou "1".."12") como mês do calendário
func ParseMonth(value string) (time.Month, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("mês vazio")
	}

	n, err := cast.ToIntE(strings.TrimLeft(value, "0"))
	if err != nil || n < 1 || n > 12 {
		return 0, fmt.Errorf("mês inválido: %q", value)
	}

	return time.Month(n), nil
}

// MonthRange retorna [início, fim) do mês no ano e fuso informados
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseFloat converte texto numérico do Graph API; ok é false quando o valor não é número finito
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// ParseInt aceita inteiros e valores decimais ("12.0"), truncando a parte fracionária.
// Valores fora do intervalo de int64 retornam ok false.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}

	f, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}

	// float64(math.MaxInt64) arredonda para 2^63, fora do intervalo de int64
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

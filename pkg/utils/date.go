package utils

import "regexp"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsISODate verifica o formato YYYY-MM-DD sem validar o calendário
func IsISODate(dateStr string) bool {
	return isoDatePattern.MatchString(dateStr)
}

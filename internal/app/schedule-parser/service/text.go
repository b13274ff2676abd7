package schedule_parser_service

import (
	"regexp"
	"strings"
)

var spacesRegex = regexp.MustCompile(`\s+`)

// trimAll схлопывает пробелы и переводы строк в один пробел
func trimAll(s string) string {
	return strings.TrimSpace(spacesRegex.ReplaceAllString(s, " "))
}

// stripSpaces убирает все пробельные символы
func stripSpaces(s string) string {
	return spacesRegex.ReplaceAllString(s, "")
}

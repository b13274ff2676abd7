package app

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnconfigured = errors.New("schedule source is not configured")

	ErrMissingTimeRange         = errors.New("lesson time range is missing")
	ErrSubgroupCabinetMismatch  = errors.New("cabinet count does not match subgroup count")
	ErrTeacherExtractionParadox = errors.New("teacher list matched but no teacher was extracted")

	ErrUnknownGroup     = errors.New("group not found")
	ErrUnknownTeacher   = errors.New("teacher not found")
	ErrOverrideNotFound = errors.New("schedule override not found")
	ErrEmptyOverride    = errors.New("schedule override file is empty")
)

// ProbeErrorKind причина отказа источника
type ProbeErrorKind int

const (
	ProbeBadStatus ProbeErrorKind = iota
	ProbeBadContentType
	ProbeMissingMetadata
)

// ProbeError ответ источника не прошёл проверку
type ProbeError struct {
	Kind        ProbeErrorKind
	StatusCode  int
	ContentType string
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case ProbeBadStatus:
		return fmt.Sprintf("schedule source responded with status %d", e.StatusCode)
	case ProbeBadContentType:
		return fmt.Sprintf("schedule source content type %q is not a spreadsheet", e.ContentType)
	default:
		return "schedule source did not return the expected headers"
	}
}

// ParseError структурная ошибка разбора с позицией ячейки
type ParseError struct {
	Row    int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schedule parse error at row %d, column %d: %v", e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(row, column int, err error) *ParseError {
	return &ParseError{Row: row, Column: column, Err: err}
}

// IsStructural ошибка прерывает весь прогон
func IsStructural(err error) bool {
	return errors.Is(err, ErrMissingTimeRange) ||
		errors.Is(err, ErrSubgroupCabinetMismatch) ||
		errors.Is(err, ErrTeacherExtractionParadox)
}

// IsProbeFailure ошибка получения файла
func IsProbeFailure(err error) bool {
	var probeErr *ProbeError
	return errors.As(err, &probeErr)
}

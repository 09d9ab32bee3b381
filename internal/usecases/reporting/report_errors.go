package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMonth = errors.New("invalid month selector")
	ErrExportCSV    = errors.New("error exporting report as csv")
	ErrExportXLSX   = errors.New("error exporting report as xlsx")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

package cataloging

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto do catálogo
var (
	// Erros de validação
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidPromo   = errors.New("invalid promo percent")

	// Erros de estado
	ErrProductNotFound      = errors.New("product not found")
	ErrSubmissionInProgress = errors.New("another submission is in progress")

	// Erros de serviços externos
	ErrImageUpload = errors.New("error uploading image")

	// Erros de armazenamento
	ErrStorage = errors.New("error writing local storage")
	ErrExport  = errors.New("error exporting catalog")
)

// ValidationError aponta o campo rejeitado e o motivo
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// CatalogError é um erro com contexto adicional para o catálogo
type CatalogError struct {
	Err       error             // Erro base
	Code      string            // Código de erro para API
	ProductID string            // ID do produto envolvido (quando aplicável)
	Details   string            // Detalhes adicionais
	Fields    []ValidationError // Campos rejeitados na validação
}

// Error implementa a interface error
func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(err error, code string, details string) *CatalogError {
	return &CatalogError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewCatalogErrorWithID(err error, code string, productID string, details string) *CatalogError {
	return &CatalogError{
		Err:       err,
		Code:      code,
		ProductID: productID,
		Details:   details,
	}
}

func NewValidationError(err error, code string, fields []ValidationError) *CatalogError {
	return &CatalogError{
		Err:     err,
		Code:    code,
		Details: "Verifique os campos informados",
		Fields:  fields,
	}
}

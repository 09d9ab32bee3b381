package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const publicIDCharacters = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewProductID gera a chave estável de um produto
func NewProductID() string {
	return uuid.NewString()
}

// GeneratePublicID gera um identificador curto para recursos enviados ao backend remoto
func GeneratePublicID() (string, error) {
	return gonanoid.Generate(publicIDCharacters, 12)
}

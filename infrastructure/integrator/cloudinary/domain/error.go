package cloudinarydomain

import "errors"

// ErrNotFound indica que o recurso remoto ainda não existe
var ErrNotFound = errors.New("recurso não encontrado no cloudinary")

// ErrorResponse representa a estrutura de erro da API do Cloudinary
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message string `json:"message"`
}

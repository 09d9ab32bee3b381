package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{name: "Validação", code: ErrInvalidRequest, expectedStatus: http.StatusBadRequest},
		{name: "Produto não encontrado", code: ErrProductNotFound, expectedStatus: http.StatusNotFound},
		{name: "Gravação em andamento", code: ErrSubmissionInProgress, expectedStatus: http.StatusConflict},
		{name: "Serviço externo", code: ErrExternalService, expectedStatus: http.StatusBadGateway},
		{name: "Código desconhecido", code: "XYZ", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", map[string]string{"campo": "x"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

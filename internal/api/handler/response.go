package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
	"github.com/vfg2006/catalog-manager-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

func writeAttachment(w http.ResponseWriter, contentType string, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		logrus.WithError(err).Warn("Erro ao enviar arquivo")
	}
}

// writeServiceError traduz os erros dos casos de uso para o corpo padronizado
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var catalogErr *cataloging.CatalogError
	if errors.As(err, &catalogErr) {
		logger.Warn(fallback)

		var details any
		if len(catalogErr.Fields) > 0 {
			details = catalogErr.Fields
		}
		apiErrors.WriteError(w, catalogErr.Code, catalogErr.Error(), details)
		return
	}

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		logger.Warn(fallback)
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
		return
	}

	logger.Error(fallback)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}

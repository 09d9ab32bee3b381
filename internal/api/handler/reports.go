package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/catalog-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func GetReport(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Report(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

func ExportReport(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		month := r.URL.Query().Get("month")
		format := strings.ToLower(r.URL.Query().Get("format"))

		var (
			data        []byte
			err         error
			contentType string
			ext         string
		)

		switch format {
		case "", "csv":
			data, err = service.ExportCSV(r.Context(), month)
			contentType, ext = "text/csv; charset=utf-8", "csv"
		case "xlsx":
			data, err = service.ExportXLSX(r.Context(), month)
			contentType, ext = xlsxContentType, "xlsx"
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato inválido; use csv ou xlsx", nil)
			return
		}

		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar relatório")
			return
		}

		if month == "" {
			month = "all"
		}
		writeAttachment(w, contentType, "relatorio-produtos-"+month+"."+ext, data)
	})
}

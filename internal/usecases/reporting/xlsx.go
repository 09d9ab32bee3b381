package reporting

import (
	"context"
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
)

const reportSheet = "Relatorio"

var xlsxHeader = []string{"Nome", "Categoria", "Preço Original", "Desconto (%)", "Preço Final"}

// ExportXLSX gera a planilha com as linhas do relatório e o resumo ao final
func (s *Service) ExportXLSX(ctx context.Context, selector string) ([]byte, error) {
	report, err := s.Report(ctx, selector)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", reportSheet)

	for i, title := range xlsxHeader {
		f.SetCellValue(reportSheet, cell(i, 1), title)
	}

	for i, row := range report.Rows {
		writeRow(f, i+2, row)
	}

	writeSummary(f, len(report.Rows)+3, report.Summary)

	buf, err := f.WriteToBuffer()
	if err != nil {
		logrus.WithError(err).Error("reporting: falha ao gerar XLSX")
		return nil, NewReportError(ErrExportXLSX, apiErrors.ErrInternalServer, err.Error())
	}

	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, line int, row domain.ReportRow) {
	values := []any{row.Name, row.Category, row.OriginalPrice, row.DiscountPercent, row.FinalPrice}
	for i, v := range values {
		f.SetCellValue(reportSheet, cell(i, line), v)
	}
}

func writeSummary(f *excelize.File, line int, summary domain.ReportSummary) {
	entries := []struct {
		label string
		value any
	}{
		{"Produtos", summary.Count},
		{"Total Original", summary.TotalOriginal},
		{"Total Final", summary.TotalFinal},
		{"Economia", summary.Savings},
		{"Economia (%)", summary.SavingsPercent},
	}

	for i, e := range entries {
		f.SetCellValue(reportSheet, cell(0, line+i), e.label)
		f.SetCellValue(reportSheet, cell(1, line+i), e.value)
	}
}

// cell converte coluna (0 = A) e linha em referência do Excel; o relatório não passa de 26 colunas
func cell(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

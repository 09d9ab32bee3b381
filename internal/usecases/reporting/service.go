package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
	"github.com/vfg2006/catalog-manager-api/pkg/utils"
)

type CatalogLoader interface {
	Load(ctx context.Context) []domain.Product
}

type ReportService interface {
	Report(ctx context.Context, selector string) (*domain.ProductReport, error)
	ExportCSV(ctx context.Context, selector string) ([]byte, error)
	ExportXLSX(ctx context.Context, selector string) ([]byte, error)
}

type Service struct {
	catalog CatalogLoader
	now     func() time.Time
}

func NewService(catalog CatalogLoader) *Service {
	return &Service{
		catalog: catalog,
		now:     time.Now,
	}
}

// Report monta as linhas e o resumo dos produtos do mês selecionado
func (s *Service) Report(ctx context.Context, selector string) (*domain.ProductReport, error) {
	now := s.now()

	matched, err := FilterByMonth(s.catalog.Load(ctx), selector, now)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ReportRow, 0, len(matched))
	for _, p := range matched {
		rows = append(rows, toRow(p))
	}

	return &domain.ProductReport{
		Selector:    normalizeSelector(selector),
		GeneratedAt: now,
		Rows:        rows,
		Summary:     Summarize(matched),
	}, nil
}

// ExportCSV retorna as linhas do relatório em CSV
func (s *Service) ExportCSV(ctx context.Context, selector string) ([]byte, error) {
	report, err := s.Report(ctx, selector)
	if err != nil {
		return nil, err
	}

	data, err := gocsv.MarshalBytes(&report.Rows)
	if err != nil {
		logrus.WithError(err).Error("reporting: falha ao gerar CSV")
		return nil, NewReportError(ErrExportCSV, apiErrors.ErrInternalServer, err.Error())
	}

	return data, nil
}

// FilterByMonth seleciona os produtos criados no mês informado do ano corrente.
// Registros sem createdAt só entram quando o seletor é o mês corrente.
func FilterByMonth(products []domain.Product, selector string, now time.Time) ([]domain.Product, error) {
	selector = normalizeSelector(selector)
	if selector == domain.MonthSelectorAll {
		return products, nil
	}

	month, err := utils.ParseMonth(selector)
	if err != nil {
		return nil, NewReportError(ErrInvalidMonth, apiErrors.ErrInvalidRequest, "Use \"all\" ou um mês entre 01 e 12")
	}

	start, end := utils.MonthRange(now.Year(), month, now.Location())
	isCurrentMonth := month == now.Month()

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.CreatedAt == nil {
			if isCurrentMonth {
				matched = append(matched, p)
			}
			continue
		}

		created := p.CreatedAt.In(now.Location())
		if !created.Before(start) && created.Before(end) {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// Summarize calcula os totais do subconjunto; somas em decimal para não acumular erro de ponto flutuante
func Summarize(products []domain.Product) domain.ReportSummary {
	totalOriginal := decimal.Zero
	totalFinal := decimal.Zero
	finals := make(stats.Float64Data, 0, len(products))

	for _, p := range products {
		final := p.FinalPrice()
		totalOriginal = totalOriginal.Add(decimal.NewFromFloat(p.Price))
		totalFinal = totalFinal.Add(final)
		finals = append(finals, utils.DecimalToFloat(final))
	}

	savings := totalOriginal.Sub(totalFinal)

	summary := domain.ReportSummary{
		Count:         len(products),
		TotalOriginal: utils.DecimalToFloat(totalOriginal),
		TotalFinal:    utils.DecimalToFloat(totalFinal),
		Savings:       utils.DecimalToFloat(savings),
	}

	if !totalOriginal.IsZero() {
		summary.SavingsPercent = utils.DecimalToFloat(savings.Div(totalOriginal).Mul(decimal.NewFromInt(100)))
	}

	if len(finals) > 0 {
		mean, _ := finals.Mean()
		median, _ := finals.Median()
		summary.AverageFinalPrice = utils.RoundWithTwoDecimalPlace(mean)
		summary.MedianFinalPrice = utils.RoundWithTwoDecimalPlace(median)
	}

	return summary
}

func toRow(p domain.Product) domain.ReportRow {
	return domain.ReportRow{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		OriginalPrice:   utils.RoundWithTwoDecimalPlace(p.Price),
		DiscountPercent: p.EffectiveDiscount(),
		FinalPrice:      utils.DecimalToFloat(p.FinalPrice()),
	}
}

func normalizeSelector(selector string) string {
	selector = strings.ToLower(strings.TrimSpace(selector))
	if selector == "" {
		return domain.MonthSelectorAll
	}
	return selector
}

package domain

import "time"

// MonthSelectorAll seleciona todos os produtos no relatório
const MonthSelectorAll = "all"

// ReportRow representa uma linha do relatório de produtos
type ReportRow struct {
	ID              string  `json:"id" csv:"-"`
	Name            string  `json:"name" csv:"Nome"`
	Category        string  `json:"category" csv:"Categoria"`
	OriginalPrice   float64 `json:"original_price" csv:"Preço Original"`
	DiscountPercent int     `json:"discount_percent" csv:"Desconto (%)"`
	FinalPrice      float64 `json:"final_price" csv:"Preço Final"`
}

// ReportSummary contém os totais do subconjunto filtrado
type ReportSummary struct {
	Count             int     `json:"count"`
	TotalOriginal     float64 `json:"total_original"`
	TotalFinal        float64 `json:"total_final"`
	Savings           float64 `json:"savings"`
	SavingsPercent    float64 `json:"savings_percent"`
	AverageFinalPrice float64 `json:"average_final_price"`
	MedianFinalPrice  float64 `json:"median_final_price"`
}

type ProductReport struct {
	Selector    string        `json:"selector"`
	GeneratedAt time.Time     `json:"generated_at"`
	Rows        []ReportRow   `json:"rows"`
	Summary     ReportSummary `json:"summary"`
}

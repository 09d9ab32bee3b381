package utils

import "github.com/shopspring/decimal"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return DecimalToFloat(decimal.NewFromFloat(f))
}

// DecimalToFloat arredonda em duas casas antes de converter
func DecimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

package cataloging

import (
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

// ProductInput são os campos do formulário de produto, ainda como texto
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       string
	Discount    string
	ImageURL    string
	ImageFile   *domain.ImageFile
}

type validatedInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Discount    *int
}

func validateProductInput(input ProductInput) (validatedInput, []ValidationError) {
	var (
		out    validatedInput
		fields []ValidationError
	)

	out.Name = strings.TrimSpace(input.Name)
	if out.Name == "" {
		fields = append(fields, ValidationError{Field: "name", Description: "Nome é obrigatório"})
	}

	out.Description = strings.TrimSpace(input.Description)
	if out.Description == "" {
		fields = append(fields, ValidationError{Field: "description", Description: "Descrição é obrigatória"})
	}

	out.Category = strings.TrimSpace(input.Category)
	if out.Category == "" {
		fields = append(fields, ValidationError{Field: "category", Description: "Categoria é obrigatória"})
	}

	price, msg := parsePrice(input.Price)
	if msg != "" {
		fields = append(fields, ValidationError{Field: "price", Description: msg})
	}
	out.Price = price

	if strings.TrimSpace(input.Discount) != "" {
		discount, ok := parseWholeNumber(input.Discount)
		if !ok || discount < 0 || discount >= 100 {
			fields = append(fields, ValidationError{Field: "discount", Description: "Desconto deve ser um inteiro entre 0 e 99"})
		} else {
			out.Discount = &discount
		}
	}

	if input.ImageFile.IsEmpty() && strings.TrimSpace(input.ImageURL) == "" {
		fields = append(fields, ValidationError{Field: "image", Description: "Informe um arquivo de imagem ou uma URL"})
	}

	return out, fields
}

func parsePrice(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Preço é obrigatório"
	}

	price, err := cast.ToFloat64E(strings.Replace(raw, ",", ".", 1))
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, "Preço deve ser numérico"
	}

	if price < 0 {
		return 0, "Preço não pode ser negativo"
	}

	return price, ""
}

// parseWholeNumber aceita "20" ou "20.0"; frações são rejeitadas
func parseWholeNumber(raw string) (int, bool) {
	f, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ParsePercent converte o percentual de promoção recebido como texto ou número
func ParsePercent(raw any) (int, bool) {
	return parseWholeNumber(cast.ToString(raw))
}

func validatePromoPercent(percent int) []ValidationError {
	if percent < domain.MinPromoPercent || percent > domain.MaxPromoPercent {
		return []ValidationError{{Field: "percent", Description: "Percentual deve estar entre 1 e 99"}}
	}
	return nil
}

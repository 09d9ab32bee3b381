package cataloging

import (
	"strings"

	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

type ProductFilter struct {
	Category       string
	Query          string
	OnlyDiscounted bool
}

func (f ProductFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Category) == "" && strings.TrimSpace(f.Query) == "" && !f.OnlyDiscounted
}

func (f ProductFilter) Apply(products []domain.Product) []domain.Product {
	if f.IsEmpty() {
		return products
	}

	category := strings.TrimSpace(f.Category)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}

		if f.OnlyDiscounted && p.EffectiveDiscount() == 0 {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered
}

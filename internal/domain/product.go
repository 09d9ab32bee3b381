package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidRecord = errors.New("registro de produto inválido")

// Promo é a promoção temporária herdada das primeiras versões do catálogo
type Promo struct {
	Percent int `json:"percent"`
}

// Product é o único registro do catálogo
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	Discount    *int
	Promo       *Promo
	CreatedAt   *time.Time

	// createdAtRaw guarda o texto lido do registro para reemiti-lo sem alteração
	createdAtRaw string
}

// productRecord é o formato persistido no slot local e no backend remoto
type productRecord struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Desc        string  `json:"desc,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Discount    *int    `json:"discount,omitempty"`
	Promo       *Promo  `json:"promo,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	rec := productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Discount:    p.Discount,
		Promo:       p.Promo,
		CreatedAt:   p.createdAtText(),
	}
	return json.Marshal(rec)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var rec productRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	description := rec.Description
	if description == "" {
		description = rec.Desc
	}

	*p = Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: description,
		Price:       rec.Price,
		Category:    rec.Category,
		Image:       rec.Image,
		Discount:    rec.Discount,
		Promo:       rec.Promo,
		CreatedAt:   ParseCreatedAt(rec.CreatedAt),

		createdAtRaw: rec.CreatedAt,
	}
	return nil
}

// createdAtText reemite o texto original enquanto ele ainda representa CreatedAt;
// valores ilegíveis também são preservados quando CreatedAt não foi definido depois.
func (p Product) createdAtText() string {
	if p.createdAtRaw != "" {
		parsed := ParseCreatedAt(p.createdAtRaw)
		switch {
		case parsed == nil && p.CreatedAt == nil:
			return p.createdAtRaw
		case parsed != nil && p.CreatedAt != nil && parsed.Equal(*p.CreatedAt):
			return p.createdAtRaw
		}
	}

	if p.CreatedAt == nil {
		return ""
	}
	return p.CreatedAt.Format(time.RFC3339Nano)
}

// ParseCreatedAt interpreta o timestamp de criação; valores ilegíveis contam como ausentes
func ParseCreatedAt(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	return &t
}

const (
	MinPromoPercent = 1
	MaxPromoPercent = 99
	MaxDiscount     = 99
)

// HasPromo indica se existe promoção ativa; percentuais fora de [1,99] não contam
func (p Product) HasPromo() bool {
	return p.Promo != nil && p.Promo.Percent >= MinPromoPercent && p.Promo.Percent <= MaxPromoPercent
}

// EffectiveDiscount retorna o percentual aplicado ao preço: promo, depois discount, depois 0.
// Discount fora de [0,100) é ignorado.
func (p Product) EffectiveDiscount() int {
	if p.HasPromo() {
		return p.Promo.Percent
	}
	if p.Discount != nil && *p.Discount >= 0 && *p.Discount <= MaxDiscount {
		return *p.Discount
	}
	return 0
}

// CheckRecord aponta o primeiro campo que viola as regras do registro persistido
func (p Product) CheckRecord() error {
	switch {
	case math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0:
		return fmt.Errorf("%w: price %v", ErrInvalidRecord, p.Price)
	case p.Discount != nil && (*p.Discount < 0 || *p.Discount > MaxDiscount):
		return fmt.Errorf("%w: discount %d", ErrInvalidRecord, *p.Discount)
	case p.Promo != nil && p.Promo.Percent != 0 && !p.HasPromo():
		return fmt.Errorf("%w: promo %d", ErrInvalidRecord, p.Promo.Percent)
	}
	return nil
}

// FinalPrice = price * (1 - desconto/100), arredondado em duas casas
func (p Product) FinalPrice() decimal.Decimal {
	price := decimal.NewFromFloat(p.Price)
	discount := p.EffectiveDiscount()
	if discount == 0 {
		return price.Round(2)
	}

	factor := decimal.NewFromInt(int64(100 - discount)).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

// IsInlineImage indica imagens embutidas como data URI (sem backend de upload)
func (p Product) IsInlineImage() bool {
	return strings.HasPrefix(p.Image, "data:")
}

// ImageFile é o arquivo de imagem escolhido no formulário
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *ImageFile) IsEmpty() bool {
	return f == nil || len(f.Data) == 0
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestEffectiveDiscount(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected int
	}{
		{name: "Sem desconto", product: Product{Price: 100}, expected: 0},
		{name: "Discount", product: Product{Price: 100, Discount: intPtr(20)}, expected: 20},
		{name: "Promo tem precedência", product: Product{Price: 100, Discount: intPtr(20), Promo: &Promo{Percent: 50}}, expected: 50},
		{name: "Promo zerada cai para discount", product: Product{Price: 100, Discount: intPtr(20), Promo: &Promo{Percent: 0}}, expected: 20},
		{name: "Discount acima de 99 ignorado", product: Product{Price: 100, Discount: intPtr(150)}, expected: 0},
		{name: "Discount negativo ignorado", product: Product{Price: 100, Discount: intPtr(-10)}, expected: 0},
		{name: "Promo fora da faixa ignorada", product: Product{Price: 100, Discount: intPtr(10), Promo: &Promo{Percent: 120}}, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.EffectiveDiscount())
		})
	}
}

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, "80", Product{Price: 100, Discount: intPtr(20)}.FinalPrice().String())
	assert.Equal(t, "100", Product{Price: 100, Discount: intPtr(150)}.FinalPrice().String())
	assert.Equal(t, "33.33", Product{Price: 66.66, Promo: &Promo{Percent: 50}}.FinalPrice().String())
}

func TestCheckRecord(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		valid   bool
	}{
		{name: "Válido", product: Product{Price: 10, Discount: intPtr(0)}, valid: true},
		{name: "Promo zerada é ausência", product: Product{Price: 10, Promo: &Promo{}}, valid: true},
		{name: "Preço negativo", product: Product{Price: -5}},
		{name: "Discount 100", product: Product{Price: 10, Discount: intPtr(100)}},
		{name: "Discount negativo", product: Product{Price: 10, Discount: intPtr(-1)}},
		{name: "Promo 100", product: Product{Price: 10, Promo: &Promo{Percent: 100}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.CheckRecord()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidRecord))
		})
	}
}

func TestProductJSON_PreservesCreatedAtText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "toISOString com milissegundos", raw: "2024-03-01T10:00:00.000Z"},
		{name: "Formato livre", raw: "2024-03-01 10:00:00"},
		{name: "Texto ilegível", raw: "ontem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"id":"1","name":"Shirt","price":100,"category":"Roupas","image":"x","createdAt":"` + tt.raw + `"}`

			var p Product
			require.NoError(t, json.Unmarshal([]byte(input), &p))

			out, err := json.Marshal(p)
			require.NoError(t, err)
			assert.JSONEq(t, input, string(out))
		})
	}
}

func TestProductJSON_ChangedCreatedAtIsReformatted(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Shirt","createdAt":"ontem"}`), &p))
	assert.Nil(t, p.CreatedAt)

	stamped := time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC)
	p.CreatedAt = &stamped

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"createdAt":"2024-05-02T10:00:00Z"`)
}

func TestProductJSON_LegacyDesc(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Mug","desc":"Caneca","price":30}`), &p))
	assert.Equal(t, "Caneca", p.Description)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"description":"Caneca"`)
	assert.NotContains(t, string(out), `"desc"`)
}

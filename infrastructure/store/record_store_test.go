package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

func intPtr(v int) *int {
	return &v
}

func TestRecordStore_GetAll(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected int
	}{
		{name: "Slot nunca escrito retorna lista vazia", content: nil, expected: 0},
		{name: "Conteúdo null retorna lista vazia", content: []byte("null"), expected: 0},
		{name: "Conteúdo inválido retorna lista vazia", content: []byte("{não é json"), expected: 0},
		{name: "Objeto em vez de array retorna lista vazia", content: []byte(`{"name":"x"}`), expected: 0},
		{name: "Array com dois produtos", content: []byte(`[{"name":"A","price":1},{"name":"B","price":2}]`), expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := NewMemorySlot()
			if tt.content != nil {
				require.NoError(t, slot.Write(context.Background(), tt.content))
			}

			products := NewRecordStore(slot).GetAll(context.Background())
			assert.NotNil(t, products)
			assert.Len(t, products, tt.expected)
		})
	}
}

func TestRecordStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

	products := []domain.Product{
		{ID: "p1", Name: "Shirt", Price: 100, Category: "Roupas", Image: "https://img/1.png", Discount: intPtr(20), CreatedAt: &created},
		{ID: "p2", Name: "Mug", Description: "Caneca", Price: 25.5, Category: "Casa", Image: "https://img/2.png"},
	}

	rs := NewRecordStore(NewMemorySlot())
	require.NoError(t, rs.PutAll(ctx, products))

	got := rs.GetAll(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "Shirt", got[0].Name)
	assert.Equal(t, 20, *got[0].Discount)
	assert.True(t, created.Equal(*got[0].CreatedAt))
	assert.Equal(t, "Caneca", got[1].Description)
	assert.Nil(t, got[1].Discount)
	assert.Nil(t, got[1].CreatedAt)
}

func TestRecordStore_PutAllEmptyList(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	rs := NewRecordStore(slot)

	require.NoError(t, rs.PutAll(ctx, nil))

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Empty(t, rs.GetAll(ctx))
}

func TestDecode_LegacyFields(t *testing.T) {
	data := []byte(`[{"name":"Antigo","desc":"descrição antiga","price":10,"category":"X","image":"i","promo":{"percent":15},"createdAt":"not a date"}]`)

	products, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, "descrição antiga", products[0].Description)
	assert.Equal(t, "", products[0].ID)
	assert.Nil(t, products[0].CreatedAt)
	assert.Equal(t, 15, products[0].EffectiveDiscount())
}

func TestBoltSlot_ReadWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	slot, err := NewBoltSlot(path, "products")
	require.NoError(t, err)

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	rs := NewRecordStore(slot)
	require.NoError(t, rs.PutAll(ctx, []domain.Product{{ID: "p1", Name: "Shirt", Price: 100}}))
	require.NoError(t, rs.Close())

	// Reabre o arquivo para garantir persistência entre sessões
	reopened, err := NewBoltSlot(path, "products")
	require.NoError(t, err)
	defer reopened.Close()

	got := NewRecordStore(reopened).GetAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Shirt", got[0].Name)
}

func TestPostgresSlot_Queries(t *testing.T) {
	query, args, err := buildReadQuery("products")
	require.NoError(t, err)
	assert.Equal(t, "SELECT content FROM catalog_slots WHERE name = $1", query)
	assert.Equal(t, []interface{}{"products"}, args)

	query, args, err = buildUpsertQuery("products", []byte("[]"))
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO catalog_slots (name,content,updated_at) VALUES ($1,$2,NOW()) "+
			"ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at",
		query,
	)
	assert.Equal(t, []interface{}{"products", "[]"}, args)
}

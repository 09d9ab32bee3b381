package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/catalog-manager-api/infrastructure/store"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

func TestMergeProducts(t *testing.T) {
	now := time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	existing := []domain.Product{{ID: "a", Name: "Atual", CreatedAt: &created}}

	incoming, err := store.Decode([]byte(`[
		{"id":"a","name":"Duplicado","price":1,"category":"X","image":""},
		{"name":"Sem ID","desc":"antigo","price":12.5,"category":"Y","image":""},
		{"id":"b","name":"Novo","price":3,"category":"Z","image":"","createdAt":"2024-02-10T00:00:00Z"}
	]`))
	require.NoError(t, err)

	merged, stats := mergeProducts(existing, incoming, now)

	require.Len(t, merged, 3)
	assert.Equal(t, "Atual", merged[0].Name)
	assert.Equal(t, "Sem ID", merged[1].Name)
	assert.NotEmpty(t, merged[1].ID)
	assert.Equal(t, "antigo", merged[1].Description)
	require.NotNil(t, merged[1].CreatedAt)
	assert.True(t, merged[1].CreatedAt.Equal(now))
	assert.Equal(t, "b", merged[2].ID)
	assert.Equal(t, time.February, merged[2].CreatedAt.Month())

	assert.Equal(t, importStats{imported: 2, skipped: 1, idsAssigned: 1}, stats)
}

func TestMergeProducts_Replace(t *testing.T) {
	merged, stats := mergeProducts(nil, []domain.Product{{ID: "x"}}, time.Now())

	require.Len(t, merged, 1)
	assert.Equal(t, 1, stats.imported)
}

func TestMergeProducts_SkipsInvalidRecords(t *testing.T) {
	incoming, err := store.Decode([]byte(`[
		{"id":"neg","name":"Negativo","price":-5,"discount":150,"category":"X","image":""},
		{"id":"promo","name":"Promo","price":10,"promo":{"percent":100},"category":"X","image":""},
		{"id":"ok","name":"Válido","price":10,"discount":20,"category":"X","image":""}
	]`))
	require.NoError(t, err)

	merged, stats := mergeProducts(nil, incoming, time.Now())

	require.Len(t, merged, 1)
	assert.Equal(t, "ok", merged[0].ID)
	assert.Equal(t, importStats{imported: 1, invalid: 2}, stats)
}

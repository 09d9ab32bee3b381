package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/catalog-manager-api/internal/config"
)

func TestConfigurePool(t *testing.T) {
	// sql.Open não conecta; só valida o driver
	db, err := sql.Open("postgres", "postgres://u:p@localhost:1/catalog?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	configurePool(db, config.Database{MaxOpenConns: 3, MaxIdleConns: 1, ConnMaxLifetime: time.Minute})
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func TestConfigurePool_ZeroKeepsDefaults(t *testing.T) {
	db, err := sql.Open("postgres", "postgres://u:p@localhost:1/catalog?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	configurePool(db, config.Database{})
	assert.Equal(t, 0, db.Stats().MaxOpenConnections)
}

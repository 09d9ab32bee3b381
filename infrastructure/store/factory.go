package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/catalog-manager-api/internal/config"
)

const (
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// NewSlot abre o slot local de acordo com STORAGE_DRIVER
func NewSlot(ctx context.Context, cfg *config.Config) (Slot, error) {
	key := cfg.Storage.SlotKey

	switch cfg.Storage.Driver {
	case "", DriverBolt:
		logrus.Infof("store: usando arquivo bolt %s", cfg.Storage.BoltPath)
		return NewBoltSlot(cfg.Storage.BoltPath, key)

	case DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("store: erro ao conectar no postgres: %w", err)
		}

		slot := NewPostgresSlot(conn, key)
		if err := slot.EnsureSchema(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
		logrus.Info("store: usando tabela catalog_slots no postgres")
		return slot, nil

	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("store: erro ao conectar no redis: %w", err)
		}
		logrus.Infof("store: usando chave %s no redis", key)
		return NewRedisSlot(rdb, key), nil

	case DriverMemory:
		logrus.Warn("store: usando slot em memória, o catálogo não sobrevive a reinícios")
		return NewMemorySlot(), nil

	default:
		return nil, fmt.Errorf("store: driver desconhecido %q", cfg.Storage.Driver)
	}
}

package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const boltBucket = "catalog"

// BoltSlot guarda o catálogo em um arquivo bbolt, bucket "catalog"
type BoltSlot struct {
	db  *bolt.DB
	key []byte
}

func NewBoltSlot(path string, key string) (*BoltSlot, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "store: erro ao abrir arquivo bolt %s", path)
	}

	return &BoltSlot{db: db, key: []byte(key)}, nil
}

func (b *BoltSlot) Read(_ context.Context) ([]byte, error) {
	var data []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return nil
		}

		// O valor só é válido durante a transação
		if v := bucket.Get(b.key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "store: erro ao ler bolt")
	}

	return data, nil
}

func (b *BoltSlot) Write(_ context.Context, data []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		if err != nil {
			return err
		}
		return bucket.Put(b.key, data)
	})
	if err != nil {
		return errors.Wrap(err, "store: erro ao gravar bolt")
	}
	return nil
}

func (b *BoltSlot) Close() error {
	return b.db.Close()
}

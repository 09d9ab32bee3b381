package store

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordStore guarda a lista ordenada de produtos em um Slot
type RecordStore struct {
	slot Slot
}

func NewRecordStore(slot Slot) *RecordStore {
	return &RecordStore{slot: slot}
}

// GetAll nunca falha: slot vazio, ilegível ou com conteúdo inválido vira lista vazia
func (s *RecordStore) GetAll(ctx context.Context) []domain.Product {
	data, err := s.slot.Read(ctx)
	if err != nil {
		logrus.WithError(err).Warn("store: erro ao ler slot local, usando catálogo vazio")
		return []domain.Product{}
	}

	if len(data) == 0 {
		return []domain.Product{}
	}

	products, err := Decode(data)
	if err != nil {
		logrus.WithError(err).Warn("store: conteúdo inválido no slot local, usando catálogo vazio")
		return []domain.Product{}
	}

	return products
}

// PutAll sobrescreve o slot com a lista serializada
func (s *RecordStore) PutAll(ctx context.Context, products []domain.Product) error {
	data, err := Encode(products)
	if err != nil {
		return err
	}

	if err := s.slot.Write(ctx, data); err != nil {
		return errors.Wrap(err, "store: erro ao gravar slot local")
	}

	return nil
}

func (s *RecordStore) Close() error {
	return s.slot.Close()
}

// Encode serializa a lista no formato do slot (array JSON)
func Encode(products []domain.Product) ([]byte, error) {
	if products == nil {
		products = []domain.Product{}
	}

	data, err := json.Marshal(products)
	if err != nil {
		return nil, errors.Wrap(err, "store: erro ao serializar produtos")
	}
	return data, nil
}

// Decode interpreta um array JSON de produtos; "null" vira lista vazia
func Decode(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "store: erro ao decodificar produtos")
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

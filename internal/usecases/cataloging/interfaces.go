package cataloging

import (
	"context"

	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

// CatalogSynchronizer define a fonte autoritativa do catálogo
type CatalogSynchronizer interface {
	// Load retorna a lista atual, remota quando disponível
	Load(ctx context.Context) []domain.Product
	// Save grava localmente e propaga em segundo plano
	Save(ctx context.Context, products []domain.Product) error
}

// ImageUploader envia imagens de produtos para o backend remoto
type ImageUploader interface {
	IsConfigured() bool
	UploadImage(ctx context.Context, file domain.ImageFile) (string, error)
}

// CatalogService é o conjunto de operações de edição do catálogo
type CatalogService interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ApplyPromo(ctx context.Context, id string, percent int) (*domain.Product, error)
	RemovePromo(ctx context.Context, id string) (*domain.Product, error)
	ExportJSON(ctx context.Context) ([]byte, error)
}

package cataloging

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
	"github.com/vfg2006/catalog-manager-api/pkg/utils"
)

type Service struct {
	catalog CatalogSynchronizer
	remote  ImageUploader
	now     func() time.Time

	// mu serializa carregar-modificar-gravar
	mu sync.Mutex
	// submitting impede dois envios de formulário simultâneos
	submitting sync.Mutex
}

func NewService(synchronizer CatalogSynchronizer, remote ImageUploader) *Service {
	return &Service{
		catalog: synchronizer,
		remote:  remote,
		now:     time.Now,
	}
}

func (s *Service) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return filter.Apply(products), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	product := products[idx]
	return &product, nil
}

func (s *Service) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if !s.submitting.TryLock() {
		return nil, NewCatalogError(ErrSubmissionInProgress, apiErrors.ErrSubmissionInProgress, "Aguarde o envio anterior terminar")
	}
	defer s.submitting.Unlock()

	valid, fields := validateProductInput(input)
	if len(fields) > 0 {
		return nil, NewValidationError(ErrInvalidProduct, apiErrors.ErrInvalidRequest, fields)
	}

	image, err := s.resolveImage(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	product := domain.Product{
		ID:          utils.NewProductID(),
		Name:        valid.Name,
		Description: valid.Description,
		Price:       valid.Price,
		Category:    valid.Category,
		Image:       image,
		Discount:    valid.Discount,
		CreatedAt:   &createdAt,
	}

	if err := s.save(ctx, append(products, product)); err != nil {
		return nil, err
	}

	logrus.Infof("cataloging: produto %s criado", product.ID)
	return &product, nil
}

// Update substitui os campos editáveis; id, promo e createdAt são preservados
func (s *Service) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if !s.submitting.TryLock() {
		return nil, NewCatalogError(ErrSubmissionInProgress, apiErrors.ErrSubmissionInProgress, "Aguarde o envio anterior terminar")
	}
	defer s.submitting.Unlock()

	valid, fields := validateProductInput(input)
	if len(fields) > 0 {
		return nil, NewValidationError(ErrInvalidProduct, apiErrors.ErrInvalidRequest, fields)
	}

	image, err := s.resolveImage(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	p := &products[idx]
	p.Name = valid.Name
	p.Description = valid.Description
	p.Price = valid.Price
	p.Category = valid.Category
	p.Image = image
	p.Discount = valid.Discount

	if err := s.save(ctx, products); err != nil {
		return nil, err
	}

	updated := *p
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return notFound(id)
	}

	remaining := append(products[:idx:idx], products[idx+1:]...)
	if err := s.save(ctx, remaining); err != nil {
		return err
	}

	logrus.Infof("cataloging: produto %s removido", id)
	return nil
}

func (s *Service) ApplyPromo(ctx context.Context, id string, percent int) (*domain.Product, error) {
	if fields := validatePromoPercent(percent); len(fields) > 0 {
		return nil, NewValidationError(ErrInvalidPromo, apiErrors.ErrInvalidRequest, fields)
	}

	return s.mutate(ctx, id, func(p *domain.Product) {
		p.Promo = &domain.Promo{Percent: percent}
	})
}

func (s *Service) RemovePromo(ctx context.Context, id string) (*domain.Product, error) {
	return s.mutate(ctx, id, func(p *domain.Product) {
		p.Promo = nil
	})
}

// ExportJSON retorna a lista completa como documento JSON indentado
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := utils.PrettyJSON(products)
	if err != nil {
		return nil, NewCatalogError(ErrExport, apiErrors.ErrInternalServer, err.Error())
	}

	return data, nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(p *domain.Product)) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(products, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	fn(&products[idx])

	if err := s.save(ctx, products); err != nil {
		return nil, err
	}

	updated := products[idx]
	return &updated, nil
}

// load carrega a lista e atribui ids aos registros antigos que ainda não têm
func (s *Service) load(ctx context.Context) ([]domain.Product, error) {
	products := s.catalog.Load(ctx)

	migrated := 0
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = utils.NewProductID()
			migrated++
		}
	}

	if migrated > 0 {
		logrus.Infof("cataloging: %d produtos antigos receberam id", migrated)
		if err := s.save(ctx, products); err != nil {
			return nil, err
		}
	}

	return products, nil
}

func (s *Service) save(ctx context.Context, products []domain.Product) error {
	if err := s.catalog.Save(ctx, products); err != nil {
		logrus.WithError(err).Error("cataloging: falha ao gravar catálogo")
		return NewCatalogError(ErrStorage, apiErrors.ErrStorage, "Falha ao gravar o catálogo")
	}
	return nil
}

func indexOf(products []domain.Product, id string) int {
	if id == "" {
		return -1
	}
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) *CatalogError {
	return NewCatalogErrorWithID(ErrProductNotFound, apiErrors.ErrProductNotFound, id, "Produto não encontrado")
}

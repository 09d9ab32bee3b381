package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/cloudinaryclient"
	cloudinarydomain "github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/domain"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/utils"
)

var ErrNotConfigured = errors.New("cloudinary não configurado")

type CloudinaryIntegrator interface {
	IsConfigured() bool
	UploadImage(ctx context.Context, file domain.ImageFile) (string, error)
	UploadCatalog(ctx context.Context, payload []byte) error
	FetchCatalog(ctx context.Context) ([]byte, error)
}

type CloudinaryService struct {
	cfg    *config.Config
	Client cloudinaryclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client cloudinaryclient.Client) CloudinaryIntegrator {
	return &CloudinaryService{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *CloudinaryService) IsConfigured() bool {
	return s.cfg.Cloudinary.IsConfigured()
}

// UploadImage envia a imagem do produto e retorna a URL segura
func (s *CloudinaryService) UploadImage(ctx context.Context, file domain.ImageFile) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}

	publicID, err := utils.GeneratePublicID()
	if err != nil {
		return "", err
	}

	resp, err := s.Client.Upload(ctx, cloudinarydomain.UploadParams{
		ResourceType: cloudinarydomain.ResourceImage,
		FileName:     file.Name,
		Data:         file.Data,
		PublicID:     "products/" + publicID,
	})
	if err != nil {
		return "", err
	}

	if resp.SecureURL == "" {
		return "", errors.New("cloudinary não retornou secure_url para a imagem")
	}

	logrus.Debugf("cloudinary: imagem %s enviada", resp.PublicID)
	return resp.SecureURL, nil
}

// UploadCatalog sobrescreve o documento remoto do catálogo (mesmo public_id a cada envio)
func (s *CloudinaryService) UploadCatalog(ctx context.Context, payload []byte) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	_, err := s.Client.Upload(ctx, cloudinarydomain.UploadParams{
		ResourceType: cloudinarydomain.ResourceRaw,
		FileName:     s.cfg.Cloudinary.CatalogPublicID,
		Data:         payload,
		PublicID:     s.cfg.Cloudinary.CatalogPublicID,
	})
	return err
}

// FetchCatalog baixa o documento remoto com parâmetro anti-cache
func (s *CloudinaryService) FetchCatalog(ctx context.Context) ([]byte, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	return s.Client.Fetch(ctx, s.catalogURL())
}

func (s *CloudinaryService) catalogURL() string {
	cfg := s.cfg.Cloudinary

	query := url.Values{}
	query.Set("t", strconv.FormatInt(s.now().UnixNano(), 10))

	return fmt.Sprintf("%s/%s/raw/upload/%s?%s",
		strings.TrimRight(cfg.DeliveryURL, "/"), cfg.CloudName, cfg.CatalogPublicID, query.Encode())
}

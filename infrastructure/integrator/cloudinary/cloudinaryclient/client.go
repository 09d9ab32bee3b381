package cloudinaryclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	cloudinarydomain "github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/domain"
	"github.com/vfg2006/catalog-manager-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	Upload(ctx context.Context, params cloudinarydomain.UploadParams) (*cloudinarydomain.UploadResponse, error)
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type CloudinaryClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Cloudinary.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &CloudinaryClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

package handler

import (
	"net/http"

	"github.com/vfg2006/catalog-manager-api/internal/api/handler/router"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/catalog-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Products(service cataloging.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products",
			Method:  http.MethodGet,
			Handler: ListProducts(service),
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.LimitRequestBody(maxUploadSize)},
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(service),
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodPut,
			Handler:     UpdateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.LimitRequestBody(maxUploadSize)},
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodDelete,
			Handler: DeleteProduct(service),
		},
		{
			Path:    "/v1/products/:id/promo",
			Method:  http.MethodPost,
			Handler: ApplyPromo(service),
		},
		{
			Path:    "/v1/products/:id/promo",
			Method:  http.MethodDelete,
			Handler: RemovePromo(service),
		},
		{
			Path:    "/v1/export/products",
			Method:  http.MethodGet,
			Handler: ExportProducts(service),
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: GetReport(service),
		},
		{
			Path:    "/v1/reports/export",
			Method:  http.MethodGet,
			Handler: ExportReport(service),
		},
	}
}

func Sync(coordinator SyncStatusProvider, trigger RefreshTrigger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/run",
			Method:  http.MethodPost,
			Handler: RunSync(trigger),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(coordinator, trigger),
		},
	}
}

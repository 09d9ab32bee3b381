package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/mocks"
	"github.com/vfg2006/catalog-manager-api/infrastructure/store"
	"github.com/vfg2006/catalog-manager-api/internal/api/handler/router"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/syncing"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
	"github.com/vfg2006/catalog-manager-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type fakeTrigger struct {
	running bool
	calls   int
}

func (f *fakeTrigger) TriggerManualSync(context.Context) bool {
	f.calls++
	return !f.running
}

func (f *fakeTrigger) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": false}
}

type testAPI struct {
	handler http.Handler
	store   *store.RecordStore
	trigger *fakeTrigger
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCloudinaryIntegrator(ctrl)
	remote.EXPECT().IsConfigured().Return(false).AnyTimes()

	rs := store.NewRecordStore(store.NewMemorySlot())
	coordinator, err := syncing.NewCoordinator(config.Sync{}, rs, remote)
	require.NoError(t, err)
	t.Cleanup(coordinator.Close)

	trigger := &fakeTrigger{}

	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Products(cataloging.NewService(coordinator, remote))...),
		router.WithRoutes(Reports(reporting.NewService(coordinator))...),
		router.WithRoutes(Sync(coordinator, trigger)...),
	)

	return &testAPI{handler: rt, store: rs, trigger: trigger}
}

func (a *testAPI) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const shirtJSON = `{"name":"Shirt","description":"Camiseta","category":"Roupas","price":100,"discount":20,"image":"https://img/shirt.png"}`

func TestProducts_CRUD(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/products", shirtJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[productResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 80.0, created.FinalPrice)
	assert.Equal(t, 20, created.EffectiveDiscount)

	rec = api.do(t, http.MethodGet, "/v1/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shirt", decode[productResponse](t, rec).Name)

	rec = api.do(t, http.MethodPut, "/v1/products/"+created.ID,
		`{"name":"Shirt 2","description":"Camiseta","category":"Roupas","price":"120","image":"https://img/shirt.png"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[productResponse](t, rec)
	assert.Equal(t, 120.0, updated.FinalPrice)
	assert.Nil(t, updated.Discount)

	rec = api.do(t, http.MethodGet, "/v1/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]productResponse](t, rec), 1)

	rec = api.do(t, http.MethodDelete, "/v1/products/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/products/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrProductNotFound, decode[apiErrors.APIError](t, rec).Code)
}

func TestProducts_ListEmpty(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestProducts_CreateValidationError(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/products",
		`{"name":"Shirt","description":"Camiseta","category":"Roupas","price":-5,"image":"https://img/shirt.png"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string                       `json:"code"`
		Details []cataloging.ValidationError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apiErrors.ErrInvalidRequest, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "price", body.Details[0].Field)

	assert.Empty(t, api.store.GetAll(context.Background()))
}

func TestProducts_CreateInvalidBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)
}

func TestProducts_CreateMultipartInlineImage(t *testing.T) {
	api := newTestAPI(t)

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for k, v := range map[string]string{
		"name":        "Mug",
		"description": "Caneca",
		"category":    "Casa",
		"price":       "25.50",
	} {
		require.NoError(t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile("image_file", "mug.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nresto"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/products", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[productResponse](t, rec)
	assert.True(t, strings.HasPrefix(created.Image, "data:"), created.Image)
	assert.Equal(t, 25.5, created.Price)
}

func TestProducts_Promo(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/products", shirtJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[productResponse](t, rec).ID

	rec = api.do(t, http.MethodPost, "/v1/products/"+id+"/promo", `{"percent":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/products/"+id+"/promo", `{"percent":"dez"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/products/"+id+"/promo", `{"percent":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50.0, decode[productResponse](t, rec).FinalPrice)

	rec = api.do(t, http.MethodDelete, "/v1/products/"+id+"/promo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 80.0, decode[productResponse](t, rec).FinalPrice)
}

func TestProducts_Export(t *testing.T) {
	api := newTestAPI(t)

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/v1/products", shirtJSON).Code)

	rec := api.do(t, http.MethodGet, "/v1/export/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "produtos.json")

	exported, err := store.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, exported, 1)
	assert.Equal(t, "Shirt", exported[0].Name)
}

func TestReports(t *testing.T) {
	api := newTestAPI(t)

	month := time.Now().Format("01")
	require.NoError(t, api.store.PutAll(context.Background(), []domain.Product{
		{ID: "1", Name: "Legacy", Category: "Casa", Price: 10},
	}))

	rec := api.do(t, http.MethodGet, "/v1/reports?month="+month, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[domain.ProductReport](t, rec)
	assert.Equal(t, 1, report.Summary.Count)

	rec = api.do(t, http.MethodGet, "/v1/reports?month=13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/reports/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-produtos-all.csv")
	assert.Contains(t, rec.Body.String(), "Legacy,Casa,10,0,10")

	rec = api.do(t, http.MethodGet, "/v1/reports/export?format=xlsx&month="+month, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-produtos-"+month+".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = api.do(t, http.MethodGet, "/v1/reports/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/sync/run", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	api.trigger.running = true
	rec = api.do(t, http.MethodPost, "/v1/sync/run", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/sync/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Coordinator domain.SyncStatus `json:"coordinator"`
		Scheduler   map[string]any    `json:"scheduler"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Coordinator.RemoteConfigured)
	assert.Equal(t, false, body.Scheduler["sync_enabled"])
}

func TestRouterNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/inexistente", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrResourceNotFound, decode[apiErrors.APIError](t, rec).Code)

	rec = api.do(t, http.MethodPatch, "/v1/products", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}

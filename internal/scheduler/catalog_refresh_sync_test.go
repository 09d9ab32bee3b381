package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cloudinarydomain "github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/domain"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/mocks"
	"github.com/vfg2006/catalog-manager-api/infrastructure/store"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/syncing"
	"go.uber.org/mock/gomock"
)

type blockingLoader struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingLoader) Load(context.Context) []domain.Product {
	b.calls.Add(1)
	<-b.release
	return []domain.Product{{ID: "1"}}
}

func TestCatalogRefreshService_refreshWritesRemoteToLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCloudinaryIntegrator(ctrl)
	remote.EXPECT().IsConfigured().Return(true).AnyTimes()
	remote.EXPECT().FetchCatalog(gomock.Any()).
		Return([]byte(`[{"id":"r1","name":"Remoto"}]`), nil)

	rs := store.NewRecordStore(store.NewMemorySlot())
	coordinator, err := syncing.NewCoordinator(config.Sync{}, rs, remote)
	require.NoError(t, err)
	t.Cleanup(coordinator.Close)

	svc := NewCatalogRefreshService(coordinator, &config.Config{})
	svc.refresh(context.Background())

	local := rs.GetAll(context.Background())
	require.Len(t, local, 1)
	assert.Equal(t, "r1", local[0].ID)

	status := svc.GetStatus()
	assert.Equal(t, 1, status["last_product_count"])
	assert.Equal(t, false, status["sync_running"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestCatalogRefreshService_refreshRemoteMissingKeepsLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCloudinaryIntegrator(ctrl)
	remote.EXPECT().IsConfigured().Return(true).AnyTimes()
	remote.EXPECT().FetchCatalog(gomock.Any()).Return(nil, cloudinarydomain.ErrNotFound)

	rs := store.NewRecordStore(store.NewMemorySlot())
	require.NoError(t, rs.PutAll(context.Background(), []domain.Product{{ID: "a"}, {ID: "b"}}))

	coordinator, err := syncing.NewCoordinator(config.Sync{}, rs, remote)
	require.NoError(t, err)
	t.Cleanup(coordinator.Close)

	svc := NewCatalogRefreshService(coordinator, &config.Config{})
	svc.refresh(context.Background())

	assert.Len(t, rs.GetAll(context.Background()), 2)
	assert.Equal(t, 2, svc.GetStatus()["last_product_count"])
}

func TestCatalogRefreshService_TriggerManualSyncSkipsWhileRunning(t *testing.T) {
	loader := &blockingLoader{release: make(chan struct{})}
	svc := NewCatalogRefreshService(loader, &config.Config{})

	assert.True(t, svc.TriggerManualSync(context.Background()))

	require.Eventually(t, func() bool {
		return svc.GetStatus()["sync_running"] == true
	}, time.Second, 5*time.Millisecond)

	assert.False(t, svc.TriggerManualSync(context.Background()))

	close(loader.release)

	require.Eventually(t, func() bool {
		return svc.GetStatus()["sync_running"] == false
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestCatalogRefreshService_StartDisabled(t *testing.T) {
	svc := NewCatalogRefreshService(&blockingLoader{}, &config.Config{
		CatalogRefreshSync: config.CatalogRefreshSync{Enabled: false, CronSchedule: "*/15 * * * *"},
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, false, svc.GetStatus()["sync_enabled"])
}

func TestCatalogRefreshService_StartInvalidCron(t *testing.T) {
	svc := NewCatalogRefreshService(&blockingLoader{}, &config.Config{
		CatalogRefreshSync: config.CatalogRefreshSync{Enabled: true, CronSchedule: "not a cron"},
	})

	assert.Error(t, svc.Start(context.Background()))
}

func TestCatalogRefreshService_StopWaitsForRunningRefresh(t *testing.T) {
	loader := &blockingLoader{release: make(chan struct{})}
	svc := NewCatalogRefreshService(loader, &config.Config{})

	require.True(t, svc.TriggerManualSync(context.Background()))
	require.Eventually(t, func() bool {
		return svc.GetStatus()["sync_running"] == true
	}, time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		svc.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop retornou com atualização em andamento")
	case <-time.After(50 * time.Millisecond):
	}

	close(loader.release)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop não retornou após a atualização terminar")
	}

	// Depois de parado, nada mais chega ao loader
	assert.False(t, svc.TriggerManualSync(context.Background()))
	svc.refresh(context.Background())
	assert.Equal(t, int32(1), loader.calls.Load())

	// Stop é idempotente
	svc.Stop()
}

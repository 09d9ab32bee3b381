package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
)

// CatalogLoader carrega a lista autoritativa, gravando a cópia remota no slot local
type CatalogLoader interface {
	Load(ctx context.Context) []domain.Product
}

// CatalogRefreshSyncConfig representa a configuração do agendador de atualização do catálogo
type CatalogRefreshSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CatalogRefreshService mantém o slot local em dia com o backend remoto
type CatalogRefreshService struct {
	scheduler           *gocron.Scheduler
	config              CatalogRefreshSyncConfig
	loader              CatalogLoader
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastProductCount    int
	stopped             bool
	inflight            sync.WaitGroup
	stopOnce            sync.Once
}

func NewCatalogRefreshService(loader CatalogLoader, appConfig *config.Config) *CatalogRefreshService {
	refreshConfig := CatalogRefreshSyncConfig{
		CronSchedule: appConfig.CatalogRefreshSync.CronSchedule,
		SyncEnabled:  appConfig.CatalogRefreshSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de atualização do catálogo carregada")

	return &CatalogRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		loader:    loader,
	}
}

// Start inicia o agendador
func (s *CatalogRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Atualização agendada do catálogo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização do catálogo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do catálogo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop encerra o agendamento e aguarda a atualização em andamento; depois dele nenhuma atualização roda
func (s *CatalogRefreshService) Stop() {
	s.stopOnce.Do(func() {
		logrus.Info("Parando agendador de atualização do catálogo")

		s.syncMutex.Lock()
		s.stopped = true
		s.syncMutex.Unlock()

		if s.scheduler.IsRunning() {
			s.scheduler.Stop()
		}
		s.inflight.Wait()
	})
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.stopped {
		s.syncMutex.Unlock()
		return
	}
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do catálogo já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.inflight.Add(1)
	s.syncMutex.Unlock()
	defer s.inflight.Done()

	products := s.loader.Load(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastProductCount = len(products)
	s.syncMutex.Unlock()

	logrus.WithField("products", len(products)).Info("Atualização do catálogo concluída")
}

// TriggerManualSync dispara uma atualização fora do agendamento; retorna false se já houver uma em andamento
func (s *CatalogRefreshService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.stopped || s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do catálogo já em andamento ou agendador parado, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do catálogo")
	go s.refresh(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *CatalogRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_product_count":     s.lastProductCount,
	}
}

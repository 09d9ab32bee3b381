package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/cloudinaryclient"
	"github.com/vfg2006/catalog-manager-api/infrastructure/store"
	"github.com/vfg2006/catalog-manager-api/internal/api"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/scheduler"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/syncing"
	"github.com/vfg2006/catalog-manager-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logCloser := log.Setup(log.Options{
		Level:      cfg.App.LogLevel,
		File:       cfg.App.LogFile,
		MaxSizeMB:  cfg.App.LogMaxSizeMB,
		MaxBackups: cfg.App.LogMaxBackups,
	})
	defer logCloser.Close()
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slot, err := store.NewSlot(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o armazenamento local do catálogo")
	}
	recordStore := store.NewRecordStore(slot)

	cloudinaryClient := cloudinaryclient.NewClient(cfg)
	cloudinaryIntegrator := cloudinary.New(cfg, cloudinaryClient)
	if cloudinaryIntegrator.IsConfigured() {
		logrus.WithField("cloud_name", cfg.Cloudinary.CloudName).Info("Backend remoto do catálogo configurado")
	} else {
		logrus.Warn("Cloudinary não configurado: catálogo apenas local e imagens embutidas")
	}

	coordinator, err := syncing.NewCoordinator(cfg.Sync, recordStore, cloudinaryIntegrator)
	if err != nil {
		logrus.Fatal(err)
	}

	catalogService := cataloging.NewService(coordinator, cloudinaryIntegrator)
	reportService := reporting.NewService(coordinator)

	refreshService := scheduler.NewCatalogRefreshService(coordinator, cfg)
	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do catálogo")
	}

	server, err := api.New(
		cfg,
		catalogService,
		reportService,
		coordinator,
		refreshService,
		refreshService.Stop, // nenhuma atualização agendada depois daqui
		coordinator.Close,   // aguarda a propagação pendente antes de fechar o slot
		func() {
			if err := recordStore.Close(); err != nil {
				logrus.WithError(err).Warn("Erro ao fechar o armazenamento local")
			}
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

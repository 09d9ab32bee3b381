package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/cloudinaryclient"
	"github.com/vfg2006/catalog-manager-api/infrastructure/store"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/log"
	"github.com/vfg2006/catalog-manager-api/pkg/utils"
)

// Importa um arquivo JSON de produtos (formato antigo ou atual) para o slot configurado.
//
//	go run ./infrastructure/migration/script -file produtos.json [-replace] [-push]
func main() {
	file := flag.String("file", "", "arquivo JSON com a lista de produtos")
	replace := flag.Bool("replace", false, "substitui o catálogo local em vez de mesclar")
	push := flag.Bool("push", false, "envia o resultado para o Cloudinary quando configurado")
	flag.Parse()

	log.Setup(log.Options{Level: "info"})
	logrus.Info("Iniciando script de importação do catálogo...")

	if *file == "" {
		logrus.Fatal("Informe o arquivo com -file")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler arquivo de produtos")
	}

	incoming, err := store.Decode(data)
	if err != nil {
		logrus.WithError(err).Fatal("Arquivo não contém uma lista de produtos válida")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	slot, err := store.NewSlot(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o armazenamento local")
	}
	recordStore := store.NewRecordStore(slot)
	defer recordStore.Close()

	var existing []domain.Product
	if !*replace {
		existing = recordStore.GetAll(ctx)
	}

	startTime := time.Now()
	merged, stats := mergeProducts(existing, incoming, time.Now())

	if err := recordStore.PutAll(ctx, merged); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar catálogo")
	}

	logrus.WithFields(logrus.Fields{
		"imported":     stats.imported,
		"skipped":      stats.skipped,
		"invalid":      stats.invalid,
		"ids_assigned": stats.idsAssigned,
		"total":        len(merged),
		"duration":     time.Since(startTime).String(),
	}).Info("Importação concluída")

	if !*push {
		return
	}

	remote := cloudinary.New(cfg, cloudinaryclient.NewClient(cfg))
	if !remote.IsConfigured() {
		logrus.Warn("Cloudinary não configurado, envio ignorado")
		return
	}

	payload, err := store.Encode(merged)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao serializar catálogo")
	}

	if err := remote.UploadCatalog(ctx, payload); err != nil {
		logrus.WithError(err).Fatal("Erro ao enviar catálogo para o Cloudinary")
	}
	logrus.Info("Catálogo enviado para o Cloudinary")
}

type importStats struct {
	imported    int
	skipped     int
	invalid     int
	idsAssigned int
}

// mergeProducts acrescenta os produtos importados ao final da lista existente.
// IDs ausentes recebem um novo identificador; IDs já presentes e registros inválidos são ignorados.
func mergeProducts(existing, incoming []domain.Product, now time.Time) ([]domain.Product, importStats) {
	var stats importStats

	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]domain.Product, 0, len(existing)+len(incoming))

	for _, p := range existing {
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}

	for _, p := range incoming {
		if err := p.CheckRecord(); err != nil {
			logrus.WithField("name", p.Name).WithError(err).Warn("Produto ignorado na importação")
			stats.invalid++
			continue
		}

		if p.ID == "" {
			p.ID = utils.NewProductID()
			stats.idsAssigned++
		}

		if _, dup := seen[p.ID]; dup {
			stats.skipped++
			continue
		}

		if p.CreatedAt == nil {
			createdAt := now
			p.CreatedAt = &createdAt
		}

		seen[p.ID] = struct{}{}
		merged = append(merged, p)
		stats.imported++
	}

	return merged, stats
}

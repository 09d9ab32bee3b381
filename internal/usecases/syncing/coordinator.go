package syncing

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary"
	"github.com/vfg2006/catalog-manager-api/infrastructure/store"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"golang.org/x/sync/singleflight"
)

var ErrMalformedRemote = errors.New("documento remoto não é uma lista de produtos")

type RecordStore interface {
	GetAll(ctx context.Context) []domain.Product
	PutAll(ctx context.Context, products []domain.Product) error
}

// Coordinator decide qual cópia do catálogo é autoritativa e propaga gravações para o backend remoto
type Coordinator struct {
	store  RecordStore
	remote cloudinary.CloudinaryIntegrator
	pool   *ants.Pool
	group  singleflight.Group

	uploadTimeout time.Duration
	fetchTimeout  time.Duration

	// writeMu serializa gravações no slot local (Save e a cópia remota trazida por load)
	writeMu sync.Mutex

	mu       sync.Mutex
	idle     *sync.Cond
	pending  []byte
	queued   bool
	draining bool
	status   domain.SyncStatus

	// dirty: o slot local tem alterações que o backend remoto ainda não confirmou
	dirty      bool
	generation uint64
}

func NewCoordinator(cfg config.Sync, recordStore RecordStore, remote cloudinary.CloudinaryIntegrator) (*Coordinator, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "syncing: erro ao criar pool de propagação")
	}

	c := &Coordinator{
		store:         recordStore,
		remote:        remote,
		pool:          pool,
		uploadTimeout: durationOr(cfg.UploadTimeout, 30*time.Second),
		fetchTimeout:  durationOr(cfg.FetchTimeout, 10*time.Second),
	}
	c.idle = sync.NewCond(&c.mu)

	return c, nil
}

// Load retorna a lista autoritativa: remota quando disponível (e grava localmente), senão a local
func (c *Coordinator) Load(ctx context.Context) []domain.Product {
	v, _, _ := c.group.Do("load", func() (interface{}, error) {
		return c.load(context.WithoutCancel(ctx)), nil
	})

	// Cada chamador recebe sua própria cópia da lista compartilhada
	products := v.([]domain.Product)
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func (c *Coordinator) load(ctx context.Context) []domain.Product {
	dirty, generation := c.localState()

	if c.remote.IsConfigured() && !dirty {
		products, err := c.fetchRemote(ctx)
		if err == nil {
			if c.adoptRemote(ctx, products, generation) {
				c.recordLoad(domain.CatalogSourceRemote)
				return products
			}
			logrus.Debug("syncing: catálogo local alterado durante a busca remota, mantendo cópia local")
		} else {
			logrus.WithError(err).Info("syncing: catálogo remoto indisponível, usando cópia local")
		}
	} else if dirty {
		logrus.Debug("syncing: alterações locais ainda não confirmadas no backend remoto, usando cópia local")
	}

	products := c.store.GetAll(ctx)
	c.recordLoad(domain.CatalogSourceLocal)
	return products
}

// adoptRemote grava a lista remota no slot se nenhum Save aconteceu desde o início da busca
func (c *Coordinator) adoptRemote(ctx context.Context, products []domain.Product, generation uint64) bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	dirty, current := c.localState()
	if dirty || current != generation {
		return false
	}

	if err := c.store.PutAll(ctx, products); err != nil {
		logrus.WithError(err).Warn("syncing: catálogo remoto carregado mas não gravado localmente")
	}
	return true
}

func (c *Coordinator) localState() (bool, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty, c.generation
}

func (c *Coordinator) fetchRemote(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	data, err := c.remote.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, ErrMalformedRemote
	}

	products, err := store.Decode(data)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedRemote, err.Error())
	}

	// Registros fora das regras são mantidos; EffectiveDiscount ignora percentuais inválidos
	for _, p := range products {
		if err := p.CheckRecord(); err != nil {
			logrus.WithField("product_id", p.ID).WithError(err).Warn("syncing: registro remoto fora das regras do catálogo")
		}
	}

	return products, nil
}

// Save grava localmente e agenda a propagação remota; só falhas locais são retornadas
func (c *Coordinator) Save(ctx context.Context, products []domain.Product) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.store.PutAll(ctx, products); err != nil {
		return err
	}

	c.mu.Lock()
	c.generation++
	configured := c.remote.IsConfigured()
	if configured {
		c.dirty = true
	}
	c.mu.Unlock()

	if !configured {
		return nil
	}

	payload, err := store.Encode(products)
	if err != nil {
		logrus.WithError(err).Warn("syncing: erro ao serializar catálogo para envio")
		return nil
	}

	c.enqueue(payload)
	return nil
}

// enqueue guarda apenas o snapshot mais recente ainda não enviado
func (c *Coordinator) enqueue(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = payload
	c.queued = true
	c.status.PendingUpload = true

	if c.draining {
		return
	}
	c.draining = true

	if err := c.pool.Submit(c.drain); err != nil {
		logrus.WithError(err).Warn("syncing: pool indisponível, enviando em goroutine dedicada")
		go c.drain()
	}
}

func (c *Coordinator) drain() {
	for {
		c.mu.Lock()
		if !c.queued {
			c.draining = false
			c.status.PendingUpload = false
			c.idle.Broadcast()
			c.mu.Unlock()
			return
		}

		payload := c.pending
		c.pending = nil
		c.queued = false
		c.mu.Unlock()

		c.upload(payload)
	}
}

func (c *Coordinator) upload(payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), c.uploadTimeout)
	defer cancel()

	err := c.remote.UploadCatalog(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.status.UploadsFailed++
		c.status.LastUploadError = err.Error()
		logrus.WithError(err).Error("syncing: falha ao enviar catálogo para o backend remoto")
		return
	}

	c.status.UploadsCompleted++
	c.status.LastUploadAt = time.Now()
	c.status.LastUploadError = ""

	// Só o snapshot mais recente libera a leitura remota
	if !c.queued {
		c.dirty = false
	}
	logrus.Debugf("syncing: catálogo enviado (%d bytes)", len(payload))
}

// Flush bloqueia até que não haja propagação pendente
func (c *Coordinator) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.draining {
		c.idle.Wait()
	}
}

// Close aguarda a propagação pendente e libera o pool
func (c *Coordinator) Close() {
	c.Flush()
	c.pool.Release()
}

func (c *Coordinator) Status() domain.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := c.status
	status.RemoteConfigured = c.remote.IsConfigured()
	status.LocalAhead = c.dirty
	return status
}

func (c *Coordinator) recordLoad(source domain.CatalogSource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.LastLoadSource = source
	c.status.LastLoadAt = time.Now()
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/api/handler"
	"github.com/vfg2006/catalog-manager-api/internal/api/handler/router"
	"github.com/vfg2006/catalog-manager-api/internal/config"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/catalog-manager-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
	onShutdown []func()
}

func New(
	config *config.Config,
	catalogService cataloging.CatalogService,
	reportService reporting.ReportService,
	coordinator handler.SyncStatusProvider,
	refreshService handler.RefreshTrigger,
	onShutdown ...func(),
) (*Server, error) {
	limiter := middleware.NewRateLimiter(config.Server.RateLimitRPS, config.Server.RateLimitBurst)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, limiter, catalogService, reportService, coordinator, refreshService),
			ReadHeaderTimeout: 2 * time.Second,
		},
		limiter:    limiter,
		onShutdown: onShutdown,
	}

	return srv, nil
}

// NewHandler monta rotas e middlewares globais
func NewHandler(
	config *config.Config,
	limiter *middleware.RateLimiter,
	catalogService cataloging.CatalogService,
	reportService reporting.ReportService,
	coordinator handler.SyncStatusProvider,
	refreshService handler.RefreshTrigger,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Products(catalogService)...),
		router.WithRoutes(handler.Reports(reportService)...),
		router.WithRoutes(handler.Sync(coordinator, refreshService)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}
	if limiter != nil {
		middlewares = append(middlewares, limiter.Middleware())
	}

	return alice.New(middlewares...).Then(rt)
}

func (s *Server) Run(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.StartCleanupLoop(ctx)
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para de aceitar requisições e depois executa as rotinas de limpeza (propagação pendente, slot)
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	for _, fn := range s.onShutdown {
		fn()
	}

	return err
}

package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
	"github.com/vfg2006/catalog-manager-api/pkg/log"
)

// SyncStatusProvider expõe o estado da sincronização do catálogo
type SyncStatusProvider interface {
	Status() domain.SyncStatus
}

// RefreshTrigger dispara a atualização do catálogo fora do agendamento
type RefreshTrigger interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

func RunSync(trigger RefreshTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !trigger.TriggerManualSync(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrSubmissionInProgress, "Atualização do catálogo já em andamento", nil)
			return
		}

		log.ForContext(r.Context()).Info("Atualização manual do catálogo solicitada")
		writeJSON(w, http.StatusAccepted, map[string]any{
			"started": true,
			"message": "Atualização do catálogo iniciada",
		})
	})
}

func GetSyncStatus(coordinator SyncStatusProvider, trigger RefreshTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"coordinator": coordinator.Status(),
			"scheduler":   trigger.GetStatus(),
		})
	})
}

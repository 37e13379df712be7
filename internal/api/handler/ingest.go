package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/social-analytics-ingestor/pkg/apiErrors"
	"github.com/vfg2006/social-analytics-ingestor/pkg/log"
)

// IngestionScheduler é o agendador de varredura visto pelos handlers
type IngestionScheduler interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunIngestion dispara uma varredura da pasta de exports em segundo plano
func RunIngestion(scheduler IngestionScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		// a varredura continua depois da resposta
		ctx := context.WithoutCancel(r.Context())
		if !scheduler.TriggerManualSync(ctx) {
			logger.WithField("outcome", "rejected").Warn("Varredura recusada: já existe uma em andamento")
			apiErrors.WriteError(w, apiErrors.ErrScanInProgress, "Já existe uma varredura em andamento", nil)
			return
		}

		logger.WithField("outcome", "accepted").Info("Varredura disparada pela API")

		response := map[string]any{
			"message": "Varredura iniciada com sucesso",
			"run_id":  log.GetCorrelationID(r.Context()),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(response)
	}
}

// GetIngestionStatus retorna o status do agendador e o resumo da última varredura
func GetIngestionStatus(scheduler IngestionScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scheduler.GetStatus())
	}
}

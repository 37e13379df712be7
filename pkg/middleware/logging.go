package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/vfg2006/social-analytics-ingestor/pkg/apiErrors"
	"github.com/vfg2006/social-analytics-ingestor/pkg/log"
)

// RunIDHeader devolve ao cliente o ID de correlação da requisição, que também vira o
// run_id de uma varredura disparada por ela
const RunIDHeader = "X-Run-ID"

const slowRequest = 500 * time.Millisecond

// LoggingMiddleware coloca o run_id no contexto e no cabeçalho de toda resposta e registra
// a requisição ao final. Caminhos em quiet recebem o run_id mas não são registrados.
func LoggingMiddleware(quiet ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, runID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(RunIDHeader, runID)

			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			started := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(started)
			logger := log.ForContext(ctx).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": sw.status,
				"duration_ms": elapsed.Milliseconds(),
			})

			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case sw.status >= http.StatusBadRequest:
				logger.Warn("Requisição finalizada com aviso")
			default:
				logger.Info("Requisição finalizada")
			}

			if elapsed > slowRequest {
				logger.Warnf("Requisição lenta: %s", elapsed)
			}
		})
	}
}

// statusWriter guarda o status escrito pelo handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware transforma um panic do handler em 500 com o código SRV_001
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.ForContext(r.Context()).WithFields(log.Fields{
						"error":       fmt.Sprint(rec),
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(debug.Stack()),
					}).Error("Panic ao atender requisição")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Route é uma rota da API administrativa. Rotas Quiet não entram no log de requisições.
type Route struct {
	Path    string
	Method  string
	Handler http.Handler
	Quiet   bool
}

func Healthcheck(db Pinger) []Route {
	return []Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Ingestion(scheduler IngestionScheduler) []Route {
	return []Route{
		{
			Path:    "/v1/ingest/run",
			Method:  http.MethodPost,
			Handler: RunIngestion(scheduler),
		},
		{
			Path:    "/v1/ingest/status",
			Method:  http.MethodGet,
			Handler: GetIngestionStatus(scheduler),
		},
	}
}

// Metrics expõe o endpoint do Prometheus; os scrapes periódicos não poluem o log
func Metrics() []Route {
	return []Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
			Quiet:   true,
		},
	}
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-analytics-ingestor/internal/api/handler"
	"github.com/vfg2006/social-analytics-ingestor/internal/config"
	"github.com/vfg2006/social-analytics-ingestor/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	scanScheduler handler.IngestionScheduler,
) *Server {
	var routes []handler.Route
	routes = append(routes, handler.Healthcheck(db)...)
	routes = append(routes, handler.Ingestion(scanScheduler)...)
	routes = append(routes, handler.Metrics()...)

	rt := httprouter.New()
	var quiet []string
	for _, route := range routes {
		rt.Handler(route.Method, route.Path, route.Handler)
		if route.Quiet {
			quiet = append(quiet, route.Path)
		}
	}

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(quiet...),
		middleware.LogPanicMiddleware(),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// Run atende requisições até ctx ser cancelado e então desliga o servidor
func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Handler expõe o handler HTTP completo, com middlewares
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

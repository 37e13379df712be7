package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/internal/config"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/ingesting"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openEnvironment).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", err)
		os.Exit(1)
	}
}

// openEnvironment carrega a configuração e conecta ao Postgres
func openEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	return &environment{
		ingester: ingesting.NewFromConfig(cfg, conn),
		conn:     conn,
		close:    func() { conn.Close() },
	}, nil
}

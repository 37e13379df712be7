package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem"
	"github.com/vfg2006/social-analytics-ingestor/internal/api"
	"github.com/vfg2006/social-analytics-ingestor/internal/config"
	"github.com/vfg2006/social-analytics-ingestor/internal/scheduler"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/ingesting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	logrus.WithFields(logrus.Fields{
		"company_id":   cfg.Company.ID,
		"data_dir":     cfg.Paths.DataDir,
		"reports_dir":  cfg.Paths.ReportsDir,
		"policy":       cfg.Ingestion.Policy,
		"date_dmy":     cfg.Ingestion.DayFirst,
		"offset_hours": cfg.Ingestion.OffsetHours,
		"history":      cfg.Ingestion.HistoryEnabled,
	}).Info("Configuração da ingestão carregada")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	ingester := ingesting.NewFromConfig(cfg, pgConn)

	folderScanService := scheduler.NewFolderScanService(ingester, cfg)
	if err := folderScanService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de varredura")
	} else {
		logrus.Info("Agendador de varredura iniciado com sucesso")
	}

	collector := filesystem.NewCollector(
		afero.NewOsFs(),
		cfg.Paths.DownloadSource,
		cfg.Paths.DataDir,
		time.Duration(cfg.Watcher.StableSeconds)*time.Second,
	)
	downloadWatcher := scheduler.NewDownloadWatcher(collector, folderScanService, cfg.Watcher.Enabled)
	if err := downloadWatcher.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o coletor de downloads")
	}

	server := api.New(cfg, pgConn, folderScanService)
	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	downloadWatcher.Wait()
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

package ingesting

import (
	"time"

	"github.com/spf13/afero"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/extractor"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/report"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/repository"
	"github.com/vfg2006/social-analytics-ingestor/internal/config"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/snapshotting"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

// OptionsFromConfig lê uma única vez os valores que mudam a semântica da ingestão
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CompanyID:   cfg.Company.ID,
		CompanyName: cfg.Company.Name,
		DataDir:     cfg.Paths.DataDir,
		Policy:      cfg.Ingestion.Policy,
		Dates: utils.DateParser{
			DayFirst:    cfg.Ingestion.DayFirst,
			OffsetHours: cfg.Ingestion.OffsetHours,
		},
	}
}

// NewFromConfig monta o pipeline completo sobre a conexão com o Postgres
func NewFromConfig(cfg *config.Config, conn *postgres.Connection) *Service {
	fs := afero.NewOsFs()

	return NewService(
		OptionsFromConfig(cfg),
		extractor.NewExtractor(),
		repository.NewPostAnalyticsRepository(conn),
		repository.NewFollowerAnalyticsRepository(conn),
		repository.NewCompanyAnalyticsRepository(conn),
		snapshotting.NewSnapshotter(repository.NewPostMetricsHistoryRepository(conn), cfg.Ingestion.HistoryEnabled),
		report.NewWriter(cfg.Paths.ReportsDir),
		filesystem.NewArchiver(fs, cfg.Paths.DataDir, time.Now),
		fs,
	)
}

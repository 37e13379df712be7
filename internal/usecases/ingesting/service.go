package ingesting

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/extractor"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/report"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/repository"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/classifying"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/snapshotting"
	"github.com/vfg2006/social-analytics-ingestor/pkg/log"
	"github.com/vfg2006/social-analytics-ingestor/pkg/metrics"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

type Ingester interface {
	// IngestFile processa um arquivo do início ao fim. O relatório é sempre devolvido,
	// inclusive quando o arquivo falha.
	IngestFile(ctx context.Context, path string) (*domain.IngestionReport, error)
	// ScanFolder ingere os exports da pasta de dados em ordem alfabética e arquiva os que deram certo
	ScanFolder(ctx context.Context) (*domain.ScanSummary, error)
	// Reclassify recalcula o tipo dos posts armazenados com tipo vazio ou rótulo de distribuição
	Reclassify(ctx context.Context) (int, error)
}

// Options são os valores de configuração lidos uma única vez na inicialização
type Options struct {
	CompanyID   string
	CompanyName string
	DataDir     string
	Policy      domain.MergePolicy
	Dates       utils.DateParser
}

type Service struct {
	opts         Options
	extractor    extractor.Extractor
	postRepo     repository.PostAnalyticsRepository
	followerRepo repository.FollowerAnalyticsRepository
	companyRepo  repository.CompanyAnalyticsRepository
	snapshotter  snapshotting.Snapshotter
	reports      report.Writer
	archiver     filesystem.Archiver
	fs           afero.Fs
	now          func() time.Time
}

func NewService(
	opts Options,
	ext extractor.Extractor,
	postRepo repository.PostAnalyticsRepository,
	followerRepo repository.FollowerAnalyticsRepository,
	companyRepo repository.CompanyAnalyticsRepository,
	snapshotter snapshotting.Snapshotter,
	reports report.Writer,
	archiver filesystem.Archiver,
	fs afero.Fs,
) *Service {
	return &Service{
		opts:         opts,
		extractor:    ext,
		postRepo:     postRepo,
		followerRepo: followerRepo,
		companyRepo:  companyRepo,
		snapshotter:  snapshotter,
		reports:      reports,
		archiver:     archiver,
		fs:           fs,
		now:          time.Now,
	}
}

// WithClock troca o relógio usado para created_at, updated_at, date_collected e observed_date
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) IngestFile(ctx context.Context, path string) (*domain.IngestionReport, error) {
	ctx, runID := log.EnsureCorrelationID(ctx)
	logger := log.ForContext(ctx).WithField("file", filepath.Base(path))

	started := s.now()
	rep := &domain.IngestionReport{
		RunID:     runID,
		File:      path,
		CompanyID: s.opts.CompanyID,
		Policy:    s.opts.Policy,
		StartedAt: started,
	}

	logger.Info("Iniciando ingestão do arquivo")

	err := s.process(ctx, path, rep, logger)
	if err != nil {
		rep.Error = err.Error()
		rep.Add(domain.ReportEntry{
			Source:  filepath.Base(path),
			Outcome: domain.OutcomeFailed,
			Reason:  domain.ReasonFor(err),
		})
		logger.WithError(err).WithField("reason", domain.ReasonFor(err)).Error("Falha na ingestão do arquivo")
		metrics.FilesProcessed.WithLabelValues("failed").Inc()
	} else {
		metrics.FilesProcessed.WithLabelValues("success").Inc()
	}

	rep.FinishedAt = s.now()
	metrics.FileDuration.Observe(rep.FinishedAt.Sub(started).Seconds())

	reportPath, writeErr := s.reports.Write(rep)
	if writeErr != nil {
		logger.WithError(writeErr).Error("Erro ao gravar relatório de validação")
	}
	rep.ReportPath = reportPath

	logger.WithFields(log.Fields{
		"inserted": rep.Count(domain.OutcomeInserted),
		"updated":  rep.Count(domain.OutcomeUpdated),
		"skipped":  rep.Count(domain.OutcomeSkipped),
		"report":   reportPath,
	}).Info("Ingestão do arquivo finalizada")

	return rep, err
}

func (s *Service) process(ctx context.Context, path string, rep *domain.IngestionReport, logger log.Logger) error {
	export, err := s.extractor.Extract(path)
	if err != nil {
		return err
	}

	for _, skipped := range export.Skipped {
		rep.Add(domain.ReportEntry{
			Source:  skipped.Source,
			Kind:    domain.TableKindUnknown,
			Outcome: domain.OutcomeSkipped,
			Reason:  skipped.Reason,
		})
		metrics.RowsSkipped.WithLabelValues(skipped.Reason).Inc()
	}

	for _, table := range export.Tables {
		classification, err := classifying.Classify(table)
		if err != nil {
			reason := domain.ReasonFor(err)
			logger.WithFields(log.Fields{
				"source": table.Source,
				"sheet":  table.Sheet,
				"reason": reason,
			}).Warn("Tabela ignorada")

			rep.Add(domain.ReportEntry{
				Source:  table.Source,
				Sheet:   table.Sheet,
				Kind:    domain.TableKindUnknown,
				Outcome: domain.OutcomeSkipped,
				Reason:  reason,
			})
			metrics.RowsSkipped.WithLabelValues(reason).Inc()
			continue
		}

		switch classification.Kind {
		case domain.TableKindPosts:
			err = s.ingestPosts(ctx, path, table, classification.Resolution, rep, logger)
		case domain.TableKindDemographics:
			err = s.ingestDemographics(ctx, path, table, classification.Resolution, rep, logger)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

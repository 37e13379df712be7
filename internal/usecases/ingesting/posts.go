package ingesting

import (
	"context"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/classifying"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/merging"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/normalizing"
	"github.com/vfg2006/social-analytics-ingestor/pkg/log"
	"github.com/vfg2006/social-analytics-ingestor/pkg/metrics"
)

// ingestPosts grava cada linha em sua própria transação. Uma falha de armazenamento
// interrompe o arquivo, mas as linhas já gravadas permanecem.
func (s *Service) ingestPosts(ctx context.Context, path string, table domain.Table, res classifying.Resolution, rep *domain.IngestionReport, logger log.Logger) error {
	normalizer := normalizing.NewPostNormalizer(s.opts.CompanyID, s.opts.Dates)
	persisted := 0

	for i, row := range table.Rows {
		entry := domain.ReportEntry{
			Source: table.Source,
			Sheet:  table.Sheet,
			Row:    table.Line(i),
			Kind:   domain.TableKindPosts,
		}

		normalized, err := normalizer.Normalize(row, res)
		if err != nil {
			s.skipRow(rep, entry, err, logger)
			continue
		}

		incoming := normalized.Record
		entry.Identity = incoming.PostID
		entry.Flags = normalized.Flags

		now := s.now()
		stored, inserted, err := s.postRepo.Upsert(ctx, incoming, func(existing *domain.PostRecord) (*domain.PostRecord, bool) {
			return merging.MergePost(existing, incoming, s.opts.Policy, now)
		})
		if err != nil {
			entry.Outcome = domain.OutcomeFailed
			entry.Reason = domain.ReasonStorage
			rep.Add(entry)
			return domain.NewIngestError(err, path, table.Source, incoming.PostID)
		}

		entry.Outcome = outcomeOf(inserted)
		if err := s.snapshotter.Snapshot(ctx, stored, now); err != nil {
			logger.WithError(err).WithField("post_id", stored.PostID).Warn("Erro ao gravar histórico do post")
			entry.Flags = append(entry.Flags, domain.ReasonSnapshotFailed)
		}

		rep.Add(entry)
		metrics.Records.WithLabelValues(string(domain.TableKindPosts), string(entry.Outcome)).Inc()
		persisted++
	}

	if persisted == 0 {
		return nil
	}

	if err := s.rollup(ctx); err != nil {
		return domain.NewIngestError(err, path, table.Source, "rollup da empresa")
	}

	return nil
}

// rollup consolida os posts armazenados em company_analytics e registra o histórico.
// Falha no histórico é apenas aviso.
func (s *Service) rollup(ctx context.Context) error {
	summary, err := s.companyRepo.Summarize(ctx, s.opts.CompanyID)
	if err != nil {
		return err
	}

	summary.CompanyName = s.opts.CompanyName
	summary.DateCollected = s.now().UTC()

	if err := s.companyRepo.UpsertSummary(ctx, summary); err != nil {
		return err
	}

	if err := s.companyRepo.InsertHistory(ctx, summary); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao registrar histórico da empresa")
	}

	return nil
}

func (s *Service) skipRow(rep *domain.IngestionReport, entry domain.ReportEntry, err error, logger log.Logger) {
	entry.Outcome = domain.OutcomeSkipped
	entry.Reason = domain.ReasonFor(err)
	rep.Add(entry)

	logger.WithError(err).WithFields(log.Fields{
		"sheet":  entry.Sheet,
		"row":    entry.Row,
		"reason": entry.Reason,
	}).Warn("Linha ignorada")
	metrics.RowsSkipped.WithLabelValues(entry.Reason).Inc()
}

func outcomeOf(inserted bool) domain.Outcome {
	if inserted {
		return domain.OutcomeInserted
	}
	return domain.OutcomeUpdated
}

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

func (s *Service) ingestDemographics(ctx context.Context, path string, table domain.Table, res classifying.Resolution, rep *domain.IngestionReport, logger log.Logger) error {
	normalizer := normalizing.NewDemographicNormalizer(s.opts.CompanyID, s.now)
	tableType := normalizer.TableType(table, res)

	for i, row := range table.Rows {
		entry := domain.ReportEntry{
			Source: table.Source,
			Sheet:  table.Sheet,
			Row:    table.Line(i),
			Kind:   domain.TableKindDemographics,
		}

		incoming, err := normalizer.Normalize(row, res, tableType)
		if err != nil {
			s.skipRow(rep, entry, err, logger)
			continue
		}
		entry.Identity = incoming.IdentityKey()

		now := s.now()
		_, inserted, err := s.followerRepo.Upsert(ctx, incoming, func(existing *domain.DemographicRecord) (*domain.DemographicRecord, bool) {
			return merging.MergeDemographic(existing, incoming, now)
		})
		if err != nil {
			entry.Outcome = domain.OutcomeFailed
			entry.Reason = domain.ReasonStorage
			rep.Add(entry)
			return domain.NewIngestError(err, path, table.Source, entry.Identity)
		}

		entry.Outcome = outcomeOf(inserted)
		rep.Add(entry)
		metrics.Records.WithLabelValues(string(domain.TableKindDemographics), string(entry.Outcome)).Inc()
	}

	return nil
}
